// Package matlab supplies the MATLAB grammar used throughout this module's
// tests and the tmtoken CLI: a minimal closure covering read/write
// identifier access, property validation blocks, and import statements.
package matlab

import "github.com/npillmayer/tmgrammar/grammar"

// scopeName is the grammar's declared scope, the MATLAB source scope used by
// TextMate-compatible editors and themes.
const scopeName = "source.matlab"

// numericOrColon is the alternative rule used inside a size specifier slot,
// e.g. the "1" in "(1,1)" or the ":" in "(1,:)". It is wired as a capture
// group's parser rather than a top-level rule: a capture group names exactly
// one parser, and the only way to let that parser choose between two token
// names by content is to make it itself a "patterns" disjunction.
var numericOrColon = grammar.RawGrammar{
	Patterns: []grammar.RawGrammar{
		{Name: "constant.numeric.decimal.matlab", Match: `[0-9]+`},
		{Name: "keyword.operator.vector.colon.matlab", Match: `:`},
	},
}

// parenOpen and parenClose tokenize a validator's enclosing parentheses as
// captures of their own, siblings of sizeSpecifier rather than part of it —
// the parens bracket the whole validator, not just its size block.
var parenOpen = grammar.RawGrammar{Name: "punctuation.section.parens.begin.matlab", Match: `\(`}
var parenClose = grammar.RawGrammar{Name: "punctuation.section.parens.end.matlab", Match: `\)`}

// sizeSpecifier matches the "dim,dim" body of a size validator, e.g. the
// "1,1" in "(1,1)" or the "1,:" in "(1,:)", as a single tokenized element
// with its numerals and separator as captures. The enclosing parens are
// matched separately by parenOpen/parenClose.
var sizeSpecifier = grammar.RawGrammar{
	Name:  "meta.parens.size.matlab",
	Match: `([0-9]+|:)\s*(,)\s*([0-9]+|:)`,
	Captures: grammar.RawCaptures{
		1: numericOrColon,
		2: {Name: "punctuation.separator.comma.matlab"},
		3: numericOrColon,
	},
}

// storageType matches one of MATLAB's built-in property/argument type names.
var storageType = grammar.RawGrammar{
	Name:  "storage.type.matlab",
	Match: `\b(string|double|logical|char|cell|struct|single|function_handle|` +
		`int8|int16|int32|int64|uint8|uint16|uint32|uint64)\b`,
}

// singleQuotedString matches a MATLAB single-quoted character vector, with
// its delimiters tokenized separately from the body.
var singleQuotedString = grammar.RawGrammar{
	Name:  "string.quoted.single.matlab",
	Begin: `'`,
	End:   `'`,
	BeginCaptures: grammar.RawCaptures{
		0: {Name: "punctuation.definition.string.begin.matlab"},
	},
	EndCaptures: grammar.RawCaptures{
		0: {Name: "punctuation.definition.string.end.matlab"},
	},
}

// blockValidation matches a "{...}" validation-function block, which may
// itself nest (a validation function call containing a cell array of
// strings), hence the self-include in its own pattern list.
var blockValidation = grammar.RawGrammar{
	Name:  "meta.block.validation.matlab",
	Begin: `\{`,
	End:   `\}`,
	BeginCaptures: grammar.RawCaptures{
		0: {Name: "punctuation.section.block.begin.matlab"},
	},
	EndCaptures: grammar.RawCaptures{
		0: {Name: "punctuation.section.block.end.matlab"},
	},
	Patterns: []grammar.RawGrammar{
		{Include: "#meta_block_validation"},
		singleQuotedString,
	},
}

// validators matches a property/argument validation statement: a name,
// optionally followed by a size specifier, a storage type, and/or a
// validation-function block, up to a terminating "=" or ";" or end of line.
var validators = grammar.RawGrammar{
	Name:  "meta.assignment.definition.property.matlab",
	Begin: `([A-Za-z_][A-Za-z0-9_]*)`,
	End:   `(?:(=)|(;)|(?=\n))`,
	BeginCaptures: grammar.RawCaptures{
		1: {Name: "variable.object.property.matlab"},
	},
	EndCaptures: grammar.RawCaptures{
		1: {Name: "keyword.operator.assignment.matlab"},
		2: {Name: "punctuation.terminator.semicolon.matlab"},
	},
	Patterns: []grammar.RawGrammar{
		parenOpen,
		sizeSpecifier,
		parenClose,
		storageType,
		{Include: "#meta_block_validation"},
	},
}

// namespaceSegment is the dotted-path disjunction used inside an import
// statement's namespace capture (module, separator, or trailing wildcard),
// run as a sequence so every segment of the path gets its own element. The
// Name wraps those segments in a single namespace-block element rather than
// splicing them directly into imports' own capture list.
var namespaceSegment = grammar.RawGrammar{
	Name: "entity.name.namespace.matlab",
	Patterns: []grammar.RawGrammar{
		{Name: "entity.name.module.matlab", Match: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "punctuation.separator.matlab", Match: `\.`},
		{Name: "variable.language.wildcard.matlab", Match: `\*`},
	},
}

// imports matches an "import module.sub.name" or "import module.sub.*"
// statement.
var imports = grammar.RawGrammar{
	Name:  "meta.import.matlab",
	Match: `(import)(\s+)([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*(?:\.\*)?)`,
	Captures: grammar.RawCaptures{
		1: {Name: "keyword.other.import.matlab"},
		3: namespaceSegment,
	},
}

// readwriteOperations matches a read/write identifier reference: a dotted
// chain of identifiers, stopping one segment short whenever the next
// character would otherwise start a function call or indexing expression —
// the trailing "(?!\()" forces the engine to backtrack off the last segment
// in that case, the same way the reference grammar distinguishes plain
// member access from a call. The "\b" in front of it keeps the engine from
// giving back only part of that last identifier instead. Group 1's capture is an empty, unnamed
// TokenParser, which still wraps its span into a token-less element: the
// reference grammar carries this same "capture with no token" shape, and
// downstream consumers key off the wrapping, not the name.
var readwriteOperations = grammar.RawGrammar{
	Name:     "readwrite_operations",
	Match:    `([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)\b(?!\()`,
	Captures: grammar.RawCaptures{1: {}},
}

// GRAMMAR is the root MATLAB grammar-dict, ready for grammar.NewLanguage.
var GRAMMAR = grammar.RawGrammar{
	Name:           scopeName,
	ScopeNameField: scopeName,
	Patterns: []grammar.RawGrammar{
		{Include: "#imports"},
		{Include: "#readwrite_operations"},
	},
	Repository: map[string]grammar.RawGrammar{
		"imports":               imports,
		"readwrite_operations":  readwriteOperations,
		"validators":            validators,
		"meta_block_validation": blockValidation,
	},
}
