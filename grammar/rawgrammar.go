package grammar

// RawGrammar is the declarative input shape a grammar author writes: a
// nested mapping with the recognized keys from SPEC_FULL.md §6. It is the
// Go-typed counterpart of a TextMate grammar dict, used both for the root
// language and for every nested pattern/repository entry.
type RawGrammar struct {
	Name    string // scope name, becomes the parser's token
	Comment string
	Key     string // repository key this entry was registered under, if any

	// ScopeNameField is the root grammar's "scopeName" (e.g. "source.matlab"),
	// meaningful only on the top-level grammar dict passed to NewLanguage.
	ScopeNameField string

	ContentName string // if set, the block emits only between-content (§4.8)
	Disabled    bool

	Match string

	Begin               string
	End                 string
	ApplyEndPatternLast bool

	While string

	Captures      RawCaptures
	BeginCaptures RawCaptures
	EndCaptures   RawCaptures
	WhileCaptures RawCaptures

	Patterns []RawGrammar

	// Include holds an unresolved reference: "$self", "$base", "#name", or
	// "scope.name[#sub]". Mutually exclusive with the other pattern kinds.
	Include string

	Repository map[string]RawGrammar

	// Injections is an ordered list of extra patterns merged into the root
	// parser's search set regardless of where they're declared.
	Injections []RawGrammar
}

// RawCaptures maps a capture-group index to the sub-grammar that parses it.
type RawCaptures map[int]RawGrammar

// Kind classifies a RawGrammar into the four pattern kinds dispatch.go picks
// between, or reports it as an unresolved include.
type Kind int

const (
	KindInclude Kind = iota
	KindMatch
	KindBeginEnd
	KindBeginWhile
	KindPatterns
	KindToken
)

// ScopeName returns the root grammar's declared scope name.
func (g *RawGrammar) ScopeName() string { return g.ScopeNameField }

// Kind implements §4.3's dispatch rule.
func (g *RawGrammar) Kind() Kind {
	switch {
	case g.Include != "":
		return KindInclude
	case g.Match != "":
		return KindMatch
	case g.Begin != "" && g.End != "":
		return KindBeginEnd
	case g.Begin != "" && g.While != "":
		return KindBeginWhile
	case g.Patterns != nil:
		return KindPatterns
	default:
		return KindToken
	}
}
