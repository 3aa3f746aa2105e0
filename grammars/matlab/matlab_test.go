package matlab

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/tmgrammar"
	"github.com/npillmayer/tmgrammar/grammar"
	"github.com/npillmayer/tmgrammar/handler"
)

func setup(t *testing.T) func() {
	gtrace.SyntaxTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelDebug)
	return teardown
}

func newTestLanguage(t *testing.T) *grammar.Language {
	lang, err := grammar.NewLanguage(GRAMMAR)
	if err != nil {
		t.Fatalf("NewLanguage: %v", err)
	}
	return lang
}

func TestReadWriteOperationsVariable(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	lang := newTestLanguage(t)
	elements := lang.Tokenize("variable")
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(elements))
	}
	if elements[0].TokenName() != "readwrite_operations" {
		t.Errorf("token = %q, want readwrite_operations", elements[0].TokenName())
	}
	d := elements[0].ToDict(true)
	if d["content"] != "variable" {
		t.Errorf("content = %v, want variable", d["content"])
	}
	captures, ok := d["captures"].([]map[string]any)
	if !ok || len(captures) != 1 {
		t.Fatalf("captures = %v, want a single wrapped capture", d["captures"])
	}
	if captures[0]["token"] != "" || captures[0]["content"] != "variable" {
		t.Errorf("capture = %v, want {token:\"\", content:\"variable\"}", captures[0])
	}
}

func TestReadWriteOperationsStopsBeforeCall(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	lang := newTestLanguage(t)
	elements := lang.Tokenize("variable.function(argument)")
	if len(elements) == 0 {
		t.Fatal("expected at least one element")
	}
	d := elements[0].ToDict(true)
	if got := d["content"]; got != "variable" {
		t.Errorf("content = %v, want variable (backtracked off the call)", got)
	}
	captures, ok := d["captures"].([]map[string]any)
	if !ok || len(captures) != 1 || captures[0]["content"] != "variable" {
		t.Errorf("captures = %v, want a single wrapped capture <variable>", d["captures"])
	}
}

func TestReadWriteOperationsDottedChain(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	lang := newTestLanguage(t)
	elements := lang.Tokenize("variable.class.property")
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(elements))
	}
	d := elements[0].ToDict(true)
	if got := d["content"]; got != "variable.class.property" {
		t.Errorf("content = %v, want the full dotted chain", got)
	}
	captures, ok := d["captures"].([]map[string]any)
	if !ok || len(captures) != 1 || captures[0]["token"] != "" || captures[0]["content"] != "variable.class.property" {
		t.Errorf("captures = %v, want {token:\"\", content:\"variable.class.property\"}", d["captures"])
	}
}

func TestImportStatement(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	lang := newTestLanguage(t)
	elements := lang.Tokenize("import module.submodule.class")
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(elements))
	}
	if elements[0].TokenName() != "meta.import.matlab" {
		t.Fatalf("token = %q, want meta.import.matlab", elements[0].TokenName())
	}
	d := elements[0].ToDict(true)
	captures, ok := d["captures"].([]map[string]any)
	if !ok || len(captures) != 2 {
		t.Fatalf("captures = %v, want 2 entries (keyword, namespace)", d["captures"])
	}
	if captures[0]["token"] != "keyword.other.import.matlab" {
		t.Errorf("first capture token = %v, want keyword.other.import.matlab", captures[0]["token"])
	}
	if captures[1]["token"] != "entity.name.namespace.matlab" {
		t.Errorf("second capture token = %v, want entity.name.namespace.matlab", captures[1]["token"])
	}
	namespace, ok := captures[1]["captures"].([]map[string]any)
	if !ok || len(namespace) != 5 {
		t.Fatalf("namespace captures = %v, want 5 segments", captures[1]["captures"])
	}
	if namespace[0]["content"] != "module" || namespace[2]["content"] != "submodule" || namespace[4]["content"] != "class" {
		t.Errorf("namespace segments = %v, want module/submodule/class", namespace)
	}
}

func TestImportStatementWildcard(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	lang := newTestLanguage(t)
	elements := lang.Tokenize("import module.submodule.*")
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(elements))
	}
	d := elements[0].ToDict(true)
	captures := d["captures"].([]map[string]any)
	if captures[1]["token"] != "entity.name.namespace.matlab" {
		t.Errorf("second capture token = %v, want entity.name.namespace.matlab", captures[1]["token"])
	}
	namespace := captures[1]["captures"].([]map[string]any)
	last := namespace[len(namespace)-1]
	if last["token"] != "variable.language.wildcard.matlab" || last["content"] != "*" {
		t.Errorf("last namespace segment = %v, want the wildcard", last)
	}
}

func TestValidatorsDefaultAssignment(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	lang := newTestLanguage(t)
	validatorParser := lang.Repository["validators"]

	h := handler.New("argument =")
	parsed, elements, _ := validatorParser.Parse(h, tmgrammar.POS{0, 0}, h.Boundary(), tmgrammar.ParseOptions{})
	if !parsed || len(elements) != 1 {
		t.Fatalf("parsed=%v elements=%d, want a single block element", parsed, len(elements))
	}
	d := elements[0].ToDict(true)
	if d["content"] != "argument =" {
		t.Errorf("content = %v, want %q", d["content"], "argument =")
	}
	begin := d["begin"].([]map[string]any)
	if begin[0]["token"] != "variable.object.property.matlab" || begin[0]["content"] != "argument" {
		t.Errorf("begin = %v", begin)
	}
	end := d["end"].([]map[string]any)
	if end[0]["token"] != "keyword.operator.assignment.matlab" {
		t.Errorf("end = %v", end)
	}
}

func TestValidatorsSizeAndType(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	lang := newTestLanguage(t)
	validatorParser := lang.Repository["validators"]

	h := handler.New("argument (1,1) string;")
	parsed, elements, _ := validatorParser.Parse(h, tmgrammar.POS{0, 0}, h.Boundary(), tmgrammar.ParseOptions{})
	if !parsed || len(elements) != 1 {
		t.Fatalf("parsed=%v elements=%d, want a single block element", parsed, len(elements))
	}
	d := elements[0].ToDict(true)
	captures := d["captures"].([]map[string]any)
	if len(captures) != 4 {
		t.Fatalf("captures = %v, want paren-open + size-specifier + paren-close + storage type", captures)
	}
	if captures[0]["token"] != "punctuation.section.parens.begin.matlab" || captures[0]["content"] != "(" {
		t.Errorf("first capture = %v, want punctuation.section.parens.begin.matlab<(>", captures[0])
	}
	if captures[1]["token"] != "meta.parens.size.matlab" {
		t.Errorf("second capture token = %v", captures[1]["token"])
	}
	size := captures[1]["captures"].([]map[string]any)
	if len(size) != 3 || size[0]["content"] != "1" || size[1]["token"] != "punctuation.separator.comma.matlab" || size[2]["content"] != "1" {
		t.Errorf("size captures = %v, want digit, comma, digit", size)
	}
	if captures[2]["token"] != "punctuation.section.parens.end.matlab" || captures[2]["content"] != ")" {
		t.Errorf("third capture = %v, want punctuation.section.parens.end.matlab<)>", captures[2])
	}
	if captures[3]["token"] != "storage.type.matlab" || captures[3]["content"] != "string" {
		t.Errorf("fourth capture = %v, want storage.type.matlab<string>", captures[3])
	}
	end := d["end"].([]map[string]any)
	if end[0]["token"] != "punctuation.terminator.semicolon.matlab" {
		t.Errorf("end = %v", end)
	}
}

func TestValidatorsBlockValidationFunctions(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	lang := newTestLanguage(t)
	validatorParser := lang.Repository["validators"]

	h := handler.New("x (1,:) {mustBeNumeric,mustBeReal}\n")
	parsed, elements, _ := validatorParser.Parse(h, tmgrammar.POS{0, 0}, h.Boundary(), tmgrammar.ParseOptions{})
	if !parsed || len(elements) != 1 {
		t.Fatalf("parsed=%v elements=%d", parsed, len(elements))
	}
	d := elements[0].ToDict(true)
	captures := d["captures"].([]map[string]any)
	if len(captures) != 4 {
		t.Fatalf("captures = %v, want paren-open + size + paren-close + block validation", captures)
	}
	if captures[0]["token"] != "punctuation.section.parens.begin.matlab" {
		t.Errorf("first capture token = %v", captures[0]["token"])
	}
	size := captures[1]["captures"].([]map[string]any)
	if len(size) != 3 || size[0]["content"] != "1" || size[2]["token"] != "keyword.operator.vector.colon.matlab" {
		t.Errorf("size captures = %v, want digit, comma, colon", size)
	}
	if captures[2]["token"] != "punctuation.section.parens.end.matlab" {
		t.Errorf("third capture token = %v", captures[2]["token"])
	}
	block := captures[3]
	if block["token"] != "meta.block.validation.matlab" {
		t.Fatalf("fourth capture token = %v", block["token"])
	}
	if block["content"] != "{mustBeNumeric,mustBeReal}" {
		t.Errorf("block content = %v", block["content"])
	}
}

func TestValidatorsNestedBlockValidation(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	lang := newTestLanguage(t)
	validatorParser := lang.Repository["validators"]

	h := handler.New("method {mustBeMember(method,{'linear','spline'})}\n")
	parsed, elements, _ := validatorParser.Parse(h, tmgrammar.POS{0, 0}, h.Boundary(), tmgrammar.ParseOptions{})
	if !parsed || len(elements) != 1 {
		t.Fatalf("parsed=%v elements=%d", parsed, len(elements))
	}
	d := elements[0].ToDict(true)
	captures := d["captures"].([]map[string]any)
	outerBlock := captures[0]
	if outerBlock["token"] != "meta.block.validation.matlab" {
		t.Fatalf("outer block token = %v", outerBlock["token"])
	}
	innerCaptures := outerBlock["captures"].([]map[string]any)
	if len(innerCaptures) == 0 {
		t.Fatal("expected a nested block inside the validation function call")
	}
	nestedBlock := innerCaptures[0]
	if nestedBlock["token"] != "meta.block.validation.matlab" {
		t.Fatalf("nested block token = %v", nestedBlock["token"])
	}
	strings := nestedBlock["captures"].([]map[string]any)
	if len(strings) != 2 || strings[0]["token"] != "string.quoted.single.matlab" {
		t.Fatalf("nested strings = %v", strings)
	}
}
