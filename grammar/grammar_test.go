package grammar

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/tmgrammar"
	"github.com/npillmayer/tmgrammar/handler"
)

func setup(t *testing.T) func() {
	gtrace.SyntaxTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelDebug)
	return teardown
}

func TestTokenParserEmitsVerbatimSpan(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	tp := newTokenParser(RawGrammar{Name: "comment.line.matlab"}, nil, "")
	h := handler.New("hello world")
	parsed, elements, span := tp.Parse(h, tmgrammar.POS{0, 0}, tmgrammar.POS{0, 5}, tmgrammar.ParseOptions{})
	if !parsed || len(elements) != 1 {
		t.Fatalf("parsed=%v elements=%d", parsed, len(elements))
	}
	if elements[0].TokenName() != "comment.line.matlab" {
		t.Errorf("token = %q", elements[0].TokenName())
	}
	if span.Start() != (tmgrammar.POS{0, 0}) || span.End() != (tmgrammar.POS{0, 5}) {
		t.Errorf("span = %v", span)
	}
}

func TestMatchParserUntokenizedPassthrough(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	g := RawGrammar{Match: `[0-9]+`, Captures: RawCaptures{1: {Name: "constant.numeric.decimal.matlab"}}}
	g.Match = `([0-9]+)`

	lang, err := NewLanguage(RawGrammar{
		Patterns: []RawGrammar{g},
	})
	if err != nil {
		t.Fatalf("NewLanguage: %v", err)
	}
	h := handler.New("42")
	parsed, elements, _ := lang.Parse(h, tmgrammar.POS{0, 0}, h.Boundary(), tmgrammar.ParseOptions{})
	if !parsed || len(elements) != 1 {
		t.Fatalf("parsed=%v elements=%d", parsed, len(elements))
	}
	if elements[0].TokenName() != "constant.numeric.decimal.matlab" {
		t.Errorf("token = %q, want the capture's own token (no outer wrapper)", elements[0].TokenName())
	}
}

func TestMatchParserTokenizedWrapper(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	g := RawGrammar{
		Name:     "constant.numeric.decimal.matlab",
		Match:    `([0-9]+)`,
		Captures: RawCaptures{1: {}},
	}
	lang, err := NewLanguage(RawGrammar{Patterns: []RawGrammar{g}})
	if err != nil {
		t.Fatalf("NewLanguage: %v", err)
	}
	h := handler.New("42")
	parsed, elements, _ := lang.Parse(h, tmgrammar.POS{0, 0}, h.Boundary(), tmgrammar.ParseOptions{})
	if !parsed || len(elements) != 1 {
		t.Fatalf("parsed=%v elements=%d", parsed, len(elements))
	}
	if elements[0].TokenName() != "constant.numeric.decimal.matlab" {
		t.Errorf("token = %q", elements[0].TokenName())
	}
	d := elements[0].ToDict(true)
	if d["content"] != "42" {
		t.Errorf("content = %v", d["content"])
	}
}

func TestPatternsParserPriorityOrderNotEarliestMatch(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	// Both patterns match "a" at the cursor; priority-order disjunction must
	// take the first-listed pattern whenever it succeeds there, rather than
	// racing the alternatives against each other.
	lang, err := NewLanguage(RawGrammar{
		Patterns: []RawGrammar{
			{Name: "first", Match: `a`},
			{Name: "second", Match: `a|b`},
		},
	})
	if err != nil {
		t.Fatalf("NewLanguage: %v", err)
	}
	h := handler.New("a")
	parsed, elements, _ := lang.Parse(h, tmgrammar.POS{0, 0}, h.Boundary(), tmgrammar.ParseOptions{})
	if !parsed || len(elements) != 1 {
		t.Fatalf("parsed=%v elements=%d", parsed, len(elements))
	}
	if elements[0].TokenName() != "first" {
		t.Errorf("token = %q, want the first-listed pattern to win", elements[0].TokenName())
	}
}

func TestBeginEndParserSimpleBlock(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	lang, err := NewLanguage(RawGrammar{
		Patterns: []RawGrammar{
			{
				Name:  "meta.block.matlab",
				Begin: `\{`,
				End:   `\}`,
				BeginCaptures: RawCaptures{
					0: {Name: "punctuation.section.block.begin.matlab"},
				},
				EndCaptures: RawCaptures{
					0: {Name: "punctuation.section.block.end.matlab"},
				},
				Patterns: []RawGrammar{
					{Name: "constant.numeric.decimal.matlab", Match: `[0-9]+`},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("NewLanguage: %v", err)
	}
	h := handler.New("{42}")
	parsed, elements, _ := lang.Parse(h, tmgrammar.POS{0, 0}, h.Boundary(), tmgrammar.ParseOptions{})
	if !parsed || len(elements) != 1 {
		t.Fatalf("parsed=%v elements=%d", parsed, len(elements))
	}
	block, ok := elements[0].(ContentBlockElement)
	if !ok {
		t.Fatalf("element type = %T, want ContentBlockElement", elements[0])
	}
	if len(block.Captures) != 1 || block.Captures[0].ToDict(true)["content"] != "42" {
		t.Errorf("captures = %v", block.Captures)
	}
	if block.ToDict(true)["content"] != "{42}" {
		t.Errorf("content = %v", block.ToDict(true)["content"])
	}
}

func TestNewLanguageRejectsDanglingInclude(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	_, err := NewLanguage(RawGrammar{
		Patterns: []RawGrammar{
			{Include: "#missing"},
		},
	})
	if err == nil {
		t.Fatal("NewLanguage succeeded, want IncludedParserNotFoundError for a dangling #missing include")
	}
	var notFound *IncludedParserNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v (%T), want *IncludedParserNotFoundError", err, err)
	}
	if notFound.Include != "#missing" {
		t.Errorf("Include = %q, want #missing", notFound.Include)
	}
}

func TestBeginEndParserSelfRecursion(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	lang, err := NewLanguage(RawGrammar{
		Repository: map[string]RawGrammar{
			"block": {
				Name:  "meta.block.matlab",
				Begin: `\{`,
				End:   `\}`,
				Patterns: []RawGrammar{
					{Include: "#block"},
					{Name: "constant.numeric.decimal.matlab", Match: `[0-9]+`},
				},
			},
		},
		Patterns: []RawGrammar{
			{Include: "#block"},
		},
	})
	if err != nil {
		t.Fatalf("NewLanguage: %v", err)
	}
	h := handler.New("{{1}}")
	parsed, elements, _ := lang.Parse(h, tmgrammar.POS{0, 0}, h.Boundary(), tmgrammar.ParseOptions{})
	if !parsed || len(elements) != 1 {
		t.Fatalf("parsed=%v elements=%d", parsed, len(elements))
	}
	outer := elements[0].(ContentBlockElement)
	if outer.ToDict(true)["content"] != "{{1}}" {
		t.Errorf("outer content = %v", outer.ToDict(true)["content"])
	}
	if len(outer.Captures) != 1 {
		t.Fatalf("outer captures = %v, want the nested block as a single capture", outer.Captures)
	}
	inner := outer.Captures[0].(ContentBlockElement)
	if inner.ToDict(true)["content"] != "{1}" {
		t.Errorf("inner content = %v", inner.ToDict(true)["content"])
	}
}
