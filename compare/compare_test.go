package compare

import (
	"context"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/tmgrammar/grammar"
)

func TestRunReportsEqualOnMatchingOutput(t *testing.T) {
	gtrace.SyntaxTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelDebug)

	lang, err := grammar.NewLanguage(grammar.RawGrammar{
		Patterns: []grammar.RawGrammar{
			{Name: "constant.numeric.decimal.matlab", Match: `[0-9]+`},
		},
	})
	if err != nil {
		t.Fatalf("NewLanguage: %v", err)
	}

	// A stand-in reference tokenizer: echoes back the exact JSON this
	// engine would itself produce for "42", so the round trip exercises
	// real subprocess plumbing without depending on a Node.js toolchain
	// being present in the test environment.
	ref := Reference{
		Command: "sh",
		Args:    []string{"-c", `printf '%s' '[{"token":"constant.numeric.decimal.matlab","content":"42"}]'`},
	}

	report, err := Run(context.Background(), lang, ref, "source.matlab", "42")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.Equal {
		t.Errorf("report.Equal = false, diff:\n%s", report.Diff)
	}
}

func TestRunReportsDiffOnMismatch(t *testing.T) {
	gtrace.SyntaxTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelDebug)

	lang, err := grammar.NewLanguage(grammar.RawGrammar{
		Patterns: []grammar.RawGrammar{
			{Name: "constant.numeric.decimal.matlab", Match: `[0-9]+`},
		},
	})
	if err != nil {
		t.Fatalf("NewLanguage: %v", err)
	}

	ref := Reference{
		Command: "sh",
		Args:    []string{"-c", `printf '%s' '[{"token":"constant.numeric.decimal.matlab","content":"43"}]'`},
	}

	report, err := Run(context.Background(), lang, ref, "source.matlab", "42")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Equal {
		t.Error("report.Equal = true, want a reported mismatch")
	}
	if report.Diff == "" {
		t.Error("report.Diff is empty, want a populated diff")
	}
}
