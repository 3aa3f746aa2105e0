// Package compare runs a reference tokenizer out-of-process and diffs its
// output against this engine's own tokenization, for regression testing the
// way test_matlab.py's RegressionTestClass pairs parse_python against
// parse_node and asserts the two token trees are equal.
package compare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/google/go-cmp/cmp"

	"github.com/npillmayer/tmgrammar/grammar"
)

// Report is the outcome of comparing this engine's tokenization of source
// against a reference tokenizer's, for a single source file.
type Report struct {
	Source string
	Equal  bool
	Diff   string
}

// Reference runs an external tokenizer as a subprocess, passing it the
// scope name and source text, and decodes its stdout as the same
// token-dict tree shape Element.ToDict produces: {token, content, begin,
// end, captures}. The subprocess is expected to behave like a thin wrapper
// around vscode-textmate, emitting a single JSON array of top-level
// token dicts.
type Reference struct {
	// Command is the external tokenizer, e.g. "node" with Args pointing at
	// a small vscode-textmate driver script.
	Command string
	Args    []string
}

// Tokenize shells out to the reference tokenizer, feeding it source on
// stdin, and returns its decoded token-dict tree.
func (r Reference) Tokenize(ctx context.Context, scope string, source []byte) ([]map[string]any, error) {
	args := append(append([]string{}, r.Args...), scope)
	cmd := exec.CommandContext(ctx, r.Command, args...)
	cmd.Stdin = bytes.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("reference tokenizer: %w: %s", err, stderr.String())
	}
	var tokens []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &tokens); err != nil {
		return nil, fmt.Errorf("reference tokenizer: decode output: %w", err)
	}
	return tokens, nil
}

// Run tokenizes source with lang, tokenizes it again with ref, and reports
// whether the two token-dict trees are structurally equal.
//
// Both sides are round-tripped through JSON before diffing: lang's
// ToDict() trees are built from concrete map[string]any/[]map[string]any
// values, while the reference's are decoded generically
// (map[string]interface{}/[]interface{}); re-decoding our own side the
// same way puts both on equal footing for cmp.Diff, which otherwise
// reports a spurious type mismatch on every nested capture.
func Run(ctx context.Context, lang *grammar.Language, ref Reference, scope, source string) (Report, error) {
	refTokens, err := ref.Tokenize(ctx, scope, []byte(source))
	if err != nil {
		return Report{Source: source}, err
	}

	elements := lang.Tokenize(source)
	ownDicts := make([]map[string]any, 0, len(elements))
	for _, el := range elements {
		ownDicts = append(ownDicts, el.ToDict(true))
	}
	ownTokens, err := normalize(ownDicts)
	if err != nil {
		return Report{Source: source}, fmt.Errorf("normalize own tokens: %w", err)
	}

	diff := cmp.Diff(refTokens, ownTokens)
	return Report{
		Source: source,
		Equal:  diff == "",
		Diff:   diff,
	}, nil
}

func normalize(dicts []map[string]any) ([]map[string]any, error) {
	raw, err := json.Marshal(dicts)
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
