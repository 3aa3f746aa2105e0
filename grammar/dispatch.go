package grammar

import (
	"fmt"

	"github.com/npillmayer/tmgrammar/handler"
)

// newParser turns a grammar dict into one of the four concrete parser kinds,
// or an unresolvedInclude marker, per SPEC_FULL.md §4.3.
func newParser(g RawGrammar, lang *Language, key string) (Parser, error) {
	switch g.Kind() {
	case KindInclude:
		return &unresolvedInclude{name: g.Include}, nil
	case KindMatch:
		return newMatchParser(g, lang, key)
	case KindBeginEnd:
		return newBeginEndParser(g, lang, key)
	case KindBeginWhile:
		return newBeginWhileParser(g, lang, key)
	case KindPatterns:
		return newPatternsParser(g, lang, key)
	default:
		return newTokenParser(g, lang, key), nil
	}
}

// newCaptures compiles a RawCaptures map into group-index -> Parser slots,
// eagerly constructing (but not yet resolving includes for) each child.
func newCaptures(raw RawCaptures, lang *Language) (map[int]Parser, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[int]Parser, len(raw))
	for idx, sub := range raw {
		sub := sub
		p, err := newParser(sub, lang, "")
		if err != nil {
			return nil, fmt.Errorf("capture group %d: %w", idx, err)
		}
		out[idx] = p
	}
	return out, nil
}

func newHeader(g RawGrammar, lang *Language, key string) parserHeader {
	return parserHeader{
		Token:    g.Name,
		Comment:  g.Comment,
		Disabled: g.Disabled,
		Key:      key,
		Language: lang,
		grammar:  &g,
	}
}

// compilePattern compiles a regex field, marking the header Anchored if it
// contains \G, matching the reference's per-kind `if "\\G" in grammar[...]`.
func compilePattern(source string) (*handler.Pattern, bool, error) {
	pat, err := handler.Compile(source)
	if err != nil {
		return nil, false, err
	}
	return pat, pat.Anchored(), nil
}
