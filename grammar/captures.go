package grammar

import (
	"github.com/npillmayer/tmgrammar"
	"github.com/npillmayer/tmgrammar/handler"
)

// resolveCaptures implements SPEC_FULL.md §4.2: given a match and a map of
// group-index -> parser, it produces the flat list of child elements.
//
// Group 0, if assigned a parser, is special-cased to a single element
// spanning the whole match using that parser's token, with no recursion.
// Groups 1..N are resolved by recursing into the assigned parser's Parse,
// restricted to the group's span; an empty or unmatched group is skipped
// silently, and a non-empty group whose parser fails to match makes capture
// resolution fail entirely ("capture mismatch"), which the caller must treat
// as a rejection of the outer match.
func resolveCaptures(h *handler.ContentHandler, m *handler.Match, parsers map[int]Parser, opts tmgrammar.ParseOptions) ([]Element, bool) {
	if m == nil || len(parsers) == 0 {
		return nil, true
	}

	var elements []Element

	if p0, ok := parsers[0]; ok {
		g := m.Group0()
		if g.Matched && !g.Empty() {
			elements = append(elements, NewContentElement(h, p0.Header().Token, p0.Header().grammar, g.Span.Start(), g.Span.End(), nil))
		}
	}

	for idx := 1; idx < m.NumGroups(); idx++ {
		parser, assigned := parsers[idx]
		if !assigned {
			continue
		}
		g := m.At(idx)
		if !g.Matched || g.Empty() {
			continue
		}
		parsed, childElements, _ := parser.Parse(h, g.Span.Start(), g.Span.End(), opts)
		if !parsed {
			tracer().Debugf("capture mismatch: group %d (%q) did not parse with %s", idx, g.Text, parser.Header().identity())
			return nil, false
		}
		elements = append(elements, childElements...)
	}

	return elements, true
}
