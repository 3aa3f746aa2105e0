package handler

import "github.com/npillmayer/tmgrammar"

// Group is one capture group of a Match: its span in the buffer and the
// captured text. A Group with Matched=false denotes a group the pattern
// declares but that did not participate in this particular match.
type Group struct {
	Matched bool
	Span    tmgrammar.Span
	Text    string
}

// Empty reports whether the group matched but captured zero characters.
func (g Group) Empty() bool {
	return g.Matched && g.Span.Empty()
}

// Match is the result of a successful ContentHandler.Search: the overall
// span (group 0) plus any named/numbered capture groups, ordered by group
// index ascending.
type Match struct {
	Span   tmgrammar.Span
	Text   string
	Groups []Group // Groups[0] is the whole match, mirroring Groups[1:] as capture groups 1..N
}

// Group0 returns the whole-match group.
func (m *Match) Group0() Group {
	if m == nil || len(m.Groups) == 0 {
		return Group{}
	}
	return m.Groups[0]
}

// At returns group i, or the zero Group if i is out of range.
func (m *Match) At(i int) Group {
	if m == nil || i < 0 || i >= len(m.Groups) {
		return Group{}
	}
	return m.Groups[i]
}

// NumGroups returns the number of groups captured by the underlying pattern,
// including group 0.
func (m *Match) NumGroups() int {
	if m == nil {
		return 0
	}
	return len(m.Groups)
}
