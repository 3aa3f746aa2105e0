package tmgrammar

import "fmt"

// POS is a position in a text buffer, addressed as (line, column), with
// column counted in characters, not bytes. POS is ordered lexicographically:
// (1,5) < (2,0) < (2,1).
type POS [2]int

// Line returns the line number of a position.
func (p POS) Line() int {
	return p[0]
}

// Column returns the column number of a position.
func (p POS) Column() int {
	return p[1]
}

// Less reports whether p occurs strictly before other.
func (p POS) Less(other POS) bool {
	if p[0] != other[0] {
		return p[0] < other[0]
	}
	return p[1] < other[1]
}

// LessEq reports whether p occurs at or before other.
func (p POS) LessEq(other POS) bool {
	return p == other || p.Less(other)
}

func (p POS) String() string {
	return fmt.Sprintf("(%d,%d)", p[0], p[1])
}

// Span is a pair of positions (start…end), denoting the half-open range a
// parsed element occupies in a ContentHandler's buffer.
type Span [2]POS

// NullSpan is returned by searches and matches that failed.
var NullSpan = Span{}

// Start returns the first position of a span.
func (s Span) Start() POS {
	return s[0]
}

// End returns the position just behind a span.
func (s Span) End() POS {
	return s[1]
}

// IsNull reports whether a span is the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Empty reports whether a span covers no characters.
func (s Span) Empty() bool {
	return s[0] == s[1]
}

func (s Span) String() string {
	return fmt.Sprintf("%s…%s", s[0], s[1])
}

// ParseOptions bundles the dynamic arguments threaded through every parser
// call. The reference implementation this engine is modeled on propagates
// these through **kwargs; Go makes the fields explicit instead, and each
// parser reads only the fields it recognizes (see SPEC_FULL.md, "Dynamic
// arguments").
type ParseOptions struct {
	// FindOne stops a PatternsParser at the first successful child.
	FindOne bool
	// Injections includes a language's injected_patterns in the search set.
	Injections bool
	// AllowLeadingAll allows a child pattern to skip leading characters up
	// to the boundary rather than requiring a match at the cursor or after
	// only whitespace on the same line.
	AllowLeadingAll bool
	// Verbosity is a nesting-depth counter, incremented by Deeper on each
	// recursion into a child parser.
	Verbosity int
}

// Deeper returns a copy of o with Verbosity incremented by one, used when
// recursing into a child parser.
func (o ParseOptions) Deeper() ParseOptions {
	o.Verbosity++
	return o
}
