package grammar

import (
	"fmt"

	"github.com/npillmayer/tmgrammar"
)

// Element is implemented by ContentElement and ContentBlockElement. See
// SPEC_FULL.md §3 for the data model and sphinx_matlab/grammar/elements.py
// for the ParsedElement/ParsedElementBlock shape this mirrors.
type Element interface {
	fmt.Stringer
	TokenName() string
	Span() tmgrammar.Span
	// ToDict converts the element to a dictionary form with the stable key
	// order {token, begin, end, content, captures}. token is always present,
	// even when empty; content is present exactly when includeContent is
	// true, even when empty; begin, end and captures are omitted when empty.
	ToDict(includeContent bool) map[string]any
}

// contentReader is the subset of handler.ContentHandler element
// construction needs, kept narrow so this file doesn't import handler.
type contentReader interface {
	ReadPos(start, end tmgrammar.POS) string
	Range(start, end tmgrammar.POS) []tmgrammar.POS
}

// ContentElement is a scope-annotated span of the input: a token name, the
// grammar node that produced it (for debugging/serialization), the verbatim
// content, the positions it occupies, and any child captures.
type ContentElement struct {
	Token    string
	Grammar  *RawGrammar
	Content  string
	Indices  []tmgrammar.POS
	Captures []Element
	span     tmgrammar.Span
}

// NewContentElement builds a ContentElement spanning [start,end) of h.
func NewContentElement(h contentReader, token string, g *RawGrammar, start, end tmgrammar.POS, captures []Element) ContentElement {
	return ContentElement{
		Token:    token,
		Grammar:  g,
		Content:  h.ReadPos(start, end),
		Indices:  h.Range(start, end),
		Captures: captures,
		span:     tmgrammar.Span{start, end},
	}
}

func (e ContentElement) TokenName() string { return e.Token }

// Span returns the element's start and end position. content equals
// read_pos(start,end) by construction (SPEC_FULL.md §3, testable property 1).
func (e ContentElement) Span() tmgrammar.Span { return e.span }

func (e ContentElement) String() string {
	content := e.Content
	if len(content) > 15 {
		content = content[:15] + "..."
	}
	return fmt.Sprintf("%s<<%s>>(%d)", e.Token, content, len(e.Captures))
}

// ToDict implements Element.
func (e ContentElement) ToDict(includeContent bool) map[string]any {
	out := map[string]any{"token": e.Token}
	if includeContent {
		out["content"] = e.Content
	}
	if len(e.Captures) > 0 {
		out["captures"] = elementsToDicts(e.Captures, includeContent)
	}
	return out
}

// ContentBlockElement is a ContentElement that was produced by a begin/end
// (or begin/while) parser: it additionally carries the elements matched by
// the begin and end (or while) patterns.
type ContentBlockElement struct {
	ContentElement
	Begin []Element
	End   []Element
}

func (e ContentBlockElement) String() string {
	return fmt.Sprintf("Block:%s", e.ContentElement.String())
}

// ToDict implements Element.
func (e ContentBlockElement) ToDict(includeContent bool) map[string]any {
	out := e.ContentElement.ToDict(includeContent)
	if len(e.Begin) > 0 {
		out["begin"] = elementsToDicts(e.Begin, includeContent)
	}
	if len(e.End) > 0 {
		out["end"] = elementsToDicts(e.End, includeContent)
	}
	return out
}

func elementsToDicts(elems []Element, includeContent bool) []map[string]any {
	out := make([]map[string]any, len(elems))
	for i, el := range elems {
		out[i] = el.ToDict(includeContent)
	}
	return out
}

// OrderedKeys returns the keys present in d in the stable order
// {token, begin, end, content, captures} that SPEC_FULL.md §3 requires for
// serialization, skipping any key not present in d.
func OrderedKeys(d map[string]any) []string {
	order := []string{"token", "begin", "end", "content", "captures"}
	out := make([]string, 0, len(order))
	for _, k := range order {
		if _, ok := d[k]; ok {
			out = append(out, k)
		}
	}
	return out
}
