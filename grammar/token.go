package grammar

import (
	"github.com/npillmayer/tmgrammar"
	"github.com/npillmayer/tmgrammar/handler"
)

// TokenParser emits a single element of its token spanning [starting,
// boundary) verbatim. It's the fallback when no match/begin/patterns key is
// present (SPEC_FULL.md §4.5).
type TokenParser struct {
	parserHeader
}

func newTokenParser(g RawGrammar, lang *Language, key string) *TokenParser {
	p := &TokenParser{parserHeader: newHeader(g, lang, key)}
	p.Initialized = true
	return p
}

func (p *TokenParser) initializeRepository(lang *Language) error {
	p.Initialized = true
	return nil
}

// Parse implements Parser.
func (p *TokenParser) Parse(h *handler.ContentHandler, starting, boundary tmgrammar.POS, opts tmgrammar.ParseOptions) (bool, []Element, tmgrammar.Span) {
	el := NewContentElement(h, p.Token, p.grammar, starting, boundary, nil)
	h.Anchor = boundary
	tracer().Infof("TokenParser %s found <%s>", p.identity(), el.Content)
	return true, []Element{el}, tmgrammar.Span{starting, boundary}
}
