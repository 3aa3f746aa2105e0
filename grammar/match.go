package grammar

import (
	"github.com/npillmayer/tmgrammar"
	"github.com/npillmayer/tmgrammar/handler"
)

// MatchParser implements the "match" grammar kind (SPEC_FULL.md §4.6): a
// single regex fired once against the handler, its captures resolved against
// the capture parsers, with the whole match optionally wrapped in a token.
type MatchParser struct {
	parserHeader
	pattern  *handler.Pattern
	captures map[int]Parser
}

func newMatchParser(g RawGrammar, lang *Language, key string) (*MatchParser, error) {
	pat, anchored, err := compilePattern(g.Match)
	if err != nil {
		return nil, err
	}
	if err := checkCaptureGroups(pat, g.Captures); err != nil {
		return nil, err
	}
	captures, err := newCaptures(g.Captures, lang)
	if err != nil {
		return nil, err
	}
	h := newHeader(g, lang, key)
	h.Anchored = anchored
	return &MatchParser{parserHeader: h, pattern: pat, captures: captures}, nil
}

func (p *MatchParser) initializeRepository(lang *Language) error {
	if p.Initialized {
		return nil
	}
	p.Initialized = true
	return initializeCaptures(p.captures, lang)
}

// Parse implements Parser.
func (p *MatchParser) Parse(h *handler.ContentHandler, starting, boundary tmgrammar.POS, opts tmgrammar.ParseOptions) (bool, []Element, tmgrammar.Span) {
	m, span := h.Search(p.pattern, starting, boundary, opts.AllowLeadingAll)
	if m == nil {
		return false, nil, tmgrammar.NullSpan
	}
	captures, ok := resolveCaptures(h, m, p.captures, opts.Deeper())
	if !ok {
		tracer().Debugf("MatchParser %s rejected: capture mismatch", p.identity())
		return false, nil, tmgrammar.NullSpan
	}
	h.Anchor = span.End()
	if p.Token == "" {
		tracer().Infof("MatchParser %s matched <%s> (untokenized)", p.identity(), m.Text)
		return true, captures, span
	}
	el := NewContentElement(h, p.Token, p.grammar, span.Start(), span.End(), captures)
	tracer().Infof("MatchParser %s matched <%s>", p.identity(), el.Content)
	return true, []Element{el}, span
}

// initializeCaptures resolves includes reachable from capture parsers,
// mirroring the repository walk initializeRepository does for Patterns.
func initializeCaptures(captures map[int]Parser, lang *Language) error {
	for idx, p := range captures {
		if u, unresolved := isUnresolved(p); unresolved {
			resolved, err := lang.resolve(u.name)
			if err != nil {
				return err
			}
			captures[idx] = resolved
			if err := resolved.initializeRepository(lang); err != nil {
				return err
			}
			continue
		}
		if err := p.initializeRepository(lang); err != nil {
			return err
		}
	}
	return nil
}
