package grammar

import (
	"github.com/npillmayer/tmgrammar"
	"github.com/npillmayer/tmgrammar/handler"
)

// BeginWhileParser implements the "begin/while" grammar kind (SPEC_FULL.md
// §4.9). After the begin match, content is consumed line by line: the inner
// patterns run to the end of each line, then the while pattern is tried
// anchored at the start of the next line; a match continues the block and
// contributes to its While elements the same way an end pattern's captures
// would, a miss closes the block before that line.
//
// The reference this engine is modeled on leaves this parser unimplemented
// (it has no MATLAB rule using "while"), so this implementation is grounded
// on the general begin/end arbitration algorithm and the TextMate grammar
// convention for while-continuation rather than on a working reference; it
// has not been exercised against a real begin/while grammar.
type BeginWhileParser struct {
	PatternsParser
	betweenContent bool
	beginPattern   *handler.Pattern
	whilePattern   *handler.Pattern
	parsersBegin   map[int]Parser
	parsersWhile   map[int]Parser
}

func newBeginWhileParser(g RawGrammar, lang *Language, key string) (*BeginWhileParser, error) {
	base, err := newPatternsParser(g, lang, key)
	if err != nil {
		return nil, err
	}
	beginPat, anchored, err := compilePattern(g.Begin)
	if err != nil {
		return nil, err
	}
	whilePat, _, err := compilePattern(g.While)
	if err != nil {
		return nil, err
	}
	if err := checkCaptureGroups(beginPat, g.BeginCaptures); err != nil {
		return nil, err
	}
	if err := checkCaptureGroups(whilePat, g.WhileCaptures); err != nil {
		return nil, err
	}
	beginCaptures, err := newCaptures(g.BeginCaptures, lang)
	if err != nil {
		return nil, err
	}
	whileCaptures, err := newCaptures(g.WhileCaptures, lang)
	if err != nil {
		return nil, err
	}

	p := &BeginWhileParser{
		PatternsParser: *base,
		beginPattern:   beginPat,
		whilePattern:   whilePat,
		parsersBegin:   beginCaptures,
		parsersWhile:   whileCaptures,
	}
	if g.ContentName != "" {
		p.Token = g.ContentName
		p.betweenContent = true
	} else {
		p.Token = g.Name
	}
	p.Anchored = anchored
	return p, nil
}

func (p *BeginWhileParser) initializeRepository(lang *Language) error {
	if p.Initialized {
		return nil
	}
	p.Initialized = true
	if err := resolveSlice(p.Patterns, lang); err != nil {
		return err
	}
	if err := initializeCaptures(p.parsersBegin, lang); err != nil {
		return err
	}
	return initializeCaptures(p.parsersWhile, lang)
}

// Parse implements Parser.
func (p *BeginWhileParser) Parse(h *handler.ContentHandler, starting, boundary tmgrammar.POS, opts tmgrammar.ParseOptions) (bool, []Element, tmgrammar.Span) {
	beginMatch, beginSpan := h.Search(p.beginPattern, starting, boundary, opts.AllowLeadingAll)
	if beginMatch == nil {
		tracer().Debugf("BeginWhileParser %s no begin match", p.identity())
		return false, nil, tmgrammar.NullSpan
	}
	beginElements, ok := resolveCaptures(h, beginMatch, p.parsersBegin, opts.Deeper())
	if !ok {
		tracer().Debugf("BeginWhileParser %s rejected: begin capture mismatch", p.identity())
		return false, nil, tmgrammar.NullSpan
	}

	patterns := make([]Parser, 0, len(p.Patterns))
	for _, parser := range p.Patterns {
		if hd := parser.Header(); hd == nil || !hd.Disabled {
			patterns = append(patterns, parser)
		}
	}

	current := beginSpan.End()
	var midElements, whileElements []Element
	closing := current
	finalEnd := current

	for current.Less(boundary) {
		lineEnd := tmgrammar.POS{current.Line(), h.LineLengths()[current.Line()]}
		if boundary.Less(lineEnd) {
			lineEnd = boundary
		}

		for current.Less(lineEnd) {
			parsed, els, span, _ := trySequential(patterns, h, current, lineEnd, opts, nil)
			if !parsed {
				break
			}
			midElements = append(midElements, els...)
			current = span.End()
		}
		closing = current
		finalEnd = current

		if !current.Less(boundary) {
			break
		}
		next := h.Next(lineEnd)
		if !next.Less(boundary) {
			break
		}

		whileMatch, whileSpan := h.Search(p.whilePattern, next, boundary, false)
		if whileMatch == nil {
			break
		}
		els, ok := resolveCaptures(h, whileMatch, p.parsersWhile, opts.Deeper())
		if !ok {
			break
		}
		whileElements = append(whileElements, els...)
		current = whileSpan.End()
		closing = current
		finalEnd = current
	}

	start := beginSpan.Start()
	if p.betweenContent {
		start = beginSpan.End()
	}
	content := h.ReadPos(start, closing)
	tracer().Infof("BeginWhileParser %s found <%.15s>", p.identity(), content)

	var elements []Element
	if p.Token != "" {
		block := ContentBlockElement{
			ContentElement: NewContentElement(h, p.Token, p.grammar, start, closing, midElements),
			Begin:          beginElements,
			End:            whileElements,
		}
		elements = []Element{block}
	} else {
		elements = append(elements, beginElements...)
		elements = append(elements, midElements...)
		elements = append(elements, whileElements...)
	}

	return true, elements, tmgrammar.Span{beginSpan.Start(), finalEnd}
}
