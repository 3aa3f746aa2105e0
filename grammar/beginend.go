package grammar

import (
	"strings"

	"github.com/npillmayer/tmgrammar"
	"github.com/npillmayer/tmgrammar/handler"
)

// BeginEndParser implements the "begin/end" grammar kind (SPEC_FULL.md §4.8),
// the hardest of the four: once the begin pattern matches, it alternates
// between trying its own inner patterns and trying the end pattern until one
// wins the current position, deciding ties the way the reference interpreter
// does — by whether the winning span lands exactly on the end pattern, by
// which one starts earlier, and by the applyEndPatternLast escape hatch for
// a begin/end pattern that can recursively include itself.
type BeginEndParser struct {
	PatternsParser
	betweenContent      bool
	applyEndPatternLast bool
	beginPattern        *handler.Pattern
	endPattern          *handler.Pattern
	parsersBegin        map[int]Parser
	parsersEnd          map[int]Parser
}

func newBeginEndParser(g RawGrammar, lang *Language, key string) (*BeginEndParser, error) {
	base, err := newPatternsParser(g, lang, key)
	if err != nil {
		return nil, err
	}
	beginPat, anchored, err := compilePattern(g.Begin)
	if err != nil {
		return nil, err
	}
	endPat, _, err := compilePattern(g.End)
	if err != nil {
		return nil, err
	}
	if err := checkCaptureGroups(beginPat, g.BeginCaptures); err != nil {
		return nil, err
	}
	if err := checkCaptureGroups(endPat, g.EndCaptures); err != nil {
		return nil, err
	}
	beginCaptures, err := newCaptures(g.BeginCaptures, lang)
	if err != nil {
		return nil, err
	}
	endCaptures, err := newCaptures(g.EndCaptures, lang)
	if err != nil {
		return nil, err
	}

	p := &BeginEndParser{
		PatternsParser:      *base,
		applyEndPatternLast: g.ApplyEndPatternLast,
		beginPattern:        beginPat,
		endPattern:          endPat,
		parsersBegin:        beginCaptures,
		parsersEnd:          endCaptures,
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

func (p *BeginEndParser) initializeRepository(lang *Language) error {
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
	return initializeCaptures(p.parsersEnd, lang)
}

// tryBodyPatterns runs the begin/end body's own "patterns" list once at
// current, in order, returning the first hit. It reports whether the winning
// parser was p itself, which the caller uses to defer the end pattern
// (applyEndPatternLast) for a begin/end block that recursively includes its
// own rule.
func (p *BeginEndParser) tryBodyPatterns(patterns []Parser, h *handler.ContentHandler, current, boundary tmgrammar.POS, opts tmgrammar.ParseOptions, allowLeadingAll bool) (parsed bool, elements []Element, span tmgrammar.Span, self bool) {
	innerOpts := opts
	innerOpts.AllowLeadingAll = allowLeadingAll
	return trySequential(patterns, h, current, boundary, innerOpts, Parser(p))
}

// Parse implements Parser.
func (p *BeginEndParser) Parse(h *handler.ContentHandler, starting, boundary tmgrammar.POS, opts tmgrammar.ParseOptions) (bool, []Element, tmgrammar.Span) {
	beginMatch, beginSpan := h.Search(p.beginPattern, starting, boundary, opts.AllowLeadingAll)
	if beginMatch == nil {
		tracer().Debugf("BeginEndParser %s no begin match", p.identity())
		return false, nil, tmgrammar.NullSpan
	}
	beginElements, ok := resolveCaptures(h, beginMatch, p.parsersBegin, opts.Deeper())
	if !ok {
		tracer().Debugf("BeginEndParser %s rejected: begin capture mismatch", p.identity())
		return false, nil, tmgrammar.NullSpan
	}
	tracer().Infof("BeginEndParser %s found begin <%s>", p.identity(), beginMatch.Text)

	current := beginSpan.End()
	patterns := make([]Parser, 0, len(p.Patterns))
	for _, parser := range p.Patterns {
		if hd := parser.Header(); hd == nil || !hd.Disabled {
			patterns = append(patterns, parser)
		}
	}

	var midElements, endElements []Element
	closing := boundary
	finalEnd := boundary
	firstRun := true
	ended := false

loop:
	for current.LessEq(boundary) {
		applyEndLast := false

		parsed, captureElements, captureSpan, self := p.tryBodyPatterns(patterns, h, current, boundary, opts, false)
		if parsed && self {
			applyEndLast = true
		}

		endMatch, endSpan := h.Search(p.endPattern, current, boundary, false)
		var endElementsLocal []Element
		if endMatch != nil {
			endElementsLocal, _ = resolveCaptures(h, endMatch, p.parsersEnd, opts.Deeper())
		}

		if !parsed && endMatch == nil {
			parsed, captureElements, captureSpan, self = p.tryBodyPatterns(patterns, h, current, boundary, opts, true)
			applyEndLast = parsed && self

			endMatch, endSpan = h.Search(p.endPattern, current, boundary, true)
			endElementsLocal = nil
			if endMatch != nil {
				endElementsLocal, _ = resolveCaptures(h, endMatch, p.parsersEnd, opts.Deeper())
			}
		}

		brokeNow := false

		switch {
		case endMatch != nil && parsed:
			captureBeforeEnd := h.Prev(captureSpan.End())
			var patternAtEnd bool
			if h.ReadLength(captureBeforeEnd, 1, false) == "\n" {
				patternAtEnd = endSpan.End() == captureBeforeEnd || endSpan.End() == captureSpan.End()
			} else {
				patternAtEnd = endSpan.End() == captureSpan.End()
			}
			endBeforePattern := endSpan.Start().LessEq(captureSpan.Start())
			emptySpanEnd := endSpan.End() == endSpan.Start()

			switch {
			case patternAtEnd && emptySpanEnd:
				midElements = append(midElements, captureElements...)
				closing = endClosing(p.betweenContent, endSpan)
				endElements = endElementsLocal
				finalEnd = endSpan.End()
				brokeNow = true
			case patternAtEnd && endBeforePattern && !p.applyEndPatternLast && !applyEndLast:
				closing = endClosing(p.betweenContent, endSpan)
				endElements = endElementsLocal
				finalEnd = endSpan.End()
				brokeNow = true
			case patternAtEnd && endBeforePattern:
				midElements = append(midElements, captureElements...)
				current = captureSpan.End()
			case captureSpan.Start().Less(endSpan.Start()):
				midElements = append(midElements, captureElements...)
				current = captureSpan.End()
			default:
				closing = endClosing(p.betweenContent, endSpan)
				endElements = endElementsLocal
				finalEnd = endSpan.End()
				brokeNow = true
			}

		case endMatch != nil:
			closing = endClosing(p.betweenContent, endSpan)
			endElements = endElementsLocal
			finalEnd = endSpan.End()
			brokeNow = true

		case parsed:
			midElements = append(midElements, captureElements...)
			if h.ReadLength(captureSpan.End(), 1, false) == "\n" {
				em2, es2 := h.Search(p.endPattern, captureSpan.End(), boundary, false)
				if em2 != nil && es2.End().LessEq(h.Next(captureSpan.End())) {
					current = captureSpan.End()
				} else {
					current = h.Next(captureSpan.End())
				}
			} else {
				current = captureSpan.End()
			}

		default:
			line := h.ReadLine(current)
			if line != "" && strings.TrimSpace(line) != "" {
				tracer().Errorf("BeginEndParser %s: no patterns matched in line, skipping <%s>", p.identity(), line)
			}
			lineEnd := tmgrammar.POS{current.Line(), h.LineLengths()[current.Line()]}
			next := h.Next(lineEnd)
			if next == current {
				// End of the buffer: there is nothing left to advance over.
				break loop
			}
			current = next
		}

		if brokeNow {
			ended = true
			break
		}
		if applyEndLast {
			current = h.Next(current)
		}
		if firstRun {
			filtered := make([]Parser, 0, len(patterns))
			for _, parser := range patterns {
				if hd := parser.Header(); hd == nil || !hd.Anchored {
					filtered = append(filtered, parser)
				}
			}
			patterns = filtered
			firstRun = false
		}
	}

	if !ended {
		tracer().Errorf("BeginEndParser %s: no end match, closing at boundary %s", p.identity(), boundary)
	}

	start := beginSpan.Start()
	if p.betweenContent {
		start = beginSpan.End()
	}
	content := h.ReadPos(start, closing)
	tracer().Infof("BeginEndParser %s found <%.15s>", p.identity(), content)

	var elements []Element
	if p.Token != "" {
		block := ContentBlockElement{
			ContentElement: NewContentElement(h, p.Token, p.grammar, start, closing, midElements),
			Begin:          beginElements,
			End:            endElements,
		}
		elements = []Element{block}
	} else {
		elements = append(elements, beginElements...)
		elements = append(elements, midElements...)
		elements = append(elements, endElements...)
	}

	return true, elements, tmgrammar.Span{beginSpan.Start(), finalEnd}
}

func endClosing(betweenContent bool, endSpan tmgrammar.Span) tmgrammar.POS {
	if betweenContent {
		return endSpan.Start()
	}
	return endSpan.End()
}
