package grammar

import (
	"strconv"

	"github.com/npillmayer/tmgrammar"
	"github.com/npillmayer/tmgrammar/handler"
)

// PatternsParser implements the "patterns" grammar kind (SPEC_FULL.md §4.7):
// an ordered disjunction of sub-parsers, tried in list order with the first
// one that matches (subject to the leading-whitespace-only gate) winning.
// It is also embedded by BeginEndParser and BeginWhileParser to run their own
// inner "patterns" list, and backs Language's top-level repository walk.
type PatternsParser struct {
	parserHeader
	Patterns []Parser
}

func newPatternsParser(g RawGrammar, lang *Language, key string) (*PatternsParser, error) {
	subs := make([]Parser, 0, len(g.Patterns))
	for i, sub := range g.Patterns {
		p, err := newParser(sub, lang, subkey(key, i))
		if err != nil {
			return nil, err
		}
		subs = append(subs, p)
	}
	return &PatternsParser{parserHeader: newHeader(g, lang, key), Patterns: subs}, nil
}

func subkey(key string, i int) string {
	if key == "" {
		return ""
	}
	return key + "[" + strconv.Itoa(i) + "]"
}

func (p *PatternsParser) initializeRepository(lang *Language) error {
	if p.Initialized {
		return nil
	}
	p.Initialized = true
	if err := resolveSlice(p.Patterns, lang); err != nil {
		return err
	}

	// Flatten nested PatternsParser children into this one's list, matching
	// the reference's repository-time splice of pure disjunction nodes.
	flat := make([]Parser, 0, len(p.Patterns))
	for _, parser := range p.Patterns {
		if nested, ok := parser.(*PatternsParser); ok {
			flat = append(flat, nested.Patterns...)
			continue
		}
		flat = append(flat, parser)
	}
	p.Patterns = flat
	return nil
}

// resolveSlice resolves unresolvedInclude markers in place and recurses into
// every parser's own initializeRepository, exactly once per slot. An include
// that cannot be resolved aborts the walk and is returned to the caller.
func resolveSlice(parsers []Parser, lang *Language) error {
	for i, p := range parsers {
		if u, unresolved := isUnresolved(p); unresolved {
			resolved, err := lang.resolve(u.name)
			if err != nil {
				return err
			}
			parsers[i] = resolved
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

// activePatterns returns parsers minus disabled ones, plus injections when
// either find_one or injections is requested (SPEC_FULL.md §4.7).
func activePatterns(p *PatternsParser, opts tmgrammar.ParseOptions) []Parser {
	out := make([]Parser, 0, len(p.Patterns)+len(p.InjectedPatterns))
	for _, parser := range p.Patterns {
		if hd := parser.Header(); hd != nil && hd.Disabled {
			continue
		}
		out = append(out, parser)
	}
	if opts.FindOne || opts.Injections {
		out = append(out, p.InjectedPatterns...)
	}
	return out
}

// trySequential tries every parser in order at current and returns the first
// one that matches, along with whether it was self (identity-compared via
// the self argument) — the priority-order disjunction both PatternsParser
// and BeginEndParser's inner-pattern search use.
func trySequential(patterns []Parser, h *handler.ContentHandler, current, boundary tmgrammar.POS, opts tmgrammar.ParseOptions, self Parser) (parsed bool, elements []Element, span tmgrammar.Span, wasSelf bool) {
	for _, parser := range patterns {
		if hd := parser.Header(); hd != nil && hd.Disabled {
			continue
		}
		ok, els, sp := parser.Parse(h, current, boundary, opts.Deeper())
		if ok {
			return true, els, sp, self != nil && parser == self
		}
	}
	return false, nil, tmgrammar.NullSpan, false
}

// Parse implements Parser: it repeatedly applies the pattern list from
// starting to boundary, collecting every match (find_one=false) or stopping
// at the first (find_one=true). When a plain pass (match at the cursor or
// after whitespace only) finds nothing, a round is retried once with
// AllowLeadingAll set, so any leading text up to the boundary may be
// skipped (SPEC_FULL.md §4.7, §4.10).
func (p *PatternsParser) Parse(h *handler.ContentHandler, starting, boundary tmgrammar.POS, opts tmgrammar.ParseOptions) (bool, []Element, tmgrammar.Span) {
	patterns := activePatterns(p, opts)
	var elements []Element
	current := starting

	for current.Less(boundary) {
		roundStart := current
		parsed, els, span, _ := trySequential(patterns, h, current, boundary, opts, nil)

		if !parsed {
			if opts.FindOne {
				break
			}
			var retryPatterns []Parser
			if !opts.AllowLeadingAll {
				retryPatterns = patterns
			}
			retryOpts := opts
			retryOpts.AllowLeadingAll = true
			parsed, els, span, _ = trySequential(retryPatterns, h, current, boundary, retryOpts, nil)
			if !parsed {
				break
			}
		}

		if opts.FindOne {
			tracer().Infof("PatternsParser %s found single element", p.identity())
			return p.wrap(h, starting, span.End(), els)
		}
		elements = append(elements, els...)
		current = span.End()

		if current == roundStart {
			tracer().Errorf("PatternsParser %s: handler did not move after a search round", p.identity())
			break
		}
	}

	if len(elements) == 0 {
		return false, nil, tmgrammar.Span{starting, current}
	}
	return p.wrap(h, starting, current, elements)
}

// wrap produces the result tuple for a successful parse: the matched
// elements spliced directly into the caller when the grammar has no Name of
// its own (a pure disjunction, the common case), or a single ContentElement
// carrying them as its captures when it does — the same token-vs-no-token
// distinction MatchParser.Parse makes for its own match, extended here so a
// named patterns-kind grammar used as a capture's parser (e.g. a dotted
// namespace path) wraps its segments instead of flattening them into the
// enclosing match's capture list.
func (p *PatternsParser) wrap(h *handler.ContentHandler, start, end tmgrammar.POS, elements []Element) (bool, []Element, tmgrammar.Span) {
	span := tmgrammar.Span{start, end}
	if p.Token == "" {
		return true, elements, span
	}
	el := NewContentElement(h, p.Token, p.grammar, start, end, elements)
	return true, []Element{el}, span
}
