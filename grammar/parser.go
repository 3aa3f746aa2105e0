package grammar

import (
	"github.com/cnf/structhash"

	"github.com/npillmayer/tmgrammar"
	"github.com/npillmayer/tmgrammar/handler"
)

// Parser is the tagged union over the four pattern kinds described in
// SPEC_FULL.md §9 ("Tagged variants over inheritance"): TokenParser,
// MatchParser, BeginEndParser, BeginWhileParser, plus PatternsParser, which
// doubles as the base behavior BeginEndParser and BeginWhileParser embed.
//
// Go has no sum type, so the "tag" is simply which concrete type, behind
// this interface, a caller holds; unresolvedInclude (below) occupies the
// same interface slot before initialization and is the Go counterpart of
// the design note's `Unresolved(name)` variant.
type Parser interface {
	// Parse walks the handler from starting, consuming up to boundary, and
	// reports whether it matched, the elements produced, and the span
	// consumed. Equivalent to the reference's GrammarParser._parse.
	Parse(h *handler.ContentHandler, starting, boundary tmgrammar.POS, opts tmgrammar.ParseOptions) (bool, []Element, tmgrammar.Span)

	// Header exposes the common fields every concrete parser carries.
	Header() *parserHeader

	// initializeRepository resolves this parser's own include slots and
	// recurses into newly-resolved children exactly once. lang provides
	// $self/$base/#name lookups. An include that cannot be resolved is fatal
	// for the grammar and is reported here rather than deferred to Parse.
	initializeRepository(lang *Language) error
}

// parserHeader carries the fields common to every parser kind (SPEC_FULL.md
// §3, "Parser node"). Embedded by value in every concrete parser type;
// concrete types expose it via Header().
type parserHeader struct {
	Token    string
	Comment  string
	Disabled bool
	Key      string

	// Language is a weak back-reference: relation + lookup only, never
	// ownership, per SPEC_FULL.md §9's arena/weak-reference design note.
	Language *Language

	Initialized bool
	Anchored    bool

	InjectedPatterns []Parser

	grammar *RawGrammar
}

// Header implements Parser for any type embedding parserHeader.
func (h *parserHeader) Header() *parserHeader { return h }

func (h *parserHeader) identity() string {
	if h.Key != "" {
		return h.Key
	}
	if h.Comment != "" {
		return h.Comment
	}
	return h.debugID()
}

// debugID gives every parser node a short, stable identity for trace lines
// without hand-rolling a hash, the way lr/earley/earley.go's hash() helper
// builds memo keys from structhash.
func (h *parserHeader) debugID() string {
	sum, err := structhash.Hash(struct {
		Token string
		Key   string
	}{h.Token, h.Key}, 1)
	if err != nil {
		return "?"
	}
	if len(sum) > 10 {
		sum = sum[:10]
	}
	return sum
}

// unresolvedInclude occupies a Parser slot before repository initialization
// resolves it; see SPEC_FULL.md §9, "Unresolved includes".
type unresolvedInclude struct {
	name string
}

func (u *unresolvedInclude) Header() *parserHeader { return nil }

func (u *unresolvedInclude) Parse(h *handler.ContentHandler, starting, boundary tmgrammar.POS, opts tmgrammar.ParseOptions) (bool, []Element, tmgrammar.Span) {
	panic("tmgrammar: unresolved include " + u.name + " reached _parse; initialize_repository was not run or failed silently")
}

func (u *unresolvedInclude) initializeRepository(lang *Language) error {
	// Resolution happens at the call site holding the slot (patterns.go's
	// resolveSlice, match.go's initializeCaptures), which replaces this
	// value before recursing; this method is never reached on an
	// unresolvedInclude itself once NewLanguage has succeeded.
	return nil
}

// isUnresolved reports whether p is still an unresolved include marker.
func isUnresolved(p Parser) (*unresolvedInclude, bool) {
	u, ok := p.(*unresolvedInclude)
	return u, ok
}
