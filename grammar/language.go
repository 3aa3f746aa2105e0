package grammar

import (
	"github.com/npillmayer/tmgrammar"
	"github.com/npillmayer/tmgrammar/handler"
)

// Language is the root of a grammar: its own top-level pattern list plus a
// repository of named includes, all resolved by NewLanguage, and an ordered list of
// injection grammars. It implements Parser so that repository entries can
// resolve $self to it directly (SPEC_FULL.md §4.4, §4.10).
type Language struct {
	PatternsParser
	ScopeName  string
	Repository map[string]Parser
	Injections []Parser
}

// NewLanguage builds a Language from a raw grammar-dict root and resolves
// every include reachable from its top-level patterns, repository and
// injections.
func NewLanguage(root RawGrammar) (*Language, error) {
	lang := &Language{ScopeName: root.ScopeName(), Repository: map[string]Parser{}}

	base, err := newPatternsParser(root, lang, "")
	if err != nil {
		return nil, err
	}
	lang.PatternsParser = *base

	for name, sub := range root.Repository {
		p, err := newParser(sub, lang, "#"+name)
		if err != nil {
			return nil, err
		}
		lang.Repository[name] = p
	}

	injections := make([]Parser, 0, len(root.Injections))
	for i, sub := range root.Injections {
		p, err := newParser(sub, lang, subkey("injection", i))
		if err != nil {
			return nil, err
		}
		injections = append(injections, p)
	}
	lang.Injections = injections
	lang.InjectedPatterns = injections

	tracer().Debugf("language %s: repository keys %v", lang.ScopeName, repositoryKeys(lang.Repository))
	if err := lang.initializeRepository(lang); err != nil {
		return nil, err
	}
	for name, p := range lang.Repository {
		if !p.Header().isInitialized() {
			if err := p.initializeRepository(lang); err != nil {
				return nil, err
			}
		}
		lang.Repository[name] = p
	}
	if err := resolveSlice(lang.Injections, lang); err != nil {
		return nil, err
	}
	lang.InjectedPatterns = lang.Injections

	return lang, nil
}

func (h *parserHeader) isInitialized() bool {
	if h == nil {
		return true
	}
	return h.Initialized
}

// resolve implements the $self / $base / #name / scope.name include lookups
// a parser's repository initialization performs (SPEC_FULL.md §4.4). A
// dangling include is IncludedParserNotFoundError, fatal for the grammar
// (SPEC_FULL.md §7) — it is raised here, during initialization, not deferred
// to the first Parse that reaches it.
func (lang *Language) resolve(name string) (Parser, error) {
	switch {
	case name == "$self" || name == "$base":
		return Parser(lang), nil
	case len(name) > 0 && name[0] == '#':
		if p, ok := lang.Repository[name[1:]]; ok {
			return p, nil
		}
		return nil, &IncludedParserNotFoundError{Include: name, Key: lang.ScopeName}
	default:
		if name == lang.ScopeName {
			return Parser(lang), nil
		}
		return nil, &IncludedParserNotFoundError{Include: name, Key: lang.ScopeName}
	}
}

// Parse implements Parser for the root. It runs the root pattern list with
// the caller's opts as given (Tokenize supplies the top-level
// find_one=false, injections=true) and returns the matched elements
// themselves: the root grammar's own Name does not wrap them in an
// enclosing element (SPEC_FULL.md §4.10).
func (lang *Language) Parse(h *handler.ContentHandler, starting, boundary tmgrammar.POS, opts tmgrammar.ParseOptions) (bool, []Element, tmgrammar.Span) {
	root := lang.PatternsParser
	root.Token = ""
	return root.Parse(h, starting, boundary, opts)
}

// Tokenize runs a full top-level parse over text and returns the resulting
// element tree, the entry point SPEC_FULL.md §1 describes.
func (lang *Language) Tokenize(text string) []Element {
	h := handler.New(text)
	opts := tmgrammar.ParseOptions{FindOne: false, Injections: true, AllowLeadingAll: false}
	_, elements, _ := lang.Parse(h, tmgrammar.POS{0, 0}, h.Boundary(), opts)
	return elements
}
