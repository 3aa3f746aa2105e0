package handler

import (
	"fmt"
	"strings"

	"github.com/limetext/rubex"
)

// Pattern is a compiled Oniguruma regular expression together with the
// static properties the search algorithm needs to know about it: whether it
// carries a look-behind assertion (requiring preceding context outside the
// normal search window) and whether it is \G-anchored (valid only at the
// handler's current Anchor).
type Pattern struct {
	source      string
	re          *rubex.Regexp
	lookbehind  bool
	anchored    bool
	groupNames  []string
}

// Compile compiles a TextMate-flavored (Oniguruma) regular expression.
func Compile(source string) (*Pattern, error) {
	re, err := rubex.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", source, err)
	}
	return &Pattern{
		source:     source,
		re:         re,
		lookbehind: strings.Contains(source, "(?<=") || strings.Contains(source, "(?<!"),
		anchored:   strings.Contains(source, `\G`),
		groupNames: re.SubexpNames(),
	}, nil
}

// Source returns the original pattern text, for diagnostics.
func (p *Pattern) Source() string {
	if p == nil {
		return ""
	}
	return p.source
}

// Lookbehind reports whether the pattern contains a look-behind assertion.
func (p *Pattern) Lookbehind() bool {
	return p != nil && p.lookbehind
}

// Anchored reports whether the pattern is \G-anchored.
func (p *Pattern) Anchored() bool {
	return p != nil && p.anchored
}

// NumGroups returns the number of capturing groups in the pattern (not
// counting group 0, the whole match).
func (p *Pattern) NumGroups() int {
	if p == nil || len(p.groupNames) == 0 {
		return 0
	}
	return len(p.groupNames) - 1
}

func (p *Pattern) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.source
}
