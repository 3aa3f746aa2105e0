package grammar

import (
	"fmt"

	"github.com/npillmayer/tmgrammar/handler"
)

// IncludedParserNotFoundError is raised eagerly during repository
// initialization when an include cannot be resolved. Fatal for the
// grammar it occurs in — see SPEC_FULL.md §7.
type IncludedParserNotFoundError struct {
	Include string
	Key     string
}

func (e *IncludedParserNotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("include not found: %q (referenced from %q)", e.Include, e.Key)
	}
	return fmt.Sprintf("include not found: %q", e.Include)
}

// RegexGroupsMismatchError is raised when a declared capture map references
// a group index the compiled pattern does not have. Returned by
// checkCaptureGroups when the parser is constructed, so the grammar fails to
// build.
type RegexGroupsMismatchError struct {
	Pattern string
	Group   int
	NumHave int
}

func (e *RegexGroupsMismatchError) Error() string {
	return fmt.Sprintf("pattern %q declares a capture for group %d but only has %d groups", e.Pattern, e.Group, e.NumHave)
}

// checkCaptureGroups validates that every capture index raw declares (other
// than 0, the whole match) actually exists in pat, raised eagerly at parser
// construction time rather than deferred to the first match attempt.
func checkCaptureGroups(pat *handler.Pattern, raw RawCaptures) error {
	have := pat.NumGroups()
	for idx := range raw {
		if idx == 0 {
			continue
		}
		if idx < 0 || idx > have {
			return &RegexGroupsMismatchError{Pattern: pat.Source(), Group: idx, NumHave: have}
		}
	}
	return nil
}
