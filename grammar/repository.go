package grammar

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// repositoryKeys returns the names registered in a repository in sorted
// order, for deterministic trace output — Go map iteration order is random,
// and grammar diagnostics should read the same way twice. Grounded on the
// closure/goto-set bookkeeping lr/tables.go builds with the same container.
func repositoryKeys(repo map[string]Parser) []string {
	set := treeset.NewWith(utils.StringComparator)
	for name := range repo {
		set.Add(name)
	}
	out := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(string))
	}
	return out
}
