/*
Package grammar implements the grammar interpreter: the recursive
pattern-matching state machine that walks a grammar tree, dispatches
between token, match, begin/end and begin/while patterns, resolves
$self/$base/repository-name includes, drives capture-group sub-parsing, and
emits a typed ContentElement/ContentBlockElement tree.

See SPEC_FULL.md §4 for the full component design this package realizes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tmgrammar.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("tmgrammar.grammar")
}
