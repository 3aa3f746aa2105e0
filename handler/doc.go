/*
Package handler implements ContentHandler, the text buffer collaborator the
grammar package parses against.

A ContentHandler is an immutable-after-load line index over a UTF-8 buffer,
addressed by POS (line, column), plus a bounded, look-behind-aware regex
search built on Oniguruma (via github.com/limetext/rubex) and a mutable
Anchor cursor used by \G-anchored patterns.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package handler

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tmgrammar.handler'.
func tracer() tracing.Trace {
	return tracing.Select("tmgrammar.handler")
}
