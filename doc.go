/*
Package tmgrammar is a TextMate-grammar engine.

Given a declarative grammar — a tree of named, regex-driven patterns — and
an input text buffer, it produces a tree of tokenized elements annotating
ranges of the input with scope names. Package structure is as follows:

■ handler: Package handler implements ContentHandler, a line-indexed text
buffer with position arithmetic and bounded, look-behind-aware regex search.

■ grammar: Package grammar implements the grammar interpreter: the recursive
pattern-matching state machine that walks a grammar tree, dispatches between
token, match, begin/end and begin/while patterns, resolves repository
includes, and emits a typed element tree.

■ grammars/matlab: Package matlab supplies a concrete grammar exercising the
engine, mirroring a subset of the upstream MATLAB TextMate grammar.

■ compare: Package compare runs a reference tokenizer out-of-process and
diffs its output against this engine's, for regression testing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tmgrammar
