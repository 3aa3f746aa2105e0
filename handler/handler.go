package handler

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/tmgrammar"
)

// line is one physical line of the buffer, kept both as raw text (including
// its terminating newline, if any) and pre-decoded into runes so column
// arithmetic never has to re-decode UTF-8 on every call.
type line struct {
	text  string
	runes []rune
}

// ContentHandler is an immutable-after-load text buffer indexed by POS, with
// a bounded, look-behind-aware regex search and a mutable Anchor cursor used
// by \G-anchored patterns. See SPEC_FULL.md §4.1.
type ContentHandler struct {
	lines []line

	// Anchor is updated by successful matches; consulted only by
	// \G-anchored patterns (see Pattern.Anchored).
	Anchor tmgrammar.POS
}

// lookbehindPads are the progressively larger look-behind context windows
// (in runes) the search retries with when a pattern carries a look-behind
// assertion, per SPEC_FULL.md §4.1 ("steps (≤5)", "cap (≥100 characters)").
var lookbehindPads = []int{20, 40, 60, 80, 100}

// New builds a ContentHandler over text. Line terminators are preserved as
// part of each line's content, as ReadLine requires.
func New(text string) *ContentHandler {
	h := &ContentHandler{}
	if text == "" {
		h.lines = []line{{text: "", runes: nil}}
		return h
	}
	start := 0
	for start < len(text) {
		idx := strings.IndexByte(text[start:], '\n')
		var raw string
		if idx < 0 {
			raw = text[start:]
			start = len(text)
		} else {
			raw = text[start : start+idx+1]
			start += idx + 1
		}
		h.lines = append(h.lines, line{text: raw, runes: []rune(raw)})
	}
	if len(h.lines) == 0 {
		h.lines = []line{{text: "", runes: nil}}
	}
	return h
}

// LineLengths returns the rune length of every line, including its
// terminating newline where present.
func (h *ContentHandler) LineLengths() []int {
	out := make([]int, len(h.lines))
	for i, l := range h.lines {
		out[i] = len(l.runes)
	}
	return out
}

// NumLines returns the number of lines in the buffer.
func (h *ContentHandler) NumLines() int {
	return len(h.lines)
}

// Boundary returns the position just behind the last character of the
// buffer, the default boundary for a top-level parse.
func (h *ContentHandler) Boundary() tmgrammar.POS {
	last := len(h.lines) - 1
	return tmgrammar.POS{last, len(h.lines[last].runes)}
}

func (h *ContentHandler) clamp(p tmgrammar.POS) tmgrammar.POS {
	if p[0] < 0 {
		return tmgrammar.POS{0, 0}
	}
	if p[0] >= len(h.lines) {
		return h.Boundary()
	}
	if p[1] < 0 {
		p[1] = 0
	}
	if p[1] > len(h.lines[p[0]].runes) {
		p[1] = len(h.lines[p[0]].runes)
	}
	return p
}

// Next returns the position one character after pos, crossing line
// boundaries. Next of the buffer's Boundary returns the boundary itself.
func (h *ContentHandler) Next(pos tmgrammar.POS) tmgrammar.POS {
	pos = h.clamp(pos)
	if pos[1] < len(h.lines[pos[0]].runes) {
		return tmgrammar.POS{pos[0], pos[1] + 1}
	}
	if pos[0] < len(h.lines)-1 {
		return tmgrammar.POS{pos[0] + 1, 0}
	}
	return pos
}

// Prev returns the position one character before pos, crossing line
// boundaries. Prev of (0,0) returns (0,0).
func (h *ContentHandler) Prev(pos tmgrammar.POS) tmgrammar.POS {
	pos = h.clamp(pos)
	if pos[1] > 0 {
		return tmgrammar.POS{pos[0], pos[1] - 1}
	}
	if pos[0] > 0 {
		prevLine := pos[0] - 1
		return tmgrammar.POS{prevLine, len(h.lines[prevLine].runes)}
	}
	return pos
}

// Range returns the ordered sequence of positions from start up to, but not
// including, end.
func (h *ContentHandler) Range(start, end tmgrammar.POS) []tmgrammar.POS {
	start, end = h.clamp(start), h.clamp(end)
	var out []tmgrammar.POS
	for p := start; p.Less(end); p = h.Next(p) {
		out = append(out, p)
	}
	return out
}

// ReadPos returns the verbatim substring of the buffer between start and
// end.
func (h *ContentHandler) ReadPos(start, end tmgrammar.POS) string {
	start, end = h.clamp(start), h.clamp(end)
	if !start.Less(end) {
		return ""
	}
	if start[0] == end[0] {
		return string(h.lines[start[0]].runes[start[1]:end[1]])
	}
	var b strings.Builder
	b.WriteString(string(h.lines[start[0]].runes[start[1]:]))
	for l := start[0] + 1; l < end[0]; l++ {
		b.WriteString(h.lines[l].text)
	}
	b.WriteString(string(h.lines[end[0]].runes[:end[1]]))
	return b.String()
}

// ReadLine returns the remainder of the line at pos, including its
// terminating newline if present.
func (h *ContentHandler) ReadLine(pos tmgrammar.POS) string {
	pos = h.clamp(pos)
	return string(h.lines[pos[0]].runes[pos[1]:])
}

// ReadLength returns the next n characters from pos. If skipNewline is true,
// reading stops at the first line terminator, which is not part of the
// result; the result may then be shorter than n.
func (h *ContentHandler) ReadLength(pos tmgrammar.POS, n int, skipNewline bool) string {
	pos = h.clamp(pos)
	var b strings.Builder
	count := 0
	cur := pos
	for count < n {
		if cur[0] >= len(h.lines) {
			break
		}
		l := h.lines[cur[0]]
		if cur[1] >= len(l.runes) {
			if cur[0] == len(h.lines)-1 {
				break
			}
			cur = tmgrammar.POS{cur[0] + 1, 0}
			continue
		}
		r := l.runes[cur[1]]
		if skipNewline && r == '\n' {
			break
		}
		b.WriteRune(r)
		count++
		cur = h.Next(cur)
	}
	return b.String()
}

// IsBlankLine reports whether the line at pos consists solely of whitespace.
func (h *ContentHandler) IsBlankLine(pos tmgrammar.POS) bool {
	l := strings.TrimSpace(h.ReadLine(tmgrammar.POS{pos.Line(), 0}))
	return l == ""
}

// segment is a contiguous slice of one source line contributing text to a
// search window; used to translate a byte offset found by the regex engine
// back into a POS.
type segment struct {
	lineIdx  int
	startCol int
	text     string // raw UTF-8 text of this piece of the line
}

// window builds the text to search from `from` up to, but not including,
// `to`, plus the per-line segments needed to translate byte
// offsets found within it back into POS values.
func (h *ContentHandler) window(from, to tmgrammar.POS) (string, []segment) {
	from, to = h.clamp(from), h.clamp(to)
	if !from.Less(to) {
		return "", nil
	}
	var b strings.Builder
	var segs []segment
	if from[0] == to[0] {
		text := string(h.lines[from[0]].runes[from[1]:to[1]])
		b.WriteString(text)
		segs = append(segs, segment{from[0], from[1], text})
		return b.String(), segs
	}
	first := string(h.lines[from[0]].runes[from[1]:])
	b.WriteString(first)
	segs = append(segs, segment{from[0], from[1], first})
	for l := from[0] + 1; l < to[0]; l++ {
		b.WriteString(h.lines[l].text)
		segs = append(segs, segment{l, 0, h.lines[l].text})
	}
	last := string(h.lines[to[0]].runes[:to[1]])
	b.WriteString(last)
	segs = append(segs, segment{to[0], 0, last})
	return b.String(), segs
}

// byteOffsetToPOS maps a byte offset within a window built by window() back
// to the POS it corresponds to.
func byteOffsetToPOS(segs []segment, byteOff int) tmgrammar.POS {
	cum := 0
	for _, s := range segs {
		if byteOff <= cum+len(s.text) {
			within := byteOff - cum
			if within < 0 {
				within = 0
			}
			runeCount := utf8.RuneCountInString(s.text[:within])
			return tmgrammar.POS{s.lineIdx, s.startCol + runeCount}
		}
		cum += len(s.text)
	}
	if len(segs) == 0 {
		return tmgrammar.POS{}
	}
	last := segs[len(segs)-1]
	return tmgrammar.POS{last.lineIdx, last.startCol + utf8.RuneCountInString(last.text)}
}

// backwardBy returns the position n runes before pos, clamped to the start
// of the buffer.
func (h *ContentHandler) backwardBy(pos tmgrammar.POS, n int) tmgrammar.POS {
	for i := 0; i < n; i++ {
		np := h.Prev(pos)
		if np == pos {
			break
		}
		pos = np
	}
	return pos
}

// leadingIsWhitespaceOnly reports whether every character on the same line
// between starting and candidate is whitespace, which is the condition
// under which a match starting at candidate is accepted when
// allowLeadingAll is false.
func (h *ContentHandler) leadingIsWhitespaceOnly(starting, candidate tmgrammar.POS) bool {
	if candidate == starting {
		return true
	}
	if candidate[0] != starting[0] {
		return false
	}
	between := h.ReadPos(starting, candidate)
	return strings.TrimSpace(between) == ""
}

// Search searches pattern from starting up to (and including) boundary,
// returning the match and its span, or a nil match and the zero span if
// none was found. See SPEC_FULL.md §4.1 for the full contract: look-behind
// retry, allow_leading_all gating, and \G anchoring.
func (h *ContentHandler) Search(pattern *Pattern, starting, boundary tmgrammar.POS, allowLeadingAll bool) (*Match, tmgrammar.Span) {
	if pattern == nil {
		return nil, tmgrammar.NullSpan
	}
	starting, boundary = h.clamp(starting), h.clamp(boundary)
	if !starting.LessEq(boundary) {
		return nil, tmgrammar.NullSpan
	}

	pads := []int{0}
	if pattern.Lookbehind() {
		pads = lookbehindPads
	}

	for _, pad := range pads {
		from := starting
		if pad > 0 {
			from = h.backwardBy(starting, pad)
		}
		text, segs := h.window(from, boundary)
		groups := pattern.re.FindStringSubmatchIndex(text)
		if groups == nil {
			continue
		}

		matchStart := byteOffsetToPOS(segs, groups[0])
		matchEnd := byteOffsetToPOS(segs, groups[1])

		if matchStart.Less(starting) {
			// The look-behind padding let the engine match before the
			// requested starting position; not a usable hit here.
			continue
		}
		if pattern.Anchored() && matchStart != h.Anchor {
			continue
		}
		if !allowLeadingAll && !h.leadingIsWhitespaceOnly(starting, matchStart) {
			continue
		}

		m := &Match{
			Span: tmgrammar.Span{matchStart, matchEnd},
			Text: h.ReadPos(matchStart, matchEnd),
		}
		m.Groups = make([]Group, len(groups)/2)
		for i := range m.Groups {
			gs, ge := groups[2*i], groups[2*i+1]
			if gs < 0 || ge < 0 {
				continue
			}
			gStart := byteOffsetToPOS(segs, gs)
			gEnd := byteOffsetToPOS(segs, ge)
			m.Groups[i] = Group{
				Matched: true,
				Span:    tmgrammar.Span{gStart, gEnd},
				Text:    h.ReadPos(gStart, gEnd),
			}
		}
		h.Anchor = matchEnd
		tracer().Debugf("search %s matched %s at %s", pattern, m.Text, matchStart)
		return m, m.Span
	}

	tracer().Debugf("search %s: no match from %s to %s", pattern, starting, boundary)
	return nil, tmgrammar.NullSpan
}
