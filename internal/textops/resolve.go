package textops

// Range is a span of character offsets [Start, End).
type Range struct {
	Start, End int
	// WholeDocument is set when the range stands in for an empty selection,
	// which switches line operations to in-place editing.
	WholeDocument bool
}

// Len returns the number of characters in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range covers nothing.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// LineFallback picks what a line operation covers when nothing is selected.
type LineFallback int

const (
	// FallbackWholeDocument covers every line.
	FallbackWholeDocument LineFallback = iota
	// FallbackCurrentLine covers the caret's line including its newline.
	FallbackCurrentLine
)

// ResolveSelection returns the selection bounds, or when nothing is
// selected either the whole document or the single character at the caret.
// wasEmpty reports that the fallback was used.
func ResolveSelection(doc Document, wholeDocIfEmpty bool) (r Range, wasEmpty bool) {
	if start, end, ok := doc.Selection(); ok {
		return Range{Start: start, End: end}, false
	}
	n := doc.Len()
	if wholeDocIfEmpty {
		return Range{Start: 0, End: n, WholeDocument: true}, true
	}
	c := clamp(doc.Cursor(), 0, n)
	return Range{Start: c, End: min(c+1, n)}, true
}

// ResolveSelectedLines widens the selection to whole lines. The start moves
// back to the start of its line. The end moves forward to the end of its
// line, except when it sits exactly at a line start: then it moves back one
// character so the following line is not pulled in.
func ResolveSelectedLines(doc Document, fallback LineFallback) (r Range, wasEmpty bool) {
	text := []rune(doc.Text(0, doc.Len()))
	n := len(text)

	start, end, ok := doc.Selection()
	if !ok {
		if fallback == FallbackWholeDocument {
			return Range{Start: 0, End: n, WholeDocument: true}, true
		}
		c := clamp(doc.Cursor(), 0, n)
		ls := lineStart(text, c)
		le := lineEnd(text, c)
		if le < n {
			le++
		}
		return Range{Start: ls, End: le}, true
	}

	start = lineStart(text, clamp(start, 0, n))
	end = clamp(end, 0, n)
	if end == 0 || text[end-1] == '\n' {
		end = max(end-1, start)
	} else {
		end = lineEnd(text, end)
	}
	return Range{Start: start, End: end}, false
}

func lineStart(text []rune, off int) int {
	for off > 0 && text[off-1] != '\n' {
		off--
	}
	return off
}

func lineEnd(text []rune, off int) int {
	for off < len(text) && text[off] != '\n' {
		off++
	}
	return off
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
