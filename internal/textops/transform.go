package textops

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// TrimOptions configures RemoveTrailingSpaces.
type TrimOptions struct {
	// OnSave ignores the selection and trims the whole document, the way a
	// save hook runs.
	OnSave bool
}

// DedupOptions configures DedupLines.
type DedupOptions struct {
	CaseSensitive bool
	Offset        int
	// Reverse reverses the surviving lines in the same atomic edit.
	Reverse bool
}

// ShuffleOptions configures ShuffleLines.
type ShuffleOptions struct {
	Dedup         bool
	CaseSensitive bool
	Offset        int
	// Rand is the source of randomness; nil uses the global source.
	Rand *rand.Rand
}

// SortOptions configures SortLines.
type SortOptions struct {
	Reverse       bool
	Dedup         bool
	CaseSensitive bool
	Offset        int
}

// lineBlock is the body of a span that a reordering operation rewrites.
// Trailing newlines of the span are excluded and left in place.
type lineBlock struct {
	start, end int
	body       string
	lines      []string
}

func readBlock(doc Document, r Range, keepSuffix bool) lineBlock {
	text := doc.Text(r.Start, r.End)
	if !keepSuffix {
		return lineBlock{start: r.Start, end: r.End, body: text, lines: strings.Split(text, "\n")}
	}
	lines, suffix := splitBody(text)
	return lineBlock{
		start: r.Start,
		end:   r.End - runeLen(suffix),
		body:  text[:len(text)-len(suffix)],
		lines: lines,
	}
}

// rewrite replaces the block with text. A non-negative caret is restored
// (clamped) afterwards; otherwise the caret stays after the new text.
func (s *editScope) rewrite(b lineBlock, text string, caret int) {
	if text == b.body {
		return
	}
	s.replace(b.start, b.end, text)
	if caret >= 0 && s.err == nil {
		s.doc.SetCursor(min(caret, s.doc.Len()))
	}
}

// removeTrailingNewlines deletes the run of LF at the end of the document.
func (s *editScope) removeTrailingNewlines() {
	text := s.doc.Text(0, s.doc.Len())
	body := strings.TrimRight(text, "\n")
	if len(body) != len(text) {
		s.delete(runeLen(body), runeLen(text))
	}
}

// RemoveTrailingSpaces strips trailing horizontal whitespace from every
// covered line. Covering the whole document also removes trailing newlines.
func RemoveTrailingSpaces(doc Document, opts TrimOptions) bool {
	var r Range
	if opts.OnSave {
		r = Range{Start: 0, End: doc.Len(), WholeDocument: true}
	} else {
		r, _ = ResolveSelectedLines(doc, FallbackWholeDocument)
	}

	return applyEdit(doc, "Remove Trailing Spaces", func(s *editScope) {
		if r.WholeDocument {
			spans := lineTable(doc.Text(0, doc.Len()))
			for i := len(spans) - 1; i >= 0; i-- {
				sp := spans[i]
				kept := strings.TrimRightFunc(sp.text, isTrailingSpace)
				s.delete(sp.start+runeLen(kept), sp.end)
			}
			s.removeTrailingNewlines()
			return
		}

		text := doc.Text(r.Start, r.End)
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimRightFunc(line, isTrailingSpace)
		}
		s.rewrite(lineBlock{start: r.Start, end: r.End, body: text}, strings.Join(lines, "\n"), -1)
	})
}

// RemoveTrailingNewlines deletes every newline at the end of the document.
func RemoveTrailingNewlines(doc Document) bool {
	return applyEdit(doc, "Remove Trailing Newlines", func(s *editScope) {
		s.removeTrailingNewlines()
	})
}

// RemoveEmptyLines deletes lines that are empty or only whitespace.
func RemoveEmptyLines(doc Document) bool {
	r, _ := ResolveSelectedLines(doc, FallbackWholeDocument)

	return applyEdit(doc, "Remove Empty Lines", func(s *editScope) {
		if r.WholeDocument {
			spans := lineTable(doc.Text(0, doc.Len()))
			for i := len(spans) - 1; i >= 0; i-- {
				sp := spans[i]
				if !isBlank(sp.text) {
					continue
				}
				end := sp.end
				if sp.terminated {
					end++
				}
				s.delete(sp.start, end)
			}
			s.removeTrailingNewlines()
			return
		}

		// The newline before the selection goes with it so that removing the
		// first selected line does not leave an empty line behind.
		start := r.Start
		prefix := ""
		if start > 0 {
			start--
			prefix = "\n"
		}
		var kept []string
		for _, line := range strings.Split(doc.Text(r.Start, r.End), "\n") {
			if !isBlank(line) {
				kept = append(kept, line)
			}
		}
		out := ""
		if len(kept) > 0 {
			out = prefix + strings.Join(kept, "\n")
		}
		s.rewrite(lineBlock{start: start, end: r.End, body: doc.Text(start, r.End)}, out, -1)
	})
}

// RemoveLines deletes the selected lines, or the caret's line when nothing
// is selected.
func RemoveLines(doc Document) bool {
	r, wasEmpty := ResolveSelectedLines(doc, FallbackCurrentLine)
	if !wasEmpty {
		n := doc.Len()
		switch {
		case r.End < n:
			r.End++
		case r.Start > 0:
			r.Start--
		}
	}

	return applyEdit(doc, "Remove Lines", func(s *editScope) {
		s.delete(r.Start, r.End)
	})
}

// JoinLines drops blank lines and joins the rest with a space, or with
// nothing when separatedWithSpaces is false.
func JoinLines(doc Document, separatedWithSpaces bool) bool {
	r, _ := ResolveSelectedLines(doc, FallbackWholeDocument)
	b := readBlock(doc, r, r.WholeDocument)

	kept := make([]string, 0, len(b.lines))
	for _, line := range b.lines {
		if !isBlank(line) {
			kept = append(kept, line)
		}
	}
	sep := ""
	if separatedWithSpaces {
		sep = " "
	}
	out := strings.TrimSpace(strings.Join(kept, sep))

	return applyEdit(doc, "Join Lines", func(s *editScope) {
		s.rewrite(b, out, caretFor(doc, r))
	})
}

// ReverseLines reverses the order of the covered lines. In whole-document
// mode the caret follows its line to the mirrored position.
func ReverseLines(doc Document) bool {
	r, _ := ResolveSelectedLines(doc, FallbackWholeDocument)

	return applyEdit(doc, "Reverse Lines", func(s *editScope) {
		s.reverse(r)
	})
}

func (s *editScope) reverse(r Range) {
	b := readBlock(s.doc, r, true)
	lines := slices.Clone(b.lines)
	slices.Reverse(lines)

	caret := -1
	if r.WholeDocument {
		caret = mirrorCaret(s.doc.Cursor(), b, lines)
	}
	s.rewrite(b, strings.Join(lines, "\n"), caret)
}

// mirrorCaret moves a caret on line i of n to line n-1-i, keeping its
// column where the new line is long enough.
func mirrorCaret(caret int, b lineBlock, reversed []string) int {
	if caret < b.start || caret > b.end || len(b.lines) == 0 {
		return caret
	}
	line, col := 0, caret-b.start
	for line < len(b.lines)-1 && col > runeLen(b.lines[line]) {
		col -= runeLen(b.lines[line]) + 1
		line++
	}

	target := len(reversed) - 1 - line
	off := b.start
	for _, l := range reversed[:target] {
		off += runeLen(l) + 1
	}
	return off + min(col, runeLen(reversed[target]))
}

// DedupLines removes lines whose key matches an earlier line's key. The
// first occurrence survives.
func DedupLines(doc Document, opts DedupOptions) bool {
	r, _ := ResolveSelectedLines(doc, FallbackWholeDocument)
	key := LineKey{Offset: opts.Offset, CaseSensitive: opts.CaseSensitive}

	return applyEdit(doc, "Remove Duplicate Lines", func(s *editScope) {
		if !r.WholeDocument {
			b := readBlock(doc, r, true)
			lines := dedupLines(b.lines, key)
			if opts.Reverse {
				slices.Reverse(lines)
			}
			s.rewrite(b, strings.Join(lines, "\n"), -1)
			return
		}

		text := doc.Text(0, doc.Len())
		spans := lineTable(text)
		keyOf := key.Func()
		seen := make(map[string]struct{}, len(spans))
		dup := make([]bool, len(spans))
		for i, sp := range spans {
			k := keyOf(sp.text)
			if _, ok := seen[k]; ok {
				dup[i] = true
				continue
			}
			seen[k] = struct{}{}
		}
		for i := len(spans) - 1; i >= 0; i-- {
			if !dup[i] {
				continue
			}
			end := spans[i].end
			if spans[i].terminated {
				end++
			}
			s.delete(spans[i].start, end)
		}
		// Dropping an unterminated last line leaves the previous line's
		// newline dangling at the end.
		if len(spans) > 0 && dup[len(spans)-1] && !spans[len(spans)-1].terminated {
			if n := doc.Len(); n > 0 && doc.Text(n-1, n) == "\n" {
				s.delete(n-1, n)
			}
		}

		if opts.Reverse {
			s.reverse(Range{Start: 0, End: doc.Len(), WholeDocument: true})
		}
	})
}

// ShuffleLines puts the covered lines in random order, optionally removing
// duplicates first.
func ShuffleLines(doc Document, opts ShuffleOptions) bool {
	r, _ := ResolveSelectedLines(doc, FallbackWholeDocument)
	b := readBlock(doc, r, true)

	lines := slices.Clone(b.lines)
	if opts.Dedup {
		lines = dedupLines(lines, LineKey{Offset: opts.Offset, CaseSensitive: opts.CaseSensitive})
	}
	swap := func(i, j int) { lines[i], lines[j] = lines[j], lines[i] }
	if opts.Rand != nil {
		opts.Rand.Shuffle(len(lines), swap)
	} else {
		rand.Shuffle(len(lines), swap)
	}

	return applyEdit(doc, "Shuffle Lines", func(s *editScope) {
		s.rewrite(b, strings.Join(lines, "\n"), caretFor(doc, r))
	})
}

// SortLines sorts the covered lines by their key with whitespace removed.
// Equal keys keep their input order.
func SortLines(doc Document, opts SortOptions) bool {
	r, _ := ResolveSelectedLines(doc, FallbackWholeDocument)
	b := readBlock(doc, r, true)

	lines := slices.Clone(b.lines)
	if opts.Dedup {
		lines = dedupLines(lines, LineKey{Offset: opts.Offset, CaseSensitive: opts.CaseSensitive})
	}

	keyOf := LineKey{Offset: opts.Offset, CaseSensitive: opts.CaseSensitive, StripSpace: true}.Func()
	type keyed struct{ line, key string }
	items := make([]keyed, len(lines))
	for i, line := range lines {
		items[i] = keyed{line: line, key: keyOf(line)}
	}
	slices.SortStableFunc(items, func(a, b keyed) int {
		return strings.Compare(a.key, b.key)
	})
	for i := range items {
		lines[i] = items[i].line
	}
	if opts.Reverse {
		slices.Reverse(lines)
	}

	return applyEdit(doc, "Sort Lines", func(s *editScope) {
		s.rewrite(b, strings.Join(lines, "\n"), caretFor(doc, r))
	})
}

// caretFor returns the caret to restore after rewriting r, or -1 when the
// caret should stay after the new text.
func caretFor(doc Document, r Range) int {
	if r.WholeDocument {
		return doc.Cursor()
	}
	return -1
}
