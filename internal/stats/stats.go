package stats

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Document is the read access statistics need.
type Document interface {
	Len() int
	Text(start, end int) string
	Selection() (start, end int, ok bool)
}

// Metrics are the counts for one span of text.
type Metrics struct {
	Lines              int
	Words              int
	Characters         int
	CharactersNoSpaces int
	Bytes              int
}

// Report holds document metrics and selection metrics. Selection is nil
// when nothing is selected, which is different from an empty count.
type Report struct {
	Document  Metrics
	Selection *Metrics
}

// Compute measures the whole document and the selection, if any.
func Compute(doc Document) Report {
	return Report{
		Document:  Measure(doc.Text(0, doc.Len())),
		Selection: selection(doc),
	}
}

func selection(doc Document) *Metrics {
	start, end, ok := doc.Selection()
	if !ok {
		return nil
	}
	m := Measure(doc.Text(start, end))
	return &m
}

// Measure counts text. Lines are LF-delimited and a final line without a
// terminator counts, so "" has no lines and "a\n" has one. A word cut off
// by the end of text still counts.
func Measure(text string) Metrics {
	m := Metrics{
		Lines: countLines(text),
		Words: countWords(text),
		Bytes: len(text),
	}
	for _, r := range text {
		m.Characters++
		if !unicode.IsSpace(r) {
			m.CharactersNoSpaces++
		}
	}
	return m
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

// countWords counts Unicode word segments that hold something visible
// other than punctuation.
func countWords(text string) int {
	n := 0
	state := -1
	var word string
	for len(text) > 0 {
		word, text, state = uniseg.FirstWordInString(text, state)
		if isWord(word) {
			n++
		}
	}
	return n
}

func isWord(seg string) bool {
	for len(seg) > 0 {
		r, size := utf8.DecodeRuneInString(seg)
		seg = seg[size:]
		if !unicode.IsGraphic(r) {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSymbol(r) {
			return true
		}
	}
	return false
}
