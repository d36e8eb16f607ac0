package textops

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// lineSpan locates one line of a snapshot. end excludes the newline.
type lineSpan struct {
	start, end int
	text       string
	terminated bool
}

// lineTable splits a snapshot on LF. A trailing LF does not start another
// line, and an empty snapshot has no lines.
func lineTable(text string) []lineSpan {
	var spans []lineSpan
	off := 0
	for text != "" {
		i := strings.IndexByte(text, '\n')
		line := text
		if i >= 0 {
			line = text[:i]
		}
		n := utf8.RuneCountInString(line)
		spans = append(spans, lineSpan{start: off, end: off + n, text: line, terminated: i >= 0})
		if i < 0 {
			break
		}
		off += n + 1
		text = text[i+1:]
	}
	return spans
}

// splitBody separates the trailing run of newlines from a span's text.
// Line operations reorder the body and keep the suffix where it is.
func splitBody(text string) (lines []string, suffix string) {
	body := strings.TrimRight(text, "\n")
	suffix = text[len(body):]
	if body == "" {
		return nil, suffix
	}
	return strings.Split(body, "\n"), suffix
}

func isBlank(line string) bool {
	return strings.TrimFunc(line, unicode.IsSpace) == ""
}

// isTrailingSpace matches the horizontal whitespace trimmed from line ends.
func isTrailingSpace(r rune) bool {
	switch {
	case r == ' ', r == '\t', r == '\f':
		return true
	case r >= '\u2000' && r <= '\u200a':
		return true
	case r == '\u205f', r == '\u3000':
		return true
	}
	return false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// dedupLines keeps the first line of each key, in order.
func dedupLines(lines []string, key LineKey) []string {
	keyOf := key.Func()
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		k := keyOf(line)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, line)
	}
	return out
}

// ParseOffset reads a line offset typed by a user. Anything but a plain
// decimal number is 0.
func ParseOffset(s string) int {
	if s == "" {
		return 0
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
