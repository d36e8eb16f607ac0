package textops

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// LineKey describes how a line is reduced to the string it is compared by.
type LineKey struct {
	// Offset skips that many leading characters; a shorter line keys to "".
	Offset int
	// CaseSensitive disables case folding.
	CaseSensitive bool
	// StripSpace removes every whitespace character.
	StripSpace bool
}

// Of returns the key of a single line.
func (k LineKey) Of(line string) string {
	return k.Func()(line)
}

// Func returns a key function that reuses one case folder across calls.
// The function is not safe for concurrent use.
func (k LineKey) Func() func(string) string {
	var fold cases.Caser
	if !k.CaseSensitive {
		fold = cases.Fold()
	}
	return func(line string) string {
		s := skipRunes(line, k.Offset)
		if k.StripSpace {
			s = strings.Map(func(r rune) rune {
				if unicode.IsSpace(r) {
					return -1
				}
				return r
			}, s)
		}
		if !k.CaseSensitive {
			s = fold.String(s)
		}
		return s
	}
}

func skipRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[pos:]
		}
		i++
	}
	return ""
}
