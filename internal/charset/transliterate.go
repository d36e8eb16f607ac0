package charset

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combining reports whether r has a non-zero canonical combining class.
func combining(r rune) bool {
	return norm.NFD.PropertiesString(string(r)).CCC() != 0
}

// Transliterate folds s towards ASCII: compatibility decomposition followed
// by removal of combining marks, so "Ｃａｆé" becomes "Cafe". Characters with
// no decomposition are kept.
func Transliterate(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(combining)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
