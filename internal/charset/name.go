package charset

import (
	"regexp"
	"strings"
)

// Name is a canonical encoding identifier such as "utf_8" or "cp1252".
type Name string

// Autodetect is the declared name that asks Redecode to guess the encoding.
const Autodetect = "autodetect"

var (
	codePagePrefix = regexp.MustCompile(`^(code[-_]?page|windows)[-_]?`)
	macOSPrefix    = regexp.MustCompile(`^mac[-_]?os[-_]?`)
)

// Normalize cleans up a user supplied encoding label: it trims and
// lower-cases it, turns spaces into underscores and rewrites the
// "windows-"/"code page" and "macOS" prefixes to "cp" and "mac".
func Normalize(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.ReplaceAll(s, " ", "_")
	s = codePagePrefix.ReplaceAllString(s, "cp")
	s = macOSPrefix.ReplaceAllString(s, "mac")
	return s
}

// compact is the comparison form of a label: separators are dropped.
func compact(label string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ', '.', ':':
			return -1
		}
		return r
	}, Normalize(label))
}
