package charset

import (
	"slices"
	"strings"
)

// AllLanguages is the ISO 639-2 code for "multiple languages"; it selects
// every known encoding.
const AllLanguages = "mul"

// SupportedEncodings lists the encodings worth offering for text in the
// given language, an ISO 639-2/B code such as "rus" or "jpn". The Unicode
// encodings are always included. An empty code or "mul" lists everything.
func SupportedEncodings(language string) []Name {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" || language == AllLanguages {
		return Encodings()
	}
	var names []Name
	for _, e := range registry {
		if e.langs == nil || slices.Contains(e.langs, language) {
			names = append(names, e.name)
		}
	}
	return names
}

