package stats

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/tidwall/sjson"
)

var metricFields = []struct {
	key   string
	label string
	get   func(Metrics) int
}{
	{"lines", "Lines", func(m Metrics) int { return m.Lines }},
	{"words", "Words", func(m Metrics) int { return m.Words }},
	{"characters", "Characters (incl. spaces)", func(m Metrics) int { return m.Characters }},
	{"charactersNoSpaces", "Characters (no spaces)", func(m Metrics) int { return m.CharactersNoSpaces }},
	{"bytes", "UTF-8 Code Units (bytes)", func(m Metrics) int { return m.Bytes }},
}

// FormatJSON renders a report as a JSON object with "document" and
// "selection" members. selection is null when nothing was selected.
func FormatJSON(r Report) (string, error) {
	js := "{}"
	var err error
	for _, p := range metricFields {
		if js, err = sjson.Set(js, "document."+p.key, p.get(r.Document)); err != nil {
			return "", fmt.Errorf("format %s: %w", p.key, err)
		}
	}

	if r.Selection == nil {
		return sjson.SetRaw(js, "selection", "null")
	}
	for _, p := range metricFields {
		if js, err = sjson.Set(js, "selection."+p.key, p.get(*r.Selection)); err != nil {
			return "", fmt.Errorf("format selection %s: %w", p.key, err)
		}
	}
	return js, nil
}

// FormatTable renders a report as an aligned two-column table; unavailable
// selection counts print as "-".
func FormatTable(r Report) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "\tDocument\tSelection\t\n")
	for _, p := range metricFields {
		sel := "-"
		if r.Selection != nil {
			sel = fmt.Sprint(p.get(*r.Selection))
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t\n", p.label, p.get(r.Document), sel)
	}
	_ = w.Flush()
	return sb.String()
}
