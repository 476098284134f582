package importer

import (
	"fmt"
	"strings"
)

type replacement struct {
	from string
	to   string
}

// mojibakeTable repairs UTF-8 text that was decoded as Windows-1252 once or
// twice. Double-decoded forms must come first: each contains its
// single-decoded counterpart as a substring.
var mojibakeTable = []replacement{
	// decoded twice
	{"Ã¢â‚¬Å“", `"`},             // left double quote
	{"Ã¢â‚¬Â", `"`},             // right double quote
	{"Ã¢â‚¬â„¢", "'"},       // right single quote
	{"Ã¢â‚¬Ëœ", "'"},             // left single quote
	{"Ã¢â‚¬â€", "-"},       // em dash
	{"Ã¢â‚¬â€œ", "-"},       // en dash
	{"Ã¢â‚¬Â¦", "..."},           // ellipsis
	{"ÃÂ ", " "},                               // non-breaking space
	// decoded once
	{"â€œ", `"`},       // left double quote
	{"â€", `"`},       // right double quote
	{"â€™", "'"},       // right single quote
	{"â€˜", "'"},       // left single quote
	{"â€”", "-"},       // em dash
	{"â€“", "-"},       // en dash
	{"â€¦", "..."},     // ellipsis
	{"Â ", " "},             // non-breaking space
}

// punctuationTable normalizes Unicode punctuation to its ASCII equivalent.
var punctuationTable = []replacement{
	{"‘", "'"}, {"’", "'"}, {"‚", "'"}, {"‛", "'"},
	{"“", `"`}, {"”", `"`}, {"„", `"`}, {"‟", `"`},
	{"‐", "-"}, {"‑", "-"}, {"‒", "-"}, {"–", "-"},
	{"—", "-"}, {"―", "-"}, {"−", "-"},
	{"…", "..."},
	{" ", " "},
}

func applyTable(s string, table []replacement) string {
	for _, r := range table {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}

// SanitizeText repairs known double-encoding artifacts, normalizes Unicode
// punctuation to ASCII and trims surrounding whitespace. Idempotent: running
// it over already-clean text is a no-op.
func SanitizeText(text string) string {
	text = applyTable(text, mojibakeTable)
	text = applyTable(text, punctuationTable)
	return strings.TrimSpace(text)
}

// SanitizeURL normalizes Unicode punctuation in a URL and percent-encodes any
// remaining non-ASCII bytes. Idempotent for the same reason as SanitizeText.
func SanitizeURL(url string) string {
	url = applyTable(url, punctuationTable)

	var b strings.Builder
	b.Grow(len(url))
	for i := 0; i < len(url); i++ {
		c := url[i]
		if c < 0x80 {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}
