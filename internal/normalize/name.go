// Package normalize provides field normalization helpers for quote export values.
// Every helper degrades gracefully: malformed input yields a "no value" result
// (comma-ok false or empty string) instead of an error, so a bad field never
// fails the row it belongs to.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser title-cases words for display names. cases.Caser is not safe for
// concurrent use, but the record path is single-threaded by design.
var titleCaser = cases.Title(language.English)

// CleanName returns a cleaned display name: surrounding whitespace trimmed and
// each word title-cased. A word is a run of letters, so any punctuation starts
// a new word (o'brien becomes O'Brien, mary-jane becomes Mary-Jane). Absent or
// blank input yields the empty string, which callers treat as "no value".
func CleanName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	// titleCaser alone treats apostrophes as word-internal, which would
	// leave O'Brien as O'brien. Case each run of letters separately so
	// every non-letter rune is a word boundary.
	var b strings.Builder
	b.Grow(len(trimmed))
	start := -1
	for i, r := range trimmed {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(titleCaser.String(trimmed[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(titleCaser.String(trimmed[start:]))
	}
	return b.String()
}
