// Package quote defines the dealer quote export vocabulary.
package quote

import (
	"strings"

	"github.com/jbec2912-cell/pervious-service-filter/internal/normalize"
)

// ChoosePhone returns the first usable normalized phone number found across
// the PhoneFields columns, in priority order. The second return value is
// false when no column yields a usable number.
func ChoosePhone(record map[string]string) (string, bool) {
	for _, field := range PhoneFields {
		if phone, ok := normalize.NormalizePhone(record[field]); ok {
			return phone, true
		}
	}
	return "", false
}

// FirstName resolves the cleaned display first name for a record. It uses the
// dedicated first-name column, falling back to the first whitespace-delimited
// token of the combined name column when the dedicated column is empty.
// Returns the empty string when neither yields a name.
func FirstName(record map[string]string) string {
	raw := record[CustomerFirst]
	if raw == "" {
		if fields := strings.Fields(record[CustomerName]); len(fields) > 0 {
			raw = fields[0]
		}
	}
	return normalize.CleanName(raw)
}

// LastName resolves the cleaned display last name for a record. Only the
// dedicated last-name column is consulted; there is no combined-name fallback.
func LastName(record map[string]string) string {
	return normalize.CleanName(record[CustomerLast])
}
