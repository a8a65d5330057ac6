// Package normalize provides field normalization helpers for quote export values.
package normalize

import (
	"strconv"
	"strings"
)

// ParseCurrency parses a currency amount from raw export text.
// It strips every character that is not a digit, decimal point, or minus sign
// and parses the remainder as a decimal number.
//
// The second return value is false ("no value") when the input is absent, the
// stripped remainder is empty or just a sign or a dot, or the remainder is not
// a valid number. Callers treat "no value" as "amount unknown", which is
// distinct from zero.
func ParseCurrency(raw string) (float64, bool) {
	var sb strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			sb.WriteRune(r)
		}
	}

	cleaned := sb.String()
	switch cleaned {
	case "", "-", ".":
		return 0, false
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
