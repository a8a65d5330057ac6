// Package normalize provides field normalization helpers for quote export values.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// purchaseDateLayouts are the accepted input date formats, tried in order.
// The order is part of the contract: the first layout that parses wins.
var purchaseDateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"2006-1-2",
	"2006/1/2",
}

// FormatPurchaseDate reformats a raw purchase date as "M/D/YY" with no zero
// padding on month or day (e.g. "03/07/2024" becomes "3/7/24").
//
// The raw value is trimmed first; blank input yields the empty string. If no
// layout matches, the trimmed raw text is returned unchanged so the row still
// carries whatever the export had.
func FormatPurchaseDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	for _, layout := range purchaseDateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return fmt.Sprintf("%d/%d/%02d", t.Month(), t.Day(), t.Year()%100)
	}
	return raw
}

// FormatYear formats a raw model year as its value modulo 100 with no zero
// padding ("2024" becomes "24", "2005" becomes "5"). This mirrors the display
// convention of the target list, not a general calendar rule.
//
// The second return value is false when the raw text does not parse as an
// integer.
func FormatYear(raw string) (string, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return strconv.Itoa(year % 100), true
}
