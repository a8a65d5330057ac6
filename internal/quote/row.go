// Package quote defines the dealer quote export vocabulary.
package quote

import (
	"strings"

	"github.com/jbec2912-cell/pervious-service-filter/internal/normalize"
)

// BuildRow transforms an admitted record into the fixed Previous Service
// output row, in OutputHeaders order. It never fails: fields that do not
// normalize degrade to the empty string, and Model, VIN, Miles, Payoff, and
// Payment are carried over verbatim apart from trimming.
func BuildRow(record map[string]string) []string {
	phone, _ := ChoosePhone(record)
	year, _ := normalize.FormatYear(record[TradeYear])

	return []string{
		phone,
		FirstName(record),
		LastName(record),
		normalize.FormatPurchaseDate(record[TradePurchaseDate]),
		year,
		strings.TrimSpace(record[TradeModel]),
		strings.TrimSpace(record[TradeVIN]),
		strings.TrimSpace(record[TradeMileage]),
		strings.TrimSpace(record[TradePayoff]),
		strings.TrimSpace(record[TradePayment]),
	}
}
