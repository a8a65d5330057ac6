package quote

import (
	"reflect"
	"testing"
)

func TestBuildRow(t *testing.T) {
	record := map[string]string{
		CustomerFirst:         " john ",
		TradeYear:             "2023",
		TradeEquity:           "-500",
		"CustomerMobilePhone": "(555) 123-4567",
		TradeModel:            " Sedan ",
		TradePurchaseDate:     "1/2/2023",
	}

	want := []string{"15551234567", "John", "", "1/2/23", "23", "Sedan", "", "", "", ""}
	got := BuildRow(record)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildRow = %v, want %v", got, want)
	}
	if len(got) != len(OutputHeaders) {
		t.Errorf("row has %d fields, header has %d", len(got), len(OutputHeaders))
	}
}

func TestBuildRowVerbatimFields(t *testing.T) {
	record := map[string]string{
		CustomerFirst:        "amy",
		"CustomerVoicePhone": "5551234567",
		TradeVIN:             " 1HGCM82633A004352 ",
		TradeMileage:         " 84,210 ",
		TradePayoff:          " $12,345.67 ",
		TradePayment:         " 399.00 ",
	}

	got := BuildRow(record)
	// Numeric-looking fields are trimmed only, never reformatted.
	if got[7] != "84,210" {
		t.Errorf("miles = %q, want %q", got[7], "84,210")
	}
	if got[8] != "$12,345.67" {
		t.Errorf("payoff = %q, want %q", got[8], "$12,345.67")
	}
	if got[9] != "399.00" {
		t.Errorf("payment = %q, want %q", got[9], "399.00")
	}
	if got[6] != "1HGCM82633A004352" {
		t.Errorf("vin = %q, want %q", got[6], "1HGCM82633A004352")
	}
}

func TestBuildRowDegradedFields(t *testing.T) {
	record := map[string]string{
		CustomerFirst:       "amy",
		"CustomerTextPhone": "555-000-1111",
		TradeYear:           "unknown",
		TradePurchaseDate:   "sometime in march",
	}

	got := BuildRow(record)
	if got[4] != "" {
		t.Errorf("year = %q, want empty for unparsable year", got[4])
	}
	if got[3] != "sometime in march" {
		t.Errorf("purchase date = %q, want raw text passthrough", got[3])
	}
}
