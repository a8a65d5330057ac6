package normalize

import "testing"

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   float64
		wantOK bool
	}{
		{name: "plain number", raw: "1234", want: 1234, wantOK: true},
		{name: "decimal", raw: "1234.56", want: 1234.56, wantOK: true},
		{name: "negative", raw: "-500", want: -500, wantOK: true},
		{name: "dollar sign and commas", raw: "$1,234.56", want: 1234.56, wantOK: true},
		{name: "negative with symbol", raw: "-$6,000.00", want: -6000, wantOK: true},
		{name: "surrounding text", raw: "USD 42.50", want: 42.5, wantOK: true},
		{name: "leading dot", raw: "-.5", want: -0.5, wantOK: true},
		{name: "empty", raw: "", wantOK: false},
		{name: "no digits", raw: "n/a", wantOK: false},
		{name: "sign only", raw: "-", wantOK: false},
		{name: "dot only", raw: ".", wantOK: false},
		{name: "double sign", raw: "--5--5", wantOK: false},
		{name: "two dots", raw: "1.2.3", wantOK: false},
		{name: "zero is a value", raw: "0", want: 0, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCurrency(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ParseCurrency(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseCurrency(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
