// Package quote defines the dealer quote export vocabulary: the column names
// the export is expected to carry, the ordered phone-field preference list,
// and the fixed Previous Service output layout.
//
// Records are flat maps from column name to raw text, keyed by the export's
// header row. Adjust the constants here if the export layout changes.
package quote

// Column names expected from the quote export.
const (
	TradeYear         = "TradeYear"
	TradeModel        = "TradeModel"
	TradeVIN          = "TradeVIN"
	TradeMileage      = "TradeMileage"
	TradePayoff       = "TradePayoff"
	TradeEquity       = "TradeEquity"
	TradePayment      = "TradeMonthlyPayment"
	TradePurchaseDate = "TradePurchaseDate"
	CustomerFirst     = "CustomerFirstName"
	CustomerLast      = "CustomerLastName"
	CustomerName      = "CustomerName"
)

// PhoneFields is the priority-ordered list of phone-bearing columns. The
// first column that normalizes to a usable number wins; the order is a
// designed preference, not incidental.
var PhoneFields = []string{
	"CustomerVoicePhone",
	"CustomerTextPhone",
	"CustomerMobilePhone",
	"CustomerHomePhone",
	"CustomerWorkPhone",
}

// OutputHeaders is the fixed Previous Service column set, in output order.
var OutputHeaders = []string{
	"phone_number",
	"Customer",
	"Last Name",
	"Purchase Date",
	"Year",
	"Model",
	"VIN",
	"Miles",
	"Payoff",
	"Payment",
}
