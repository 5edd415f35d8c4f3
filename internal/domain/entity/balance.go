package entity

import "github.com/shopspring/decimal"

// Price is a best-effort unit price in USD. Available is false when no price could be obtained.
type Price struct {
	Value     decimal.Decimal
	Available bool
}

// Unavailable is the zero Price.
var Unavailable = Price{}

// PriceOf wraps a known value.
func PriceOf(v decimal.Decimal) Price {
	return Price{Value: v, Available: true}
}

// BalanceEntry is one line of a balance report.
type BalanceEntry struct {
	Token    TokenDescriptor
	Quantity decimal.Decimal
	Price    Price
	Value    Price // Quantity * Price, unavailable when Price is
}

// BalanceReport is the ordered result of a balance query: native asset first, then
// registry order.
type BalanceReport struct {
	Address    string
	Entries    []BalanceEntry
	Skipped    []TokenLookupError
	TotalValue decimal.Decimal
}
