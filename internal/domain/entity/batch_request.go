package entity

import "github.com/shopspring/decimal"

// TokenLookup is the outcome of one per-token balance query.
// Position is the token's index in the registry and decides report order.
type TokenLookup struct {
	Position int
	Token    TokenDescriptor
	Balance  decimal.Decimal
	Err      error
}

// OK reports whether the lookup succeeded.
func (l TokenLookup) OK() bool {
	return l.Err == nil
}
