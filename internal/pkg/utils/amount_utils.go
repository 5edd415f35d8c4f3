package utils

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ToBaseUnits converts a display amount into integer base units using floor, never rounding up,
// so a request never exceeds what the user typed.
// Example: amount=1.999999995, decimals=9 => 1999999995
func ToBaseUnits(amount decimal.Decimal, decimals uint8) (uint64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("amount must not be negative: %s", amount.String())
	}
	base := amount.Shift(int32(decimals)).Floor()
	bi := base.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("amount %s overflows base units at %d decimals", amount.String(), decimals)
	}
	return bi.Uint64(), nil
}

// ToDisplayUnits divides base units by 10^decimals exactly.
func ToDisplayUnits(base uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(base), -int32(decimals))
}

// FormatAmount renders an amount with a fixed number of fractional digits, rounding half away from zero.
func FormatAmount(amount decimal.Decimal, digits int) string {
	return amount.StringFixed(int32(digits))
}

// ParseAmount parses a user-supplied display amount and rejects zero, negative or
// malformed input.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive, got %s", s)
	}
	return d, nil
}
