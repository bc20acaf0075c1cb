package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ToDecimal converts an integer amount in minimal units into a decimal value.
// Example: amount=1234500000000000000, decimals=18 => 1.2345
func ToDecimal(amount *big.Int, decimals int32) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -decimals)
}

// ParseBaseUnits parses a base-10 integer string in minimal units (wei, nanoton).
func ParseBaseUnits(raw string) (*big.Int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer amount %q", raw)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %q", raw)
	}
	return v, nil
}

// FormatFixed renders d with exactly places fractional digits.
func FormatFixed(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}
