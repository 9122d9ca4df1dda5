package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal accepts user formatted cell text like "1,200" or " 35 ".
// A blank string is reported through ok=false rather than as an error.
func ParseDecimal(raw string) (d decimal.Decimal, ok bool, err error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	val, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("%w: %q is not a number", ErrInvalidCell, raw)
	}
	return val, true, nil
}

// ParseQuantity parses a required non-negative whole number.
func ParseQuantity(raw string) (int64, error) {
	d, ok, err := ParseDecimal(raw)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: quantity is blank", ErrInvalidCell)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: quantity %s is negative", ErrInvalidCell, d.String())
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("%w: quantity %s is not a whole number", ErrInvalidCell, d.String())
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, fmt.Errorf("%w: quantity %s is too large", ErrInvalidCell, d.String())
	}
	return d.IntPart(), nil
}

// ParseCount parses an optional non-negative count; blank yields ok=false.
func ParseCount(raw string) (decimal.Decimal, bool, error) {
	d, ok, err := ParseDecimal(raw)
	if err != nil || !ok {
		return decimal.Zero, ok, err
	}
	if d.IsNegative() {
		return decimal.Zero, false, fmt.Errorf("%w: count %s is negative", ErrInvalidCell, d.String())
	}
	return d, true, nil
}
