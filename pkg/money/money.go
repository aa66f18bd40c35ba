// Package money holds the shared currency helpers. All equality checks on
// amounts go through integer cents; float comparison is never used directly.
package money

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned when a money string cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseBRL parses a Brazilian-locale money string ("1.234,56" -> 1234.56).
// Whitespace is stripped, '.' thousands separators are dropped and ',' is the
// decimal separator. Empty or non-numeric input returns ErrInvalidAmount.
func ParseBRL(s string) (float64, error) {
	norm := strings.TrimSpace(s)
	if norm == "" {
		return 0, ErrInvalidAmount
	}
	norm = strings.Join(strings.Fields(norm), "")
	norm = strings.ReplaceAll(norm, ".", "")
	norm = strings.ReplaceAll(norm, ",", ".")
	v, err := strconv.ParseFloat(norm, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatAmount renders v with exactly two decimal digits, '.' decimal point
// and no thousands separator ("70.01"). This is the BR Code tag 54 format.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Cents converts a currency value to integer cents, rounding half away from zero.
func Cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// EqualCents reports whether two amounts are the same when compared in cents.
func EqualCents(a, b float64) bool {
	return Cents(a) == Cents(b)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OrderTotal computes a campaign order total: quantity times the base unit
// price plus the campaign's identifier-in-cents offset, rounded last so the
// fractional signature survives intact.
func OrderTotal(quantity int, precoBase, identificadorCentavos float64) float64 {
	return Round2(float64(quantity)*precoBase + identificadorCentavos)
}
