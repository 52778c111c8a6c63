// Package core provides money parsing and handling utilities.
//
// This file contains the conversions between decimal amounts and the integer
// cents the stores persist, plus the display formatting used by clients.
package core

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// MaxAmount is the largest amount whose cents fit in an int64.
var MaxAmount = FromCents(math.MaxInt64)

// AmountInRange reports whether d, rounded to cents, is positive and
// storable as int64 cents.
func AmountInRange(d decimal.Decimal) bool {
	d = RoundCents(d)
	return d.IsPositive() && !d.GreaterThan(MaxAmount)
}

// RoundCents rounds to two decimal places, half away from zero.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ToCents converts an amount to integer cents with half-up rounding.
//
// Examples:
//
//	ToCents(decimal.RequireFromString("12.34"))  -> 1234
//	ToCents(decimal.RequireFromString("12.345")) -> 1235
func ToCents(d decimal.Decimal) int64 {
	return RoundCents(d).Shift(2).IntPart()
}

// FromCents is the inverse of ToCents.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ParseAmount parses a decimal string. It accepts both dot (12.34) and comma
// (12,34) decimal separators and rounds to cents.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return RoundCents(d), nil
}

// FormatMoney renders an amount with thousands separators and exactly two
// decimals, e.g. 1234.5 -> "1,234.50". NaN and infinities are returned as
// strconv renders them.
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return FormatDecimal(decimal.NewFromFloat(v))
}

// FormatDecimal is FormatMoney for decimal amounts.
func FormatDecimal(d decimal.Decimal) string {
	s := RoundCents(d).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
