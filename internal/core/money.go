// Package core provides the banking domain model shared by every component.
//
// This file contains money parsing and formatting helpers. Amounts are stored
// as int64 paise (INR minor units); decimal arithmetic at the string boundary
// goes through shopspring/decimal so spreadsheet values like "45000.00" never
// touch floating point.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in INR minor units (paise).
type Money struct {
	Paise int64
}

var hundred = decimal.NewFromInt(100)

// ParseMoney converts a decimal string to Money with half-up rounding on the
// third decimal place. It accepts both dot and comma separators. Empty or
// unparseable input returns ErrInvalidAmount; negative values are rejected.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	return Money{Paise: d.Mul(hundred).Round(0).IntPart()}, nil
}

// ParseMoneyOrZero applies the spreadsheet defaulting rule: missing or
// unparseable numeric fields parse to zero instead of failing.
func ParseMoneyOrZero(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		return Money{}
	}
	return m
}

// Decimal returns the amount as a rupee-denominated decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.Paise).Div(hundred)
}

// String formats the amount with two fractional digits, e.g. "1250.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Rupees returns the rupee value as a float64 for display only.
// Use paise for calculations.
func (m Money) Rupees() float64 {
	return float64(m.Paise) / 100.0
}

func (m Money) Add(o Money) Money { return Money{Paise: m.Paise + o.Paise} }
func (m Money) Sub(o Money) Money { return Money{Paise: m.Paise - o.Paise} }
func (m Money) Less(o Money) bool { return m.Paise < o.Paise }
func (m Money) IsZero() bool      { return m.Paise == 0 }
func (m Money) IsNegative() bool  { return m.Paise < 0 }

func (m Money) Validate() error {
	if m.Paise < 0 {
		return ErrInvalidAmount
	}
	return nil
}
