package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money is the uniform currency amount type (2 decimal places).
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a Money from a decimal.
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// MarshalJSON renders a 2-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.Round(2).StringFixed(2))
}

// UnmarshalJSON accepts either a string or a number.
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.Decimal = d.Round(2)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	m.Decimal = decimal.NewFromFloat(f).Round(2)
	return nil
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan implements sql.Scanner.
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// String returns the 2-decimal representation.
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}

// Grams is the jewellery weight type (3 decimal places).
type Grams struct {
	decimal.Decimal
}

// NewGramsFromDecimal creates a Grams from a decimal.
func NewGramsFromDecimal(weight decimal.Decimal) Grams {
	return Grams{Decimal: weight.Round(3)}
}

// MarshalJSON renders a 3-decimal string.
func (g Grams) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Decimal.Round(3).StringFixed(3))
}

// UnmarshalJSON accepts either a string or a number.
func (g *Grams) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		g.Decimal = d.Round(3)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	g.Decimal = decimal.NewFromFloat(f).Round(3)
	return nil
}

// Value implements driver.Valuer.
func (g Grams) Value() (driver.Value, error) {
	return g.Decimal.Round(3).Value()
}

// Scan implements sql.Scanner.
func (g *Grams) Scan(value interface{}) error {
	if err := g.Decimal.Scan(value); err != nil {
		return err
	}
	g.Decimal = g.Decimal.Round(3)
	return nil
}

// String returns the 3-decimal representation.
func (g Grams) String() string {
	return g.Decimal.Round(3).StringFixed(3)
}
