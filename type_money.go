package holdings

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a USD monetary value. Valuations are always quoted in
// USD, so the currency is not carried per value.
type Money struct {
	value decimal.Decimal // as major unit value
}

func USD[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// usd returns the full USD currency definition, never nil.
func usd() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, money.USD).Currency()
}

// String returns the value formatted as a currency amount, rounded to
// cents, e.g. "$1,234.57".
func (m Money) String() string {
	cur := usd()
	cents := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(cents.IntPart())
}

func (m Money) Equal(n Money) bool   { return m.value.Equal(n.value) }
func (m Money) IsZero() bool         { return m.value.IsZero() }
func (m Money) IsNegative() bool     { return m.value.IsNegative() }
func (m Money) Add(n Money) Money    { return Money{value: m.value.Add(n.value)} }
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.value)} }
