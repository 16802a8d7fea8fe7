package money

import (
	"github.com/shopspring/decimal"
)

// Money represents custom type for processing money.
type Money struct {
	decimal decimal.Decimal
}

// Zero represents zero (0) amount.
// Zero always equals to 0 and to 0.0...N.
var Zero = NewFromInt(0)

// NewFromString parses string and returns decimal amount.
// If s is empty, will be returned Zero decimal without throwing an error.
func NewFromString(s string) (Money, error) {
	if len(s) == 0 {
		return Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, err
	}
	return Money{d}, nil
}

// NewFromInt returns decimal from integer number.
func NewFromInt(i int64) Money {
	return Money{decimal.NewFromInt(i)}
}

// NewFromFloat returns decimal from float number.
func NewFromFloat(f float64) Money {
	return Money{decimal.NewFromFloat(f)}
}

// Inc increments left amount by right.
// Same as left = left + right; left+=right
func (m *Money) Inc(right Money) {
	m.decimal = m.decimal.Add(right.decimal)
}

// Sub decrements left amount by right.
func (m *Money) Sub(right Money) {
	m.decimal = m.decimal.Sub(right.decimal)
}

// Mul multiplies left amount by right.
func (m *Money) Mul(right Money) {
	m.decimal = m.decimal.Mul(right.decimal)
}

// Div divides left amount by right. Division by zero leaves amount unchanged.
func (m *Money) Div(right Money) {
	if right.decimal.IsZero() {
		return
	}
	m.decimal = m.decimal.Div(right.decimal)
}

// Set replaces amount with the given one.
func (m *Money) Set(amount Money) {
	m.decimal = amount.decimal
}

// Equal reports whether both amounts are equal.
func (m Money) Equal(right Money) bool {
	return m.decimal.Equal(right.decimal)
}

// GreaterThan reports whether left amount is greater than right.
func (m Money) GreaterThan(right Money) bool {
	return m.decimal.GreaterThan(right.decimal)
}

// IsPositive reports whether amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.decimal.IsPositive()
}

// StringFixed returns string representation of amount with 2 places after digit.
// Resulting string will be rounded to nearest.
func (m Money) StringFixed() string {
	return m.decimal.StringFixed(2)
}

// String returns string representation of amount without any rounding.
func (m Money) String() string {
	return m.decimal.String()
}

// MarshalJSON returns amount as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.decimal.String()), nil
}
