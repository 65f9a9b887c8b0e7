package stockchart

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a price quoted in a currency.
//
// The currency is optional, indices are quoted in points.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money of that value in that currency.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// Value returns the amount in major unit.
func (m Money) Value() decimal.Decimal { return m.value }

// Currency returns the currency code, possibly empty.
func (m Money) Currency() string { return m.cur }

// String returns the string representation of the money value, using the
// currency's own formatting when the currency is known.
func (m Money) String() string {
	cur := money.GetCurrency(m.cur)
	if cur == nil {
		return m.value.StringFixed(2)
	}
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}
