package payment

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
)

// Money is an amount in the minor units of an ISO 4217 currency.
type Money struct {
	Amount   int64
	Currency string
}

// NewMoney builds a Money from a whole number of major units, e.g. 1 MXN.
func NewMoney(major int64, code string) (Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Money{}, fmt.Errorf("parse currency %q: %w", code, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return Money{
		Amount:   major * int64(math.Pow10(scale)),
		Currency: unit.String(),
	}, nil
}

func (m Money) Unit() currency.Unit {
	unit, err := currency.ParseISO(m.Currency)
	if err != nil {
		return currency.XXX
	}
	return unit
}

// Scale is the number of minor-unit digits of the currency.
func (m Money) Scale() int {
	scale, _ := currency.Standard.Rounding(m.Unit())
	return scale
}

// Whole reports whether the amount has no fractional part.
func (m Money) Whole() bool {
	return m.Amount%int64(math.Pow10(m.Scale())) == 0
}

func (m Money) Major() float64 {
	return float64(m.Amount) / math.Pow10(m.Scale())
}

func (m Money) String() string {
	return fmt.Sprintf("%.*f %s", m.Scale(), m.Major(), m.Currency)
}
