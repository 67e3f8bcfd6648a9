package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// BRL builds a Money in Brazilian reais from a decimal literal such as "28.90".
// It panics on a malformed literal, so it is meant for catalog authoring only.
func BRL(amount string) Money {
	return Money{Amount: decimal.RequireFromString(amount), Currency: currency.BRL}
}

func Zero(cur currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: cur}
}

// Add panics when currencies differ: mixing them is a programming error.
func (m Money) Add(other Money) Money {
	if m.Currency != other.Currency {
		panic(fmt.Sprintf("domain: adding %s to %s", other.Currency, m.Currency))
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

func (m Money) Mul(n int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(n))), Currency: m.Currency}
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// Fixed renders the amount with exactly two decimal places.
func (m Money) Fixed() string {
	return m.Amount.StringFixed(2)
}

// String renders the amount for display, e.g. "R$ 67.80".
func (m Money) String() string {
	return symbol(m.Currency) + " " + m.Fixed()
}

func symbol(cur currency.Unit) string {
	switch cur {
	case currency.BRL:
		return "R$"
	case currency.USD:
		return "US$"
	case currency.EUR:
		return "€"
	default:
		return cur.String()
	}
}
