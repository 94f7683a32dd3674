package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RateTable holds exchange rates against a single base currency. A rate of
// 1.08 for EUR with base CHF means 1 EUR buys 1.08 CHF.
type RateTable struct {
	Base  string                     `yaml:"base"`
	Rates map[string]decimal.Decimal `yaml:"rates"`
}

// NewRateTable creates an empty rate table for the given base currency.
func NewRateTable(base string) *RateTable {
	return &RateTable{
		Base:  strings.ToUpper(base),
		Rates: make(map[string]decimal.Decimal),
	}
}

// SetRate records the value of one unit of currency in the base currency.
func (t *RateTable) SetRate(currency string, rate decimal.Decimal) {
	if t.Rates == nil {
		t.Rates = make(map[string]decimal.Decimal)
	}
	t.Rates[strings.ToUpper(currency)] = rate
}

// rateToBase returns the base-currency value of one unit of currency.
func (t *RateTable) rateToBase(currency string) (decimal.Decimal, error) {
	currency = strings.ToUpper(currency)
	if currency == t.Base {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := t.Rates[currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("no exchange rate for %s against base %s", currency, t.Base)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive exchange rate %s for %s", rate, currency)
	}
	return rate, nil
}

// Convert converts an amount between two currencies via the base currency.
// Converting a currency to itself is the identity, even when the table has no
// rate for it.
func (t *RateTable) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return amount, nil
	}

	fromRate, err := t.rateToBase(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := t.rateToBase(to)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Mul(fromRate).Div(toRate), nil
}

// ToBase converts an amount from the given currency into the base currency.
func (t *RateTable) ToBase(amount decimal.Decimal, from string) (decimal.Decimal, error) {
	return t.Convert(amount, from, t.Base)
}
