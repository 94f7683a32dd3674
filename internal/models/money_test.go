package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("150000.50", "CHF")
	require.NoError(t, err)
	assert.Equal(t, "150000.50 CHF", m.String())

	_, err = NewMoneyFromString("not-a-number", "CHF")
	assert.Error(t, err)
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoney(decimal.NewFromInt(100), "CHF")
	b := NewMoney(decimal.NewFromInt(40), "CHF")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "140.00 CHF", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "60.00 CHF", diff.String())

	assert.Equal(t, "200.00 CHF", a.Mul(decimal.NewFromInt(2)).String())
	assert.Equal(t, "-100.00 CHF", a.Neg().String())
	assert.Equal(t, "100.00 CHF", a.Neg().Abs().String())
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	chf := NewMoney(decimal.NewFromInt(100), "CHF")
	eur := NewMoney(decimal.NewFromInt(100), "EUR")

	_, err := chf.Add(eur)
	assert.Error(t, err)
	_, err = chf.Sub(eur)
	assert.Error(t, err)
}

func TestMoneySignHelpers(t *testing.T) {
	assert.True(t, ZeroMoney("CHF").IsZero())
	assert.True(t, NewMoney(decimal.NewFromInt(1), "CHF").IsPositive())
	assert.True(t, NewMoney(decimal.NewFromInt(-1), "CHF").IsNegative())
}

func TestAccountKindValidation(t *testing.T) {
	assert.True(t, AccountKindSavings.IsValid())
	assert.True(t, AccountKindCrypto.IsValid())
	assert.False(t, AccountKind("mattress").IsValid())
}

func TestInterestZoneIsUnbounded(t *testing.T) {
	bounded := InterestZone{ToAmount: decimal.NewFromInt(100000)}
	assert.False(t, bounded.IsUnbounded())

	unbounded := InterestZone{ToAmount: decimal.Zero}
	assert.True(t, unbounded.IsUnbounded())
}

func TestDirectionFromAmount(t *testing.T) {
	assert.Equal(t, DirectionCredit, DirectionFromAmount(NewMoney(decimal.NewFromInt(50), "CHF")))
	assert.Equal(t, DirectionDebit, DirectionFromAmount(NewMoney(decimal.NewFromInt(-50), "CHF")))
	assert.Equal(t, DirectionUnknown, DirectionFromAmount(ZeroMoney("CHF")))
}
