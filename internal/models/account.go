// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountKind identifies the type of a tracked account.
type AccountKind string

const (
	AccountKindBank       AccountKind = "bank"
	AccountKindSavings    AccountKind = "savings"
	AccountKindInvestment AccountKind = "investment"
	AccountKindCrypto     AccountKind = "crypto"
	AccountKindLoan       AccountKind = "loan"
	AccountKindInsurance  AccountKind = "insurance"
	AccountKindBond       AccountKind = "bond"
)

// KnownAccountKinds lists every account kind the application tracks.
var KnownAccountKinds = []AccountKind{
	AccountKindBank,
	AccountKindSavings,
	AccountKindInvestment,
	AccountKindCrypto,
	AccountKindLoan,
	AccountKindInsurance,
	AccountKindBond,
}

// IsValid reports whether k is one of the known account kinds.
func (k AccountKind) IsValid() bool {
	for _, known := range KnownAccountKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Account represents a single tracked account (bank, savings, investment,
// crypto, loan, insurance or bond).
type Account struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Kind        AccountKind     `json:"kind" yaml:"kind"`
	Currency    string          `json:"currency" yaml:"currency"`
	Balance     decimal.Decimal `json:"balance" yaml:"balance"`
	IBAN        string          `json:"iban,omitempty" yaml:"iban,omitempty"`
	Institution string          `json:"institution,omitempty" yaml:"institution,omitempty"`
	CreatedAt   time.Time       `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" yaml:"updated_at"`
}

// NewAccount creates an Account with a generated ID and creation timestamp.
func NewAccount(name string, kind AccountKind, currency string, balance decimal.Decimal) Account {
	now := time.Now()
	return Account{
		ID:        uuid.New().String(),
		Name:      name,
		Kind:      kind,
		Currency:  currency,
		Balance:   balance,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BalanceMoney returns the account balance as a Money value.
func (a Account) BalanceMoney() Money {
	return NewMoney(a.Balance, a.Currency)
}

// InterestZone is a balance tier with its own annual interest rate, used by
// banks that pay different rates on different portions of a deposit.
//
// A ToAmount of zero is a sentinel meaning the tier is unbounded: it extends
// to cover the rest of the balance.
type InterestZone struct {
	AccountID    string          `json:"account_id" yaml:"account_id"`
	FromAmount   decimal.Decimal `json:"from_amount" yaml:"from_amount"`
	ToAmount     decimal.Decimal `json:"to_amount" yaml:"to_amount"`
	InterestRate decimal.Decimal `json:"interest_rate" yaml:"interest_rate"`
}

// IsUnbounded reports whether the zone's upper bound is the "open" sentinel.
func (z InterestZone) IsUnbounded() bool {
	return z.ToAmount.IsZero()
}
