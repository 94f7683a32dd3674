package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionDirection represents the direction of a transaction
type TransactionDirection string

const (
	DirectionDebit   TransactionDirection = "debit"
	DirectionCredit  TransactionDirection = "credit"
	DirectionUnknown TransactionDirection = "unknown"
)

// Transaction represents a single booked movement on an account.
type Transaction struct {
	ID          string               `json:"id" yaml:"id"`
	AccountID   string               `json:"account_id" yaml:"account_id"`
	Date        time.Time            `json:"date" yaml:"date"`
	ValueDate   time.Time            `json:"value_date" yaml:"value_date"`
	Amount      Money                `json:"amount" yaml:"amount"`
	Party       string               `json:"party" yaml:"party"`
	Description string               `json:"description" yaml:"description"`
	Reference   string               `json:"reference,omitempty" yaml:"reference,omitempty"`
	Category    string               `json:"category,omitempty" yaml:"category,omitempty"`
	Direction   TransactionDirection `json:"direction" yaml:"direction"`
}

// NewTransaction creates a Transaction with a generated ID. The direction is
// derived from the sign of the amount when not supplied by the source.
func NewTransaction(accountID string, date time.Time, amount Money, party, description string) Transaction {
	return Transaction{
		ID:          uuid.New().String(),
		AccountID:   accountID,
		Date:        date,
		ValueDate:   date,
		Amount:      amount,
		Party:       party,
		Description: description,
		Direction:   DirectionFromAmount(amount),
	}
}

// DirectionFromAmount derives the transaction direction from the amount sign.
func DirectionFromAmount(amount Money) TransactionDirection {
	switch {
	case amount.IsNegative():
		return DirectionDebit
	case amount.IsPositive():
		return DirectionCredit
	default:
		return DirectionUnknown
	}
}

// IsDebit returns true if the transaction is a debit
func (t Transaction) IsDebit() bool {
	return t.Direction == DirectionDebit
}

// IsCredit returns true if the transaction is a credit
func (t Transaction) IsCredit() bool {
	return t.Direction == DirectionCredit
}
