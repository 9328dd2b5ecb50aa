package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"

	MaxDescriptionLength = 500
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
	ErrDescriptionTooLong     = errors.New("description must not exceed 500 characters")
)

// Transaction is an immutable record of a single balance-affecting event
// against one account. It is never updated or deleted after registration.
type Transaction struct {
	ID                    uuid.UUID       `json:"id"`
	AccountID             uuid.UUID       `json:"account_id"`
	CounterpartyAccountID *uuid.UUID      `json:"counterparty_account_id,omitempty"`
	Amount                decimal.Decimal `json:"amount"`
	Currency              string          `json:"currency"`
	Type                  string          `json:"type"`
	Description           string          `json:"description"`
	TransactionDate       time.Time       `json:"transaction_date"`
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !IsValidCurrencyCode(t.Currency) {
		return ErrInvalidCurrencyCode
	}

	if len([]rune(t.Description)) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}

	return nil
}

// IsCredit returns true if the transaction increases the account balance
func (t *Transaction) IsCredit() bool {
	return t.Type == TransactionTypeCredit
}

// SignedAmount returns the amount with the sign implied by the transaction
// type: positive for credits, negative for debits
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.IsCredit() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeCredit, TransactionTypeDebit:
		return true
	default:
		return false
	}
}
