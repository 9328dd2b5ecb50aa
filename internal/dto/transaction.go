package dto

import (
	"time"

	"account-service/internal/models"
)

// TransactionRequest represents the request payload for registering a
// transaction against a single account
type TransactionRequest struct {
	AccountID             string  `json:"account_id" validate:"required,uuid"`
	CounterpartyAccountID *string `json:"counterparty_account_id,omitempty" validate:"omitempty,uuid"`
	Amount                string  `json:"amount" validate:"required,positive_amount"`
	Currency              string  `json:"currency" validate:"required,currency_code"`
	Type                  string  `json:"type" validate:"required,transaction_type"`
	Description           string  `json:"description" validate:"max=500"`
}

// TransferRequest represents the request payload for moving funds between
// two accounts
type TransferRequest struct {
	FromAccountID string `json:"from_account_id" validate:"required,uuid"`
	ToAccountID   string `json:"to_account_id" validate:"required,uuid"`
	Amount        string `json:"amount" validate:"required,positive_amount"`
	Description   string `json:"description" validate:"max=500"`
}

// StatementRequest represents the request payload for a date-filtered
// account statement
type StatementRequest struct {
	AccountID string    `json:"account_id" validate:"required,uuid"`
	FromDate  time.Time `json:"from_date" validate:"required"`
	ToDate    time.Time `json:"to_date" validate:"required"`
}

// RegisterTransactionResponse confirms a registered transaction
type RegisterTransactionResponse struct {
	Message     string              `json:"message"`
	Transaction *models.Transaction `json:"transaction"`
}

// TransferResponse confirms a completed transfer and references both legs
type TransferResponse struct {
	Message             string `json:"message"`
	FromAccountID       string `json:"from_account_id"`
	ToAccountID         string `json:"to_account_id"`
	Amount              string `json:"amount"`
	DebitTransactionID  string `json:"debit_transaction_id"`
	CreditTransactionID string `json:"credit_transaction_id"`
}

// StatementResponse carries the transactions of one account inside the
// requested period, sorted ascending by transaction date
type StatementResponse struct {
	AccountID    string               `json:"account_id"`
	FromDate     time.Time            `json:"from_date"`
	ToDate       time.Time            `json:"to_date"`
	Transactions []models.Transaction `json:"transactions"`
}
