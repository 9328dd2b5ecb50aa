package ledger

import (
	"fmt"
	"sort"
	"time"

	"account-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionInput carries the caller-supplied fields for registering a
// single transaction against one account
type TransactionInput struct {
	AccountID             uuid.UUID
	CounterpartyAccountID *uuid.UUID
	Amount                decimal.Decimal
	Currency              string
	Type                  string
	Description           string
}

// RegisterTransaction validates the input, applies the balance delta and
// appends the transaction to the global log. All checks happen before any
// mutation: a debit that would drive the balance negative is rejected with
// InsufficientFundsError and leaves the ledger untouched.
func (l *Ledger) RegisterTransaction(input TransactionInput) (*models.Transaction, error) {
	transaction := &models.Transaction{
		ID:                    uuid.New(),
		AccountID:             input.AccountID,
		CounterpartyAccountID: input.CounterpartyAccountID,
		Amount:                input.Amount,
		Currency:              input.Currency,
		Type:                  input.Type,
		Description:           input.Description,
		TransactionDate:       time.Now().UTC(),
	}
	if err := transaction.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	account, ok := l.accounts[input.AccountID]
	if !ok {
		return nil, &NotFoundError{AccountID: input.AccountID}
	}

	if input.CounterpartyAccountID != nil {
		if _, ok := l.accounts[*input.CounterpartyAccountID]; !ok {
			return nil, &NotFoundError{AccountID: *input.CounterpartyAccountID, Role: "counterparty"}
		}
	}

	if input.Type == models.TransactionTypeDebit && account.Balance.LessThan(input.Amount) {
		return nil, &InsufficientFundsError{
			AccountID: account.ID,
			Balance:   account.Balance,
			Requested: input.Amount,
		}
	}

	// All preconditions passed; the writes below are infallible, so the
	// balance update and the append commit together.
	account.Balance = account.Balance.Add(transaction.SignedAmount())
	l.transactions = append(l.transactions, transaction)

	l.logger.Info("transaction registered",
		"transaction_id", transaction.ID,
		"account_id", account.ID,
		"type", transaction.Type,
		"amount", transaction.Amount,
		"currency", transaction.Currency,
	)

	registered := *transaction
	return &registered, nil
}

// Transfer moves amount from one account to another as a paired debit and
// credit. Both legs commit inside one critical section or not at all; no
// reader can ever observe only one leg. The accounts must hold the same
// currency, and each leg records the other account as its counterparty.
func (l *Ledger) Transfer(fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, description string) (debit, credit *models.Transaction, err error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, newValidationError(models.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fromAccount, ok := l.accounts[fromAccountID]
	if !ok {
		return nil, nil, &NotFoundError{AccountID: fromAccountID, Role: "source"}
	}

	toAccount, ok := l.accounts[toAccountID]
	if !ok {
		return nil, nil, &NotFoundError{AccountID: toAccountID, Role: "destination"}
	}

	if fromAccount.Balance.LessThan(amount) {
		return nil, nil, &InsufficientFundsError{
			AccountID: fromAccount.ID,
			Balance:   fromAccount.Balance,
			Requested: amount,
		}
	}

	if fromAccount.Currency != toAccount.Currency {
		return nil, nil, &CurrencyMismatchError{
			FromCurrency: fromAccount.Currency,
			ToCurrency:   toAccount.Currency,
		}
	}

	now := time.Now().UTC()

	debitTransaction := &models.Transaction{
		ID:                    uuid.New(),
		AccountID:             fromAccountID,
		CounterpartyAccountID: &toAccountID,
		Amount:                amount,
		Currency:              fromAccount.Currency,
		Type:                  models.TransactionTypeDebit,
		Description:           fmt.Sprintf("Transfer to account %s: %s", toAccountID, description),
		TransactionDate:       now,
	}

	creditTransaction := &models.Transaction{
		ID:                    uuid.New(),
		AccountID:             toAccountID,
		CounterpartyAccountID: &fromAccountID,
		Amount:                amount,
		Currency:              toAccount.Currency,
		Type:                  models.TransactionTypeCredit,
		Description:           fmt.Sprintf("Received from account %s: %s", fromAccountID, description),
		TransactionDate:       now,
	}

	fromAccount.Balance = fromAccount.Balance.Sub(amount)
	toAccount.Balance = toAccount.Balance.Add(amount)
	l.transactions = append(l.transactions, debitTransaction, creditTransaction)

	l.logger.Info("transfer completed",
		"from_account_id", fromAccountID,
		"to_account_id", toAccountID,
		"amount", amount,
		"currency", fromAccount.Currency,
		"debit_transaction_id", debitTransaction.ID,
		"credit_transaction_id", creditTransaction.ID,
	)

	debitCopy := *debitTransaction
	creditCopy := *creditTransaction
	return &debitCopy, &creditCopy, nil
}

// GetStatement returns the account's transactions with a transaction date
// inside [fromDate, toDate], both ends inclusive, sorted ascending by date.
// Transactions with equal timestamps keep their registration order.
func (l *Ledger) GetStatement(accountID uuid.UUID, fromDate, toDate time.Time) ([]models.Transaction, error) {
	if fromDate.After(toDate) {
		return nil, newValidationError(ErrInvalidDateRange)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.accounts[accountID]; !ok {
		return nil, &NotFoundError{AccountID: accountID}
	}

	statement := make([]models.Transaction, 0)
	for _, transaction := range l.transactions {
		if transaction.AccountID != accountID {
			continue
		}
		if transaction.TransactionDate.Before(fromDate) || transaction.TransactionDate.After(toDate) {
			continue
		}
		statement = append(statement, *transaction)
	}

	sort.SliceStable(statement, func(i, j int) bool {
		return statement[i].TransactionDate.Before(statement[j].TransactionDate)
	})

	l.logger.Info("statement generated",
		"account_id", accountID,
		"from_date", fromDate,
		"to_date", toDate,
		"transactions", len(statement),
	)

	return statement, nil
}

// AccountTransactions returns every transaction recorded against the
// account, in registration order. The account's history is a derived view
// over the global log rather than a duplicated per-account list.
func (l *Ledger) AccountTransactions(accountID uuid.UUID) ([]models.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.accounts[accountID]; !ok {
		return nil, &NotFoundError{AccountID: accountID}
	}

	transactions := make([]models.Transaction, 0)
	for _, transaction := range l.transactions {
		if transaction.AccountID == accountID {
			transactions = append(transactions, *transaction)
		}
	}
	return transactions, nil
}
