package ledger

import (
	"time"

	"account-service/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeedSampleData populates the ledger with one demo customer holding a
// checking account and a deposit account, plus a short transaction history:
// a cash deposit followed by a transfer onto the deposit account. Meant for
// development environments only.
//
// The records are written directly so the history can carry dates in the
// past, which the public operations never allow.
func (l *Ledger) SeedSampleData() uuid.UUID {
	ownerID := uuid.New()
	cashierName := gofakeit.FirstName()

	now := time.Now().UTC()
	openedDate := now.AddDate(0, 0, -30)
	depositRate := decimal.NewFromFloat(3.0)

	checking := &models.Account{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Type:       models.AccountTypeChecking,
		Currency:   models.DefaultCurrency,
		Balance:    decimal.NewFromInt(800),
		OpenedDate: openedDate,
	}

	deposit := &models.Account{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Type:         models.AccountTypeDeposit,
		Currency:     models.DefaultCurrency,
		Balance:      decimal.NewFromInt(200),
		InterestRate: &depositRate,
		OpenedDate:   openedDate,
	}

	cashDeposit := &models.Transaction{
		ID:              uuid.New(),
		AccountID:       checking.ID,
		Amount:          decimal.NewFromInt(1000),
		Currency:        checking.Currency,
		Type:            models.TransactionTypeCredit,
		Description:     "Cash deposit at branch, cashier " + cashierName,
		TransactionDate: now.AddDate(0, 0, -20),
	}

	transferDate := now.AddDate(0, 0, -15)
	transferOut := &models.Transaction{
		ID:                    uuid.New(),
		AccountID:             checking.ID,
		CounterpartyAccountID: &deposit.ID,
		Amount:                decimal.NewFromInt(200),
		Currency:              checking.Currency,
		Type:                  models.TransactionTypeDebit,
		Description:           "Transfer to savings deposit",
		TransactionDate:       transferDate,
	}
	transferIn := &models.Transaction{
		ID:                    uuid.New(),
		AccountID:             deposit.ID,
		CounterpartyAccountID: &checking.ID,
		Amount:                decimal.NewFromInt(200),
		Currency:              deposit.Currency,
		Type:                  models.TransactionTypeCredit,
		Description:           "Received from checking account",
		TransactionDate:       transferDate,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, account := range []*models.Account{checking, deposit} {
		l.accounts[account.ID] = account
		l.order = append(l.order, account.ID)
	}
	l.transactions = append(l.transactions, cashDeposit, transferOut, transferIn)

	l.logger.Info("sample data seeded",
		"owner_id", ownerID,
		"checking_account_id", checking.ID,
		"deposit_account_id", deposit.ID,
	)

	return ownerID
}
