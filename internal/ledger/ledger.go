package ledger

import (
	"log/slog"
	"sync"
	"time"

	"account-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger is the in-memory store of accounts and transactions. All state is
// volatile and guarded by a single RWMutex: every mutating operation takes
// the write lock for its whole validate-then-commit sequence, so compound
// mutations (both legs of a transfer) are indivisible to every reader.
//
// The store never hands out pointers into guarded state; operations return
// copies.
type Ledger struct {
	mu           sync.RWMutex
	accounts     map[uuid.UUID]*models.Account
	order        []uuid.UUID
	transactions []*models.Transaction
	logger       *slog.Logger
}

// New creates an empty ledger
func New(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		accounts: make(map[uuid.UUID]*models.Account),
		logger:   logger,
	}
}

// AccountState is the full mutable state applied by ReplaceAccount
type AccountState struct {
	OwnerID      uuid.UUID
	Type         string
	Currency     string
	Balance      decimal.Decimal
	InterestRate *decimal.Decimal
	OpenedDate   time.Time
	ClosedDate   *time.Time
}

// CreateAccount opens a new account with a zero balance. Deposit and credit
// accounts must supply an interest rate; the rate is stored but never used
// in any balance computation.
func (l *Ledger) CreateAccount(ownerID uuid.UUID, accountType, currency string, interestRate *decimal.Decimal) (*models.Account, error) {
	account := &models.Account{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Type:         accountType,
		Currency:     currency,
		Balance:      decimal.Zero,
		InterestRate: interestRate,
		OpenedDate:   time.Now().UTC(),
	}

	if err := account.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.accounts[account.ID] = account
	l.order = append(l.order, account.ID)

	l.logger.Info("account created",
		"account_id", account.ID,
		"owner_id", ownerID,
		"type", accountType,
		"currency", currency,
	)

	return copyAccount(account), nil
}

// GetAccount returns the account with the given ID
func (l *Ledger) GetAccount(id uuid.UUID) (*models.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	account, ok := l.accounts[id]
	if !ok {
		return nil, &NotFoundError{AccountID: id}
	}

	return copyAccount(account), nil
}

// ListAccounts returns all accounts in insertion order
func (l *Ledger) ListAccounts() []models.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()

	accounts := make([]models.Account, 0, len(l.order))
	for _, id := range l.order {
		accounts = append(accounts, *copyAccount(l.accounts[id]))
	}
	return accounts
}

// ListAccountsByOwner returns all accounts belonging to the given owner,
// in insertion order
func (l *Ledger) ListAccountsByOwner(ownerID uuid.UUID) []models.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()

	accounts := make([]models.Account, 0)
	for _, id := range l.order {
		if account := l.accounts[id]; account.OwnerID == ownerID {
			accounts = append(accounts, *copyAccount(account))
		}
	}
	return accounts
}

// AccountExists reports whether an account with the given ID exists AND
// belongs to the given owner
func (l *Ledger) AccountExists(accountID, ownerID uuid.UUID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	account, ok := l.accounts[accountID]
	return ok && account.OwnerID == ownerID
}

// UpdateInterestOrClosure applies a partial update: only the supplied fields
// are touched. A nil interestRate or closedDate leaves the stored value as is.
func (l *Ledger) UpdateInterestOrClosure(id uuid.UUID, interestRate *decimal.Decimal, closedDate *time.Time) error {
	if interestRate != nil && !models.IsValidInterestRate(*interestRate) {
		return newValidationError(models.ErrInvalidInterestRate)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	account, ok := l.accounts[id]
	if !ok {
		return &NotFoundError{AccountID: id}
	}

	if interestRate != nil {
		rate := *interestRate
		account.InterestRate = &rate
	}

	if closedDate != nil {
		date := *closedDate
		account.ClosedDate = &date
	}

	l.logger.Info("account updated", "account_id", id)
	return nil
}

// ReplaceAccount overwrites every mutable field of the account with the
// supplied state. Beyond field-level constraints (non-negative balance,
// currency format, required fields) no business rules are cross-checked:
// this is an administrative correction path that deliberately bypasses the
// invariants transactions are held to, including consistency with the
// account's recorded transaction history.
func (l *Ledger) ReplaceAccount(id uuid.UUID, state AccountState) error {
	if state.Balance.LessThan(decimal.Zero) {
		return newValidationError(errBalanceNegative)
	}

	replacement := models.Account{
		ID:           id,
		OwnerID:      state.OwnerID,
		Type:         state.Type,
		Currency:     state.Currency,
		Balance:      state.Balance,
		InterestRate: state.InterestRate,
		OpenedDate:   state.OpenedDate,
		ClosedDate:   state.ClosedDate,
	}
	if err := replacement.Validate(); err != nil {
		return newValidationError(err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	account, ok := l.accounts[id]
	if !ok {
		return &NotFoundError{AccountID: id}
	}

	*account = replacement

	l.logger.Info("account replaced", "account_id", id, "owner_id", state.OwnerID)
	return nil
}

// DeleteAccount removes the account from the store. Historical transactions
// recorded against it remain in the global log untouched.
func (l *Ledger) DeleteAccount(id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accounts[id]; !ok {
		return &NotFoundError{AccountID: id}
	}

	delete(l.accounts, id)
	for i, accountID := range l.order {
		if accountID == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}

	l.logger.Info("account deleted", "account_id", id)
	return nil
}

func copyAccount(a *models.Account) *models.Account {
	c := *a
	if a.InterestRate != nil {
		rate := *a.InterestRate
		c.InterestRate = &rate
	}
	if a.ClosedDate != nil {
		date := *a.ClosedDate
		c.ClosedDate = &date
	}
	return &c
}
