package models

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AccountTypeChecking = "checking"
	AccountTypeDeposit  = "deposit"
	AccountTypeCredit   = "credit"

	DefaultCurrency = "RUB"
)

var (
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidCurrencyCode  = errors.New("currency must be a 3-letter uppercase ISO code")
	ErrInvalidInterestRate  = errors.New("interest rate must be between 0 and 100")
	ErrInterestRateRequired = errors.New("interest rate is required for deposit and credit accounts")
	ErrOwnerRequired        = errors.New("owner ID is required")
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Account represents a bank account holding a balance in a single currency.
// Balance is mutated only through ledger operations; the transaction history
// lives in the ledger's global log and is queried by account ID.
type Account struct {
	ID           uuid.UUID        `json:"id"`
	OwnerID      uuid.UUID        `json:"owner_id"`
	Type         string           `json:"type"`
	Currency     string           `json:"currency"`
	Balance      decimal.Decimal  `json:"balance"`
	InterestRate *decimal.Decimal `json:"interest_rate,omitempty"`
	OpenedDate   time.Time        `json:"opened_date"`
	ClosedDate   *time.Time       `json:"closed_date,omitempty"`
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.OwnerID == uuid.Nil {
		return ErrOwnerRequired
	}

	if !IsValidAccountType(a.Type) {
		return ErrInvalidAccountType
	}

	if !IsValidCurrencyCode(a.Currency) {
		return ErrInvalidCurrencyCode
	}

	// Deposit and credit accounts always carry a rate. The rate is stored
	// as inert metadata; no accrual is ever computed from it.
	if RequiresInterestRate(a.Type) && a.InterestRate == nil {
		return ErrInterestRateRequired
	}

	if a.InterestRate != nil && !IsValidInterestRate(*a.InterestRate) {
		return ErrInvalidInterestRate
	}

	return nil
}

// IsClosed returns true if the account has a closed date set
func (a *Account) IsClosed() bool {
	return a.ClosedDate != nil
}

// CanWithdraw checks if the amount can be debited without going negative
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero) && a.Balance.GreaterThanOrEqual(amount)
}

// Helper functions

// IsValidAccountType checks if the account type is valid
func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeChecking, AccountTypeDeposit, AccountTypeCredit:
		return true
	default:
		return false
	}
}

// RequiresInterestRate reports whether the account type must carry an
// interest rate at creation time
func RequiresInterestRate(accountType string) bool {
	return accountType == AccountTypeDeposit || accountType == AccountTypeCredit
}

// IsValidCurrencyCode checks the 3-uppercase-letter currency format
func IsValidCurrencyCode(currency string) bool {
	return currencyCodePattern.MatchString(currency)
}

// IsValidInterestRate checks that a rate lies within [0, 100]
func IsValidInterestRate(rate decimal.Decimal) bool {
	return rate.GreaterThanOrEqual(decimal.Zero) && rate.LessThanOrEqual(decimal.NewFromInt(100))
}
