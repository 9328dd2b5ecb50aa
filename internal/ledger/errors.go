package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	errBalanceNegative = errors.New("balance cannot be negative")

	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCurrencyMismatch  = errors.New("currency mismatch")
	ErrInvalidDateRange  = errors.New("from date must not be after to date")
	ErrValidation        = errors.New("validation failed")
)

// NotFoundError reports which account ID could not be resolved. Role is a
// short label such as "source" or "destination" when the lookup happened
// inside a transfer, empty otherwise.
type NotFoundError struct {
	AccountID uuid.UUID
	Role      string
}

func (e *NotFoundError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("%s account %s not found", e.Role, e.AccountID)
	}
	return fmt.Sprintf("account %s not found", e.AccountID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrAccountNotFound
}

// InsufficientFundsError carries the current balance and the requested
// amount so callers can report both to the client.
type InsufficientFundsError struct {
	AccountID uuid.UUID
	Balance   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds on account %s: balance %s, requested %s",
		e.AccountID, e.Balance, e.Requested)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// CurrencyMismatchError is returned when a transfer is attempted between
// accounts holding different currencies. No implicit conversion is done.
type CurrencyMismatchError struct {
	FromCurrency string
	ToCurrency   string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("account currencies do not match: %s != %s", e.FromCurrency, e.ToCurrency)
}

func (e *CurrencyMismatchError) Is(target error) bool {
	return target == ErrCurrencyMismatch
}

// ValidationError wraps a field-level validation failure. It is always
// raised before any state is mutated.
type ValidationError struct {
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

func newValidationError(reason error) error {
	return &ValidationError{Reason: reason}
}
