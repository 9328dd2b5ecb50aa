package handlers

import (
	goerrors "errors"
	"net/http"
	"time"

	"account-service/internal/dto"
	"account-service/internal/errors"
	"account-service/internal/ledger"
	"account-service/internal/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	serviceName        = "account-service"
	serviceVersion     = "1.0.0"
	serviceDescription = "Bank account management service"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	ledger *ledger.Ledger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(l *ledger.Ledger) *AccountHandler {
	return &AccountHandler{ledger: l}
}

// CreateAccount opens a new account with a zero balance
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req dto.CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil || ownerID == uuid.Nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("owner_id must be a non-nil UUID"))
	}

	interestRate, err := parseOptionalRate(req.InterestRate)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid interest rate"))
	}

	account, err := h.ledger.CreateAccount(ownerID, req.Type, req.Currency, interestRate)
	if err != nil {
		metrics.RecordOperation("create_account", "failed")
		return mapAccountErr(c, err)
	}

	metrics.RecordOperation("create_account", "completed")
	metrics.SetAccountsTotal(len(h.ledger.ListAccounts()))

	return c.JSON(http.StatusCreated, dto.CreateAccountResponse{
		Account: account,
		Message: "Account created successfully",
	})
}

// GetAccount retrieves a specific account by ID
func (h *AccountHandler) GetAccount(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Account ID must be a valid UUID"))
	}

	account, err := h.ledger.GetAccount(accountID)
	if err != nil {
		return mapAccountErr(c, err)
	}

	return c.JSON(http.StatusOK, account)
}

// ListAccounts retrieves all accounts in creation order
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ledger.ListAccounts())
}

// GetAccountsByOwner retrieves all accounts belonging to one customer
func (h *AccountHandler) GetAccountsByOwner(c echo.Context) error {
	ownerID, err := uuid.Parse(c.Param("ownerId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Owner ID must be a valid UUID"))
	}

	return c.JSON(http.StatusOK, h.ledger.ListAccountsByOwner(ownerID))
}

// CheckAccountExists reports whether an account exists AND belongs to the owner
func (h *AccountHandler) CheckAccountExists(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Account ID must be a valid UUID"))
	}

	ownerID, err := uuid.Parse(c.Param("ownerId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Owner ID must be a valid UUID"))
	}

	return c.JSON(http.StatusOK, dto.ExistsResponse{
		Exists: h.ledger.AccountExists(accountID, ownerID),
	})
}

// UpdateAccount applies a partial update: interest rate and/or closed date
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Account ID must be a valid UUID"))
	}

	var req dto.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	interestRate, err := parseOptionalRate(req.InterestRate)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid interest rate"))
	}

	if err := h.ledger.UpdateInterestOrClosure(accountID, interestRate, req.ClosedDate); err != nil {
		metrics.RecordOperation("update_account", "failed")
		return mapAccountErr(c, err)
	}

	metrics.RecordOperation("update_account", "completed")
	return c.NoContent(http.StatusNoContent)
}

// ReplaceAccount overwrites every mutable field of the account. This is an
// administrative correction path: it sets balance and currency directly with
// no cross-check against the recorded transaction history.
func (h *AccountHandler) ReplaceAccount(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Account ID must be a valid UUID"))
	}

	var req dto.ReplaceAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil || ownerID == uuid.Nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("owner_id must be a non-nil UUID"))
	}

	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid balance amount"))
	}

	interestRate, err := parseOptionalRate(req.InterestRate)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid interest rate"))
	}

	state := ledger.AccountState{
		OwnerID:      ownerID,
		Type:         req.Type,
		Currency:     req.Currency,
		Balance:      balance,
		InterestRate: interestRate,
		OpenedDate:   req.OpenedDate,
		ClosedDate:   req.ClosedDate,
	}

	if err := h.ledger.ReplaceAccount(accountID, state); err != nil {
		metrics.RecordOperation("replace_account", "failed")
		return mapAccountErr(c, err)
	}

	metrics.RecordOperation("replace_account", "completed")
	return c.NoContent(http.StatusNoContent)
}

// DeleteAccount removes the account from the store. Historical transactions
// are not cascade-deleted.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Account ID must be a valid UUID"))
	}

	if err := h.ledger.DeleteAccount(accountID); err != nil {
		metrics.RecordOperation("delete_account", "failed")
		return mapAccountErr(c, err)
	}

	metrics.RecordOperation("delete_account", "completed")
	metrics.SetAccountsTotal(len(h.ledger.ListAccounts()))
	return c.NoContent(http.StatusNoContent)
}

// GetVersion returns service information
func (h *AccountHandler) GetVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.VersionResponse{
		Service:     serviceName,
		Version:     serviceVersion,
		Description: serviceDescription,
		Timestamp:   time.Now().UTC(),
	})
}

// parseOptionalRate parses an optional decimal string into a decimal pointer
func parseOptionalRate(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	rate, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// mapAccountErr translates ledger errors into standardized API responses
func mapAccountErr(c echo.Context, err error) error {
	if goerrors.Is(err, ledger.ErrAccountNotFound) {
		return SendError(c, errors.AccountNotFound, errors.WithDetails(err.Error()))
	}
	if goerrors.Is(err, ledger.ErrValidation) {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}
	return SendSystemError(c, err)
}
