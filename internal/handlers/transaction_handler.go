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

// TransactionHandler handles transaction, transfer and statement requests
type TransactionHandler struct {
	ledger *ledger.Ledger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(l *ledger.Ledger) *TransactionHandler {
	return &TransactionHandler{ledger: l}
}

// RegisterTransaction records a single credit or debit against an account
func (h *TransactionHandler) RegisterTransaction(c echo.Context) error {
	startTime := time.Now()

	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Account ID must be a valid UUID"))
	}

	var counterpartyID *uuid.UUID
	if req.CounterpartyAccountID != nil {
		id, err := uuid.Parse(*req.CounterpartyAccountID)
		if err != nil {
			return SendError(c, errors.AccountInvalidID, errors.WithDetails("Counterparty account ID must be a valid UUID"))
		}
		counterpartyID = &id
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return SendError(c, errors.TransactionInvalidAmount, errors.WithDetails("Amount must be greater than 0"))
	}

	transaction, err := h.ledger.RegisterTransaction(ledger.TransactionInput{
		AccountID:             accountID,
		CounterpartyAccountID: counterpartyID,
		Amount:                amount,
		Currency:              req.Currency,
		Type:                  req.Type,
		Description:           req.Description,
	})
	metrics.ObserveDuration("register_transaction", time.Since(startTime))

	if err != nil {
		metrics.RecordOperation("register_transaction", "failed")
		return mapTransactionErr(c, err)
	}

	metrics.RecordOperation("register_transaction", "completed")

	return c.JSON(http.StatusOK, dto.RegisterTransactionResponse{
		Message:     "Transaction registered successfully",
		Transaction: transaction,
	})
}

// Transfer moves funds between two accounts as an atomic debit/credit pair
func (h *TransactionHandler) Transfer(c echo.Context) error {
	startTime := time.Now()

	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	fromAccountID, err := uuid.Parse(req.FromAccountID)
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Source account ID must be a valid UUID"))
	}

	toAccountID, err := uuid.Parse(req.ToAccountID)
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Destination account ID must be a valid UUID"))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return SendError(c, errors.TransferInvalidAmount, errors.WithDetails("Amount must be greater than 0"))
	}

	debit, credit, err := h.ledger.Transfer(fromAccountID, toAccountID, amount, req.Description)
	duration := time.Since(startTime)
	metrics.ObserveDuration("transfer", duration)

	if err != nil {
		metrics.RecordOperation("transfer", "failed")
		return mapTransferErr(c, err)
	}

	metrics.RecordOperation("transfer", "completed")
	amountFloat, _ := amount.Float64()
	metrics.ObserveTransferAmount(amountFloat)

	return c.JSON(http.StatusOK, dto.TransferResponse{
		Message:             "Transfer completed successfully",
		FromAccountID:       fromAccountID.String(),
		ToAccountID:         toAccountID.String(),
		Amount:              amount.String(),
		DebitTransactionID:  debit.ID.String(),
		CreditTransactionID: credit.ID.String(),
	})
}

// GetStatement returns the account's transactions inside the requested
// period, sorted ascending by transaction date. An unknown account yields
// 400 here, unlike the account endpoints.
func (h *TransactionHandler) GetStatement(c echo.Context) error {
	var req dto.StatementRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Account ID must be a valid UUID"))
	}

	transactions, err := h.ledger.GetStatement(accountID, req.FromDate, req.ToDate)
	if err != nil {
		metrics.RecordOperation("get_statement", "failed")
		if goerrors.Is(err, ledger.ErrAccountNotFound) {
			return SendError(c, errors.StatementAccountUnknown, errors.WithDetails(err.Error()))
		}
		if goerrors.Is(err, ledger.ErrValidation) {
			return SendError(c, errors.StatementInvalidDateRange, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	metrics.RecordOperation("get_statement", "completed")

	return c.JSON(http.StatusOK, dto.StatementResponse{
		AccountID:    accountID.String(),
		FromDate:     req.FromDate,
		ToDate:       req.ToDate,
		Transactions: transactions,
	})
}

func mapTransactionErr(c echo.Context, err error) error {
	if goerrors.Is(err, ledger.ErrAccountNotFound) {
		return SendError(c, errors.AccountNotFound, errors.WithDetails(err.Error()))
	}
	if goerrors.Is(err, ledger.ErrInsufficientFunds) {
		return SendError(c, errors.TransactionInsufficientFunds, errors.WithDetails(err.Error()))
	}
	if goerrors.Is(err, ledger.ErrValidation) {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}
	return SendSystemError(c, err)
}

func mapTransferErr(c echo.Context, err error) error {
	if goerrors.Is(err, ledger.ErrAccountNotFound) {
		return SendError(c, errors.AccountNotFound, errors.WithDetails(err.Error()))
	}
	if goerrors.Is(err, ledger.ErrInsufficientFunds) {
		return SendError(c, errors.TransferInsufficientFunds, errors.WithDetails(err.Error()))
	}
	if goerrors.Is(err, ledger.ErrCurrencyMismatch) {
		return SendError(c, errors.TransferCurrencyMismatch, errors.WithDetails(err.Error()))
	}
	if goerrors.Is(err, ledger.ErrValidation) {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}
	return SendSystemError(c, err)
}
