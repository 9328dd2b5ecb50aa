package dto

import (
	"time"

	"account-service/internal/models"
)

// Account Request DTOs

// CreateAccountRequest represents the request payload for opening a new account.
// Amounts and rates travel as strings so the handler can parse them into
// decimals without float rounding.
type CreateAccountRequest struct {
	OwnerID      string  `json:"owner_id" validate:"required,uuid"`
	Type         string  `json:"type" validate:"required,account_type"`
	Currency     string  `json:"currency" validate:"required,currency_code"`
	InterestRate *string `json:"interest_rate,omitempty" validate:"omitempty,interest_rate"`
}

// UpdateAccountRequest represents the partial-update payload: only supplied
// fields are applied
type UpdateAccountRequest struct {
	InterestRate *string    `json:"interest_rate,omitempty" validate:"omitempty,interest_rate"`
	ClosedDate   *time.Time `json:"closed_date,omitempty"`
}

// ReplaceAccountRequest represents the full-replace payload. Every mutable
// field must be present; the operation overwrites the stored account wholesale.
type ReplaceAccountRequest struct {
	OwnerID      string     `json:"owner_id" validate:"required,uuid"`
	Type         string     `json:"type" validate:"required,account_type"`
	Currency     string     `json:"currency" validate:"required,currency_code"`
	Balance      string     `json:"balance" validate:"required"`
	InterestRate *string    `json:"interest_rate,omitempty" validate:"omitempty,interest_rate"`
	OpenedDate   time.Time  `json:"opened_date" validate:"required"`
	ClosedDate   *time.Time `json:"closed_date,omitempty"`
}

// Account Response DTOs

// CreateAccountResponse represents the response after creating an account
type CreateAccountResponse struct {
	Account *models.Account `json:"account"`
	Message string          `json:"message"`
}

// ExistsResponse represents the result of an account ownership check
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}

// VersionResponse describes the running service
type VersionResponse struct {
	Service     string    `json:"service"`
	Version     string    `json:"version"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
