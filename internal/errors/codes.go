package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound            ErrorCode = "ACCOUNT_001"
	AccountInvalidID           ErrorCode = "ACCOUNT_002"
	AccountInvalidType         ErrorCode = "ACCOUNT_003"
	AccountMissingInterestRate ErrorCode = "ACCOUNT_004"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionInvalidAmount     ErrorCode = "TRANSACTION_001"
	TransactionInsufficientFunds ErrorCode = "TRANSACTION_002"
	TransactionInvalidType       ErrorCode = "TRANSACTION_003"
)

// Transfer error codes (TRANSFER_*)
const (
	TransferInsufficientFunds ErrorCode = "TRANSFER_001"
	TransferCurrencyMismatch  ErrorCode = "TRANSFER_002"
	TransferInvalidAmount     ErrorCode = "TRANSFER_003"
)

// Statement error codes (STATEMENT_*)
const (
	StatementInvalidDateRange ErrorCode = "STATEMENT_001"
	StatementAccountUnknown   ErrorCode = "STATEMENT_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemServiceUnavailable ErrorCode = "SYSTEM_002"
	SystemUnexpectedError    ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",

	// Account errors
	AccountNotFound:            "Account not found",
	AccountInvalidID:           "Invalid account ID format",
	AccountInvalidType:         "Invalid account type",
	AccountMissingInterestRate: "Interest rate is required for deposit and credit accounts",

	// Transaction errors
	TransactionInvalidAmount:     "Invalid transaction amount",
	TransactionInsufficientFunds: "Insufficient account balance for this transaction",
	TransactionInvalidType:       "Invalid transaction type",

	// Transfer errors
	TransferInsufficientFunds: "Source account has insufficient balance for this transfer",
	TransferCurrencyMismatch:  "Account currencies do not match",
	TransferInvalidAmount:     "Invalid transfer amount",

	// Statement errors
	StatementInvalidDateRange: "Statement start date must not be after end date",
	StatementAccountUnknown:   "Statement requested for an unknown account",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
