// Package errors provides custom error types for the travel system API.
// All service-layer errors should use AppError so that callers always
// receive a specific, typed failure kind and never a generic message.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
	ErrSessionExpired     = &AppError{Code: "SESSION_EXPIRED", Message: "Session has expired", StatusCode: http.StatusUnauthorized}
	ErrSessionInvalid     = &AppError{Code: "SESSION_INVALID", Message: "Session is invalid", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Faculty errors.
var (
	ErrFacultyNotFound   = &AppError{Code: "FACULTY_NOT_FOUND", Message: "Faculty member not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "A faculty member with this username already exists", StatusCode: http.StatusConflict}
)

// Request lifecycle errors.
var (
	ErrRequestNotFound    = &AppError{Code: "REQUEST_NOT_FOUND", Message: "Travel request not found", StatusCode: http.StatusNotFound}
	ErrRestrictedPeriod   = &AppError{Code: "RESTRICTED_PERIOD", Message: "Travel dates overlap with a restricted period", StatusCode: http.StatusBadRequest}
	ErrAlreadyUnderReview = &AppError{Code: "ALREADY_UNDER_REVIEW", Message: "Request is already under review by another approver", StatusCode: http.StatusConflict}
	ErrAlreadyDecided     = &AppError{Code: "ALREADY_DECIDED", Message: "Request has already reached a terminal state", StatusCode: http.StatusConflict}
	ErrInvalidTransition  = &AppError{Code: "INVALID_TRANSITION", Message: "Request state does not permit this operation", StatusCode: http.StatusConflict}
	ErrNotReversible      = &AppError{Code: "NOT_REVERSIBLE", Message: "Only an approved request can be reversed", StatusCode: http.StatusConflict}
)

// Budget ledger errors.
var (
	ErrBudgetNotFound     = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget has not been initialized", StatusCode: http.StatusNotFound}
	ErrInsufficientBudget = &AppError{Code: "INSUFFICIENT_BUDGET", Message: "Insufficient budget for this approval", StatusCode: http.StatusConflict}
	ErrBelowCommitted     = &AppError{Code: "BELOW_COMMITTED", Message: "New allocation is below the committed spend", StatusCode: http.StatusConflict}
)

// Restricted date errors.
var (
	ErrRestrictedDateNotFound = &AppError{Code: "RESTRICTED_DATE_NOT_FOUND", Message: "Restricted date not found", StatusCode: http.StatusNotFound}
)
