package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorCode represents a unique error code for client errors
type ErrorCode string

// Client error codes
const (
	// Transport-level errors
	ErrCodeUnauthenticated    ErrorCode = "UNAUTHENTICATED"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeServerError        ErrorCode = "SERVER_ERROR"
	ErrCodeNetworkUnreachable ErrorCode = "NETWORK_UNREACHABLE"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"
	ErrCodeClientConfig       ErrorCode = "CLIENT_CONFIG"

	// Domain-level errors (non-200 envelope code inside an HTTP 2xx)
	ErrCodeDomain ErrorCode = "DOMAIN_ERROR"

	// Credential errors
	ErrCodeInvalidCredential ErrorCode = "INVALID_CREDENTIAL"

	// Validation of outgoing payloads
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// Retry-augmented query exhausted its budget
	ErrCodeRetryExhausted ErrorCode = "RETRY_EXHAUSTED"
)

// AppError represents a client library error
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Err        error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getDefaultStatusCode(code),
	}
}

// Newf creates a new AppError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new AppError wrapping an existing error
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getDefaultStatusCode(code),
		Err:        err,
	}
}

// Wrapf creates a new AppError wrapping an existing error with formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetails adds details to an existing AppError
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithStatusCode overrides the default status code
func (e *AppError) WithStatusCode(statusCode int) *AppError {
	e.StatusCode = statusCode
	return e
}

// getDefaultStatusCode returns the HTTP status usually associated with a code
func getDefaultStatusCode(code ErrorCode) int {
	switch code {
	case ErrCodeUnauthenticated, ErrCodeInvalidCredential:
		return http.StatusUnauthorized
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidation, ErrCodeClientConfig:
		return http.StatusBadRequest
	case ErrCodeServerError:
		return http.StatusInternalServerError
	default:
		return 0
	}
}

// Predefined common errors
var (
	ErrUnauthenticated    = New(ErrCodeUnauthenticated, "Session expired or not authorized")
	ErrNotFound           = New(ErrCodeNotFound, "Requested resource not found")
	ErrNetworkUnreachable = New(ErrCodeNetworkUnreachable, "Network error, server unreachable")
	ErrInvalidCredential  = New(ErrCodeInvalidCredential, "Credential must not be empty")
)

// IsAppError checks if an error is an AppError
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err carries the given error code
func IsCode(err error, code ErrorCode) bool {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsTimeout reports whether err belongs to the timeout/connection-abort
// class. This is the retry predicate for the AI query module: only these
// failures may be retried.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if IsCode(err, ErrCodeTimeout) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
