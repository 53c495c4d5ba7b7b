package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes carried by DomainError.
const (
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeSessionExpired       = "SESSION_EXPIRED"
	CodeNotAuthenticated     = "NOT_AUTHENTICATED"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeNetworkError         = "NETWORK_ERROR"
	CodeImportRowFailed      = "IMPORT_ROW_FAILED"
)

// DomainError represents a domain-specific error with a code and message.
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError carrying the same code, so wrapped copies
// compare equal to the sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

var (
	ErrInvalidCredentials = &DomainError{
		Code:    CodeAuthenticationFailed,
		Message: "invalid email or password",
	}
	ErrSessionExpired = &DomainError{
		Code:    CodeSessionExpired,
		Message: "session expired, please log in again",
	}
	ErrNotAuthenticated = &DomainError{
		Code:    CodeNotAuthenticated,
		Message: "not logged in",
	}
	ErrValidationFailed = &DomainError{
		Code:    CodeValidationFailed,
		Message: "validation failed",
	}
	ErrNetwork = &DomainError{
		Code:    CodeNetworkError,
		Message: "network operation failed",
	}
	ErrImportRow = &DomainError{
		Code:    CodeImportRowFailed,
		Message: "import row failed",
	}
)

// WrapNetwork wraps a transport failure.
func WrapNetwork(operation string, cause error) error {
	return &DomainError{
		Code:    CodeNetworkError,
		Message: fmt.Sprintf("network operation failed: %s", operation),
		Cause:   cause,
	}
}

// WrapInvalidCredentials wraps a backend rejection of a login attempt.
func WrapInvalidCredentials(cause error) error {
	return &DomainError{
		Code:    CodeAuthenticationFailed,
		Message: ErrInvalidCredentials.Message,
		Cause:   cause,
	}
}

// ValidationError lists the field problems reported by the backend.
type ValidationError struct {
	Messages []string
	Cause    error
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return ErrValidationFailed.Error()
	}
	return fmt.Sprintf("%s: %s", CodeValidationFailed, strings.Join(e.Messages, "; "))
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrValidationFailed}
	}
	return []error{ErrValidationFailed, e.Cause}
}

// RowError records why one line of an imported file was not applied.
// Line is 1-based and counts the header.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() []error {
	return []error{ErrImportRow, e.Err}
}

// IsAuthenticationError reports whether err means the credentials were
// rejected or the session is gone.
func IsAuthenticationError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == CodeAuthenticationFailed ||
			domainErr.Code == CodeSessionExpired ||
			domainErr.Code == CodeNotAuthenticated
	}
	return false
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// IsNetworkError checks if an error is a transport failure.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// HTTPStatus returns the backend status code carried by err, or 0.
func HTTPStatus(err error) int {
	var withStatus interface{ HTTPStatus() int }
	if errors.As(err, &withStatus) {
		return withStatus.HTTPStatus()
	}
	return 0
}
