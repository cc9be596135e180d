package session

import (
	"errors"
	"fmt"
)

// Error codes for session failures.
const (
	// ErrAuthFailed covers rejected credentials, empty auth results,
	// and unrecognized auth response shapes.
	ErrAuthFailed = "AUTH_FAILED"
	// ErrAuthMissingInput means the identifier or password was empty.
	ErrAuthMissingInput = "AUTH_MISSING_INPUT"

	// ErrRegistrationFailed is the registration-path counterpart of
	// ErrAuthFailed.
	ErrRegistrationFailed = "REG_FAILED"
	// ErrRegistrationIncomplete means required profile fields were
	// missing.
	ErrRegistrationIncomplete = "REG_MISSING_FIELDS"

	// ErrPersistFailed means the credential store rejected a write. The
	// in-memory session is left unchanged when this happens, so
	// consumers never observe a logged-in state without a persisted
	// copy.
	ErrPersistFailed = "SESSION_PERSIST_FAILED"
)

// Error is a typed session error with code and cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Cause }

// NewError creates an Error.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps cause in an Error.
func WrapError(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the session error code of err, or "".
func CodeOf(err error) string {
	var sessErr *Error
	if errors.As(err, &sessErr) {
		return sessErr.Code
	}
	return ""
}
