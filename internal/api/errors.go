package api

import (
	"errors"
	"fmt"
)

// Error codes for API client failures.
const (
	// ErrRequestFailed covers transport-level failures (connect, TLS).
	ErrRequestFailed = "API_REQUEST_FAILED"
	// ErrTimeout means the fixed request deadline elapsed.
	ErrTimeout = "API_TIMEOUT"
	// ErrResponseInvalid means the body could not be decoded.
	ErrResponseInvalid = "API_RESPONSE_INVALID"
	// ErrStatus carries a non-success HTTP status.
	ErrStatus = "API_STATUS"

	// ErrAuthDenied is a 401 from any endpoint. The client fires its
	// OnAuthDenied hook before surfacing this code.
	ErrAuthDenied = "AUTH_DENIED"
	// ErrAuthEmptyResult is an empty-array authentication response.
	ErrAuthEmptyResult = "AUTH_EMPTY_RESULT"
	// ErrAuthShapeUnrecognized means the auth response matched none of
	// the known shapes.
	ErrAuthShapeUnrecognized = "AUTH_SHAPE_UNRECOGNIZED"

	// ErrFlightRecordInvalid marks a flight record with no usable
	// identifier or flight number.
	ErrFlightRecordInvalid = "FLIGHT_RECORD_INVALID"
)

// APIError is a typed client error with code and optional HTTP status.
type APIError struct {
	// Code is one of the Err* constants.
	Code string

	// Message is a human-readable description.
	Message string

	// Status is the HTTP status code, or 0 when the failure happened
	// before a response arrived.
	Status int

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Cause != nil && e.Status != 0:
		return fmt.Sprintf("%s (%d): %s: %v", e.Code, e.Status, e.Message, e.Cause)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	case e.Status != 0:
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error { return e.Cause }

// NewError creates an APIError.
func NewError(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// WrapError wraps cause in an APIError.
func WrapError(code, message string, cause error) *APIError {
	return &APIError{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the APIError code of err, or "" when err is not an
// APIError.
func CodeOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}
