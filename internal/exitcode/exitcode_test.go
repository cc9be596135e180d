package exitcode

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/skyreserve/skyreserve/internal/api"
	"github.com/skyreserve/skyreserve/internal/session"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error returns success",
			err:      nil,
			expected: Success,
		},
		{
			name:     "rejected credentials",
			err:      session.NewError(session.ErrAuthFailed, "authentication failed"),
			expected: AuthError,
		},
		{
			name:     "missing login input",
			err:      session.NewError(session.ErrAuthMissingInput, "email and password are required"),
			expected: AuthError,
		},
		{
			name:     "incomplete registration profile",
			err:      session.NewError(session.ErrRegistrationIncomplete, "missing fields"),
			expected: UsageError,
		},
		{
			name:     "expired bearer token",
			err:      api.NewError(api.ErrAuthDenied, "authentication rejected"),
			expected: AuthError,
		},
		{
			name:     "backend unreachable",
			err:      api.NewError(api.ErrRequestFailed, "connection refused"),
			expected: NetworkError,
		},
		{
			name:     "request deadline elapsed",
			err:      api.NewError(api.ErrTimeout, "request timed out"),
			expected: NetworkError,
		},
		{
			name:     "signal cancellation",
			err:      context.Canceled,
			expected: Interrupted,
		},
		{
			name:     "generic error",
			err:      errors.New("something went wrong"),
			expected: GeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := DetermineExitCode(tt.err)
			if code != tt.expected {
				t.Errorf("DetermineExitCode(%v) = %d, want %d", tt.err, code, tt.expected)
			}
		})
	}
}

// Typed codes must survive wrapping.
func TestDetermineExitCode_WrappedErrors(t *testing.T) {
	err := fmt.Errorf("login: %w", session.WrapError(session.ErrAuthFailed, "authentication failed",
		api.NewError(api.ErrAuthEmptyResult, "no matching account")))
	if code := DetermineExitCode(err); code != AuthError {
		t.Errorf("DetermineExitCode(wrapped) = %d, want %d", code, AuthError)
	}

	err = fmt.Errorf("search: %w", api.NewError(api.ErrTimeout, "request timed out"))
	if code := DetermineExitCode(err); code != NetworkError {
		t.Errorf("DetermineExitCode(wrapped) = %d, want %d", code, NetworkError)
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{Success, "Success"},
		{GeneralError, "General error"},
		{UsageError, "Usage error (invalid flags or arguments)"},
		{AuthError, "Authentication error"},
		{NetworkError, "Network error"},
		{Interrupted, "Interrupted"},
		{99, "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := GetExitCodeDescription(tt.code)
			if result != tt.expected {
				t.Errorf("GetExitCodeDescription(%d) = %s, want %s", tt.code, result, tt.expected)
			}
		})
	}
}
