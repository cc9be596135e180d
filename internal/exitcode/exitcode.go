// Package exitcode maps errors to process exit codes.
package exitcode

import (
	"context"
	"errors"

	"github.com/skyreserve/skyreserve/internal/api"
	"github.com/skyreserve/skyreserve/internal/session"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication failure or an expired session
	AuthError = 3

	// NetworkError indicates the reservation backend could not be reached
	NetworkError = 4

	// Interrupted indicates the run was cancelled by a signal
	Interrupted = 130
)

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if errors.Is(err, context.Canceled) {
		return Interrupted
	}

	switch session.CodeOf(err) {
	case session.ErrAuthFailed, session.ErrAuthMissingInput:
		return AuthError
	case session.ErrRegistrationIncomplete:
		return UsageError
	}

	switch api.CodeOf(err) {
	case api.ErrAuthDenied:
		return AuthError
	case api.ErrRequestFailed, api.ErrTimeout:
		return NetworkError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
