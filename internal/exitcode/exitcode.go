// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"
	"net/http"

	"ntask/internal/config"
	"ntask/internal/service"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid task, bad reference).
	UserError = 1

	// AuthError indicates missing settings or a rejected token.
	AuthError = 2

	// BackendError indicates a store, schema, LLM or network error.
	BackendError = 3
)

// FromError maps an operation error to an exit code.
func FromError(err error) int {
	if err == nil {
		return Success
	}
	var invalid *service.InvalidTaskError
	if errors.As(err, &invalid) {
		return UserError
	}
	if errors.Is(err, config.ErrMissingSetting) {
		return AuthError
	}
	switch service.StatusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return AuthError
	}
	return BackendError
}
