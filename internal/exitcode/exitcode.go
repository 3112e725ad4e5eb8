// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"github.com/Iron-Ham/taskroster/internal/config"
	"github.com/Iron-Ham/taskroster/internal/errors"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task id).
	UserError = 1

	// ConfigError indicates missing or invalid configuration.
	ConfigError = 2

	// StoreFailed indicates the store answered a request with an error.
	StoreFailed = 3

	// StoreUnreachable indicates a store request did not complete.
	StoreUnreachable = 4
)

// For returns the exit code for an error returned by a command.
func For(err error) int {
	if err == nil {
		return Success
	}

	var verrs config.ValidationErrors
	if errors.As(err, &verrs) || errors.Is(err, errors.ErrMissingConfig) {
		return ConfigError
	}

	if _, ok := errors.KindOf(err); ok {
		if errors.IsRetryable(err) {
			return StoreUnreachable
		}
		return StoreFailed
	}
	return UserError
}
