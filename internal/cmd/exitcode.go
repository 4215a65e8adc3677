package cmd

import (
	"context"
	"errors"

	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
)

const (
	ExitOK       = 0
	ExitSystem   = 1
	ExitUser     = 2
	ExitCanceled = 130
)

// ExitCode maps a command error to a stable process exit code for automation.
// Anything caused by the input text or the invocation itself is a user error;
// the rest is a system error.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}

	if clierrors.IsParseError(err) || clierrors.IsEditError(err) ||
		clierrors.IsValidationError(err) || clierrors.IsUserError(err) {
		return ExitUser
	}

	return ExitSystem
}
