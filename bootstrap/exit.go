package bootstrap

import (
	apperrors "github.com/kbukum/gollama/errors"
)

// Process exit codes.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitPortUnavailable   = 2
	ExitContextGeneration = 3
	ExitRuntimeStart      = 4
)

// ExitCode maps a launch error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case apperrors.HasCode(err, apperrors.ErrCodePortUnavailable):
		return ExitPortUnavailable
	case apperrors.HasCode(err, apperrors.ErrCodeContextGeneration):
		return ExitContextGeneration
	case apperrors.HasCode(err, apperrors.ErrCodeRuntimeStart):
		return ExitRuntimeStart
	default:
		return ExitFailure
	}
}
