package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/kbukum/gollama/errors"
)

// IsBusyError reports whether SQLite rejected the statement because the
// database was locked by another connection.
func IsBusyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	for _, p := range []string{"database is locked", "database table is locked", "sqlite_busy"} {
		if strings.Contains(errStr, p) {
			return true
		}
	}
	return false
}

// IsConstraintError reports a UNIQUE, FOREIGN KEY, NOT NULL or CHECK violation.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "constraint failed")
}

// FromDatabase converts a driver error from op into an AppError with code
// DATABASE_ERROR. Only lock contention is marked retryable.
func FromDatabase(op string, err error) *apperrors.AppError {
	if err == nil {
		return nil
	}
	appErr := apperrors.Database(op, err)
	appErr.Retryable = IsBusyError(err)
	if IsConstraintError(err) {
		appErr.WithDetail("constraint", true)
	}
	return appErr
}
