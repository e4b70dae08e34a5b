package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Bootstrap constructors ---

// PortUnavailable reports that no unused local TCP port could be acquired.
func PortUnavailable(cause error) *AppError {
	return &AppError{
		Code: ErrCodePortUnavailable, Message: "failed to find unused port",
		Cause: cause,
	}
}

// ContextGeneration reports that the application context could not be produced.
func ContextGeneration(reason string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeContextGeneration, Message: reason,
		Cause: cause,
	}
}

// RuntimeStart reports that the application runtime could not be started.
func RuntimeStart(cause error) *AppError {
	return &AppError{
		Code: ErrCodeRuntimeStart, Message: "error while running application",
		Cause: cause,
	}
}

// --- Plugin constructors ---

// DatabaseNotLoaded reports a query against a database that was never loaded.
func DatabaseNotLoaded(db string) *AppError {
	return &AppError{
		Code: ErrCodeDatabaseNotLoaded, Message: fmt.Sprintf("database %s not loaded", db),
		Details: map[string]any{"db": db},
	}
}

// Database wraps a driver error.
func Database(op string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeDatabaseError, Message: fmt.Sprintf("%s failed", op),
		Retryable: true, Cause: cause,
		Details: map[string]any{"operation": op},
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "an unexpected error occurred",
		Cause: cause,
	}
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
