package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Bootstrap errors. All of them are fatal to the launch.
const (
	// ErrCodePortUnavailable indicates no unused local port could be found.
	ErrCodePortUnavailable ErrorCode = "PORT_UNAVAILABLE"
	// ErrCodeContextGeneration indicates the application context could not be produced.
	ErrCodeContextGeneration ErrorCode = "CONTEXT_GENERATION"
	// ErrCodeRuntimeStart indicates the runtime or one of its plugins failed to start.
	ErrCodeRuntimeStart ErrorCode = "RUNTIME_START"
)

// Plugin errors, returned to the webview over IPC.
const (
	// ErrCodeDatabaseNotLoaded indicates a query against a database that was never loaded.
	ErrCodeDatabaseNotLoaded ErrorCode = "DATABASE_NOT_LOADED"
	// ErrCodeDatabaseError indicates the database driver rejected an operation.
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeDatabaseError: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Bootstrap codes are never retryable.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
