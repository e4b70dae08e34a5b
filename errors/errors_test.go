package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad query")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidInput, err.Code)
	}
	if err.Message != "bad query" {
		t.Errorf("expected message 'bad query', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("INVALID_INPUT should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeDatabaseError, "locked")
	if !err.Retryable {
		t.Error("DATABASE_ERROR should be retryable")
	}
}

func TestAppError_PortUnavailable(t *testing.T) {
	cause := fmt.Errorf("range exhausted")
	err := PortUnavailable(cause)
	if err.Code != ErrCodePortUnavailable {
		t.Errorf("expected PORT_UNAVAILABLE, got %s", err.Code)
	}
	if err.Retryable {
		t.Error("port exhaustion is fatal and must not be retryable")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable through errors.Is")
	}
}

func TestAppError_DatabaseNotLoaded(t *testing.T) {
	err := DatabaseNotLoaded("sqlite:app.db")
	if err.Details["db"] != "sqlite:app.db" {
		t.Errorf("expected db detail, got %v", err.Details["db"])
	}
	if !strings.Contains(err.Error(), "sqlite:app.db") {
		t.Errorf("expected db in message, got %q", err.Error())
	}
}

func TestAppError_InvalidInput_EmptyField(t *testing.T) {
	err := InvalidInput("", "query is required")
	if _, ok := err.Details["field"]; ok {
		t.Error("expected no 'field' key in details when field is empty")
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := Internal(nil).WithDetails(map[string]any{"a": 1})
	err.WithDetails(map[string]any{"b": 2})
	if err.Details["a"] != 1 || err.Details["b"] != 2 {
		t.Errorf("expected merged details, got %v", err.Details)
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{Code: ErrCodeInternal}
	err.WithDetail("k", "v")
	if err.Details["k"] != "v" {
		t.Errorf("expected k=v, got %v", err.Details)
	}
}

func TestAppError_Error_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{"no cause", New(ErrCodeInternal, "boom"), "INTERNAL_ERROR: boom"},
		{"with cause", RuntimeStart(fmt.Errorf("no display")), "RUNTIME_START: error while running application (cause: no display)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"port", PortUnavailable(nil), ErrCodePortUnavailable},
		{"context", ContextGeneration("bad manifest", nil), ErrCodeContextGeneration},
		{"runtime", RuntimeStart(nil), ErrCodeRuntimeStart},
		{"not loaded", DatabaseNotLoaded("x"), ErrCodeDatabaseNotLoaded},
		{"database", Database("select", nil), ErrCodeDatabaseError},
		{"invalid", InvalidInput("db", "empty"), ErrCodeInvalidInput},
		{"validation", Validation("nope"), ErrCodeInvalidInput},
		{"internal", Internal(nil), ErrCodeInternal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected %s, got %s", tc.code, tc.err.Code)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("launch: %w", ContextGeneration("manifest", nil))
	if !HasCode(wrapped, ErrCodeContextGeneration) {
		t.Error("expected HasCode to see through wrapping")
	}
	if HasCode(wrapped, ErrCodeRuntimeStart) {
		t.Error("expected HasCode to reject a different code")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("expected HasCode false for a plain error")
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	err := DatabaseNotLoaded("sqlite:a.db")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeDatabaseNotLoaded {
		t.Errorf("expected code in response, got %s", resp.Error.Code)
	}
	if resp.Error.Details["db"] != "sqlite:a.db" {
		t.Errorf("expected details in response, got %v", resp.Error.Details)
	}
}

func TestAppError_AsAppError_Success(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", Internal(nil))
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR AppError, got %v %v", appErr, ok)
	}
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected plain error not to convert")
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError true")
	}
}

func TestAppError_ImplementsErrorInterface(t *testing.T) {
	var _ error = (*AppError)(nil)
}
