// internal/core/errors_test.go
package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := &Error{Code: "TEST_ERROR", Message: "test message"}
	if err.Error() != "[TEST_ERROR] test message" {
		t.Errorf("unexpected error string: %s", err.Error())
	}

	withCause := WrapError(ErrStorageFailed, errors.New("disk gone"))
	if withCause.Error() != "[STORAGE_FAILED] snapshot source read failed: disk gone" {
		t.Errorf("unexpected error string: %s", withCause.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{Code: "WRAP", Message: "wrapped", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should return cause")
	}
}

func TestError_Is(t *testing.T) {
	if !errors.Is(ErrNoData, ErrNoData) {
		t.Error("same error should match")
	}
	if errors.Is(ErrNoData, ErrSnapshotInvalid) {
		t.Error("different codes should not match")
	}

	// Matching by code survives fmt wrapping.
	wrapped := fmt.Errorf("loading: %w", WrapError(ErrSnapshotInvalid, errors.New("bad json")))
	if !errors.Is(wrapped, ErrSnapshotInvalid) {
		t.Error("expected wrapped error to match by code")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original")
	wrapped := WrapError(ErrStorageFailed, cause)
	if wrapped.Cause != cause {
		t.Error("cause not set")
	}
	if wrapped.Code != ErrStorageFailed.Code {
		t.Error("code not preserved")
	}
	if ErrStorageFailed.Cause != nil {
		t.Error("base error must not be mutated")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("x"), ""},
		{"direct", ErrNoData, "NO_DATA"},
		{"wrapped", fmt.Errorf("ctx: %w", WrapError(ErrConfigInvalid, nil)), "CONFIG_INVALID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
