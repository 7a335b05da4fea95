// internal/core/errors.go
package core

import (
	"errors"
	"fmt"
)

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Predefined errors
var (
	// Snapshot errors
	ErrNoData          = &Error{Code: "NO_DATA", Message: "no analysis data available yet"}
	ErrSnapshotInvalid = &Error{Code: "SNAPSHOT_INVALID", Message: "analysis snapshot could not be parsed"}
	ErrStorageFailed   = &Error{Code: "STORAGE_FAILED", Message: "snapshot source read failed"}

	// Request errors
	ErrBadRequest   = &Error{Code: "BAD_REQUEST", Message: "invalid request parameter"}
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "missing or invalid api key"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
