// Package errors provides standardized domain errors with codes for the
// catalog generator.
//
// Usage:
//
//	// In pipeline components - return typed errors
//	if duplicate {
//	    return errors.Duplicatef("duplicate bike id %q", id)
//	}
//
//	// In the CLI - check with errors.Is or map to an exit code
//	if errors.Is(err, errors.ErrInvalidSpec) {
//	    os.Exit(errors.ExitCode(err))
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the generator.
const (
	CodeInvalidSpec Code = "INVALID_SPEC"
	CodeDuplicate   Code = "DUPLICATE"
	CodeInput       Code = "INPUT"
	CodeOutput      Code = "OUTPUT"
	CodeInternal    Code = "INTERNAL"
)

// ExitCode returns the process exit code for an error code.
// The generator is a build tool, so codes map to exit statuses
// rather than HTTP statuses.
func (c Code) ExitCode() int {
	switch c {
	case CodeInvalidSpec:
		return 2
	case CodeDuplicate:
		return 3
	case CodeInput:
		return 4
	case CodeOutput:
		return 5
	default:
		return 1
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// ExitCode returns the process exit code for this error.
func (e *Error) ExitCode() int {
	return e.Code.ExitCode()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrInvalidSpec = &Error{Code: CodeInvalidSpec, Message: "invalid spec"}
	ErrDuplicate   = &Error{Code: CodeDuplicate, Message: "duplicate"}
	ErrInput       = &Error{Code: CodeInput, Message: "input error"}
	ErrOutput      = &Error{Code: CodeOutput, Message: "output error"}
	ErrInternal    = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// InvalidSpec creates an invalid spec error.
func InvalidSpec(msg string) *Error {
	return &Error{Code: CodeInvalidSpec, Message: msg}
}

// InvalidSpecf creates an invalid spec error with formatted message.
func InvalidSpecf(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidSpec, Message: fmt.Sprintf(format, args...)}
}

// Duplicate creates a duplicate error.
func Duplicate(msg string) *Error {
	return &Error{Code: CodeDuplicate, Message: msg}
}

// Duplicatef creates a duplicate error with formatted message.
func Duplicatef(format string, args ...any) *Error {
	return &Error{Code: CodeDuplicate, Message: fmt.Sprintf(format, args...)}
}

// Input creates an input error.
func Input(msg string) *Error {
	return &Error{Code: CodeInput, Message: msg}
}

// Inputf creates an input error with formatted message.
func Inputf(format string, args ...any) *Error {
	return &Error{Code: CodeInput, Message: fmt.Sprintf(format, args...)}
}

// Output creates an output error.
func Output(msg string) *Error {
	return &Error{Code: CodeOutput, Message: msg}
}

// Outputf creates an output error with formatted message.
func Outputf(format string, args ...any) *Error {
	return &Error{Code: CodeOutput, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// ExitCode maps any error to a process exit code. Domain errors carry their
// own mapping; everything else is a generic failure.
func ExitCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return 1
}
