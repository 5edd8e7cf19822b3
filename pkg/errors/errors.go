// Package errors provides structured error types for svgext.
//
// Most failures while rendering icons are soft: an icon that cannot be
// resolved, validated or parsed renders as the empty string and never
// produces an error. The types here cover the remaining hard failures:
//   - markup that parses but carries no <svg> element (MISSING_ROOT)
//   - invalid command input, configuration or template paths
//   - template parse and execution failures in the render pipeline
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingRoot, "no <svg> element")
//	err = errors.WithSubject(err, "icons/broken.svg")
//	if errors.Terminal(err) {
//	    // abort the render
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidIdentifier Code = "INVALID_IDENTIFIER"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"

	// ErrCodeMissingRoot is raised when markup parses but has no <svg>
	// element. It is the only error the icon functions return.
	ErrCodeMissingRoot Code = "MISSING_ROOT"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeTemplate Code = "TEMPLATE_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	// Subject names the icon, template or file the error is about.
	Subject string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Subject != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Subject)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// WithSubject returns a copy of err's *Error with Subject set. Errors that
// are not an *Error, or already carry a subject, are returned unchanged.
func WithSubject(err error, subject string) error {
	var e *Error
	if !errors.As(err, &e) || e.Subject != "" {
		return err
	}
	cp := *e
	cp.Subject = subject
	return &cp
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Terminal reports whether err must abort template execution rather than
// render as an empty string.
func Terminal(err error) bool {
	return Is(err, ErrCodeMissingRoot)
}
