// Package errors defines the coded errors shared by every surface of the
// engine. A Code travels with each error so the CLI can pick an exit style,
// the HTTP layer can pick a status, and tests can assert on failure kind
// without string matching.
//
// The taxonomy in brief: INVALID_* codes mean the caller supplied something
// the core refuses to compute on; EPHEMERIS_UNAVAILABLE and UNSUPPORTED_BODY
// belong to the external lookup contract; the rest are ambient transport and
// internal conditions.
//
//	err := errors.New(errors.ErrCodeInvalidMoment, "day out of range: %d", day)
//	if errors.Is(err, errors.ErrCodeInvalidMoment) {
//	    // ask the caller for a corrected input
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code identifies an error category in machine-readable form.
type Code string

const (
	// Caller-supplied input the core rejects. Recoverable by correcting
	// the input; never retried.
	ErrCodeInvalidMoment Code = "INVALID_MOMENT"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidDate   Code = "INVALID_DATE"
	ErrCodeInvalidTime   Code = "INVALID_TIME"
	ErrCodeInvalidCoords Code = "INVALID_COORDINATES"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidSystem Code = "INVALID_DASHA_SYSTEM"

	// Failures of the external ephemeris contract. Fatal to the current
	// request; the core performs no internal retry.
	ErrCodeEphemeris       Code = "EPHEMERIS_UNAVAILABLE"
	ErrCodeUnsupportedBody Code = "UNSUPPORTED_BODY"

	ErrCodeNotFound Code = "NOT_FOUND"

	// Transport conditions surfaced by the HTTP clients.
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a code, a human-readable message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

// Unwrap exposes the cause to the stdlib errors helpers.
func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error from a code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around cause, keeping it reachable via Unwrap.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the chain of err contains an *Error with the code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in the chain of err, or the
// empty string when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns just the message of the first *Error in the chain,
// without the code prefix or the cause. Plain errors pass through whole.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
