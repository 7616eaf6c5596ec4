// Package errs defines the typed error kinds raised by bam's core:
// config/index/build/serve failures at startup, and the request-level
// NotFound signal that never leaves internal/lookup as a process error.
package errs

import "errors"

// Code categorizes a baseError programmatically, so cmd/bam can map it
// to an exit status without parsing message text.
type Code string

const (
	// ConfigError: bad CLI arguments, missing/empty data file, mmap failure.
	ConfigError Code = "CONFIG"

	// IndexError: index file present but unreadable, wrong magic, short
	// read, corrupt MPH payload, or inconsistent N.
	IndexError Code = "INDEX"

	// BuildError: MPH construction refused the key set (e.g. duplicate
	// keys), or zero records found during the build scan.
	BuildError Code = "BUILD"

	// ServeError: HTTP server failed to bind or start.
	ServeError Code = "SERVE"

	// NotFound: request-level only. internal/httpapi turns this into a
	// 404; it never propagates past internal/lookup as a process error.
	NotFound Code = "NOT_FOUND"
)

// baseError wraps an underlying cause with a Code and a user-facing
// message, following the wrap-with-code pattern.
type baseError struct {
	cause   error
	message string
	code    Code
}

// New creates a baseError with the given code and message, optionally
// wrapping cause (nil is fine for errors with no underlying cause).
func New(code Code, cause error, msg string) error {
	return &baseError{cause: cause, code: code, message: msg}
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *baseError) Unwrap() error { return e.cause }

func (e *baseError) Code() Code { return e.code }

// CodeOf returns the Code carried by err, or "" if err does not carry
// one of bam's typed errors.
func CodeOf(err error) Code {
	var be *baseError
	if errors.As(err, &be) {
		return be.code
	}
	return ""
}
