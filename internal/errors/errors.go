// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// Errors describing failures while talking to the remote marketplace API.
var (
	// ErrAuth indicates the configured client credentials were rejected by the
	// remote. This is a configuration error and is never retried.
	ErrAuth = errors.New("authentication rejected")

	// ErrAuthExpired indicates the remote answered 401 for a request that
	// carried a token believed to be valid. The gateway invalidates the cached
	// token and retries once before surfacing this error.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrRateLimited indicates the remote answered 429. Callers must back off
	// and must not retry within the same polling cycle.
	ErrRateLimited = errors.New("rate limited")

	// ErrTransient indicates a 5xx response or a network failure that survived
	// the bounded retry budget. The next polling cycle retries naturally.
	ErrTransient = errors.New("transient remote failure")
)

// ErrInvalidTransition indicates a direct order action was invoked from a
// status that has no edge for it in the order lifecycle graph.
var ErrInvalidTransition = errors.New("invalid status transition")

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
