// Package errors provides custom error types for the fabricsync system.
// These errors enable programmatic error checking across the reconciliation
// engine, the controller client, and the CLI.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the fabricsync system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthentication indicates a controller authentication failure
	ErrAuthentication = errors.New("authentication failed")

	// ErrNotAuthenticated indicates a query was attempted without a session
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrBlueprintNotFound indicates the controller has no such blueprint
	ErrBlueprintNotFound = errors.New("blueprint not found")

	// ErrInvalidQuery indicates the controller rejected the graph query
	ErrInvalidQuery = errors.New("invalid query")

	// ErrFetchFailed indicates a connectivity fetch failed as a whole;
	// the entry collection is left untouched
	ErrFetchFailed = errors.New("fetch failed")

	// ErrSuperseded indicates a fetch result arrived after a newer pass
	// or fetch had started and was discarded
	ErrSuperseded = errors.New("superseded")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// AuthenticationError represents a controller authentication failure.
type AuthenticationError struct {
	Endpoint string
	Message  string
	Err      error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("authentication error at %s: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("authentication error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(endpoint, message string, err error) *AuthenticationError {
	return &AuthenticationError{Endpoint: endpoint, Message: message, Err: err}
}

// QueryError represents a failed controller query.
type QueryError struct {
	Blueprint  string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *QueryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("query error for blueprint %s (status %d): %s", e.Blueprint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("query error for blueprint %s: %s", e.Blueprint, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *QueryError) Is(target error) bool {
	switch e.StatusCode {
	case 404:
		return target == ErrBlueprintNotFound || target == ErrFetchFailed
	case 401:
		return target == ErrAuthentication || target == ErrFetchFailed
	case 422:
		return target == ErrInvalidQuery || target == ErrFetchFailed
	}
	return target == ErrFetchFailed
}

// NewQueryError creates a new QueryError
func NewQueryError(blueprint string, statusCode int, message string, err error) *QueryError {
	return &QueryError{
		Blueprint:  blueprint,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// ValidationError represents a validation failure on an input record.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ParseError represents an error when parsing input documents.
type ParseError struct {
	Format  string // "csv", "yaml", "json"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations.
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Helper functions for error checking

// IsFetchFailed checks if an error is any total fetch failure
func IsFetchFailed(err error) bool {
	return errors.Is(err, ErrFetchFailed)
}

// IsSuperseded checks if an error marks a discarded stale fetch
func IsSuperseded(err error) bool {
	return errors.Is(err, ErrSuperseded)
}

// IsAuthentication checks if an error is an authentication error
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
