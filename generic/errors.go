/*
errors.go - Centralized error types for the reference-table engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Calculator packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Input errors - Bad dates, bad amounts, inverted periods
  2. Data errors - Missing or empty reference tables
  3. Store errors - Persistence failures (wrapped by the store)

POLICY:
  Lookups never fail because a date falls outside a table: they clamp.
  Errors are reserved for input the calculators cannot interpret.

USAGE:
  if errors.Is(err, generic.ErrInvalidInput) {
      // 400 Bad Request
  }

SEE ALSO:
  - api/handlers.go: Maps these errors to HTTP status codes
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrInvalidInput is returned when calculator input is outside its domain.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTableNotFound is returned when a named reference table does not exist.
	ErrTableNotFound = errors.New("reference table not found")

	// ErrEmptyTable is returned when a reference table has no usable rows.
	ErrEmptyTable = errors.New("reference table is empty")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError names the offending input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid builds a ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsNotFound returns true if the error indicates a missing resource.
// A calculation that needs a table with no rows counts as one.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTableNotFound) ||
		errors.Is(err, ErrEmptyTable)
}
