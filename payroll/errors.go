/*
errors.go - Error types for the payroll allocator

PURPOSE:
  All allocator error types in one place. The allocator only fails on
  structurally invalid input; valid payroll states (zero-hour rows, no
  overtime, no holiday hours) are never errors.

ERROR CATEGORIES:
  1. Record errors - one malformed row (missing employee, negative hours,
     non-numeric cells at the adapter boundary)
  2. Employee errors - a record error attributed to its owning employee,
     so one employee's bad row never blocks the rest of the batch

USAGE:
  if errors.Is(err, payroll.ErrNegativeHours) { ... }

  var recErr *payroll.RecordError
  if errors.As(err, &recErr) { log.Printf("row %d", recErr.Row) }

SEE ALSO:
  - allocate.go: Produces these errors
  - sheet/reader.go: Produces RecordError for unparseable cells
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingEmployeeID is returned when a record has no employee id.
	ErrMissingEmployeeID = errors.New("missing employee id")

	// ErrNegativeHours is returned when a record carries negative hours.
	ErrNegativeHours = errors.New("negative hours")

	// ErrMalformedHours is returned when an hours cell is not numeric.
	ErrMalformedHours = errors.New("hours not numeric")

	// ErrMalformedDate is returned when a date cell cannot be parsed.
	ErrMalformedDate = errors.New("unparseable date")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RecordError identifies the offending record of a malformed input.
type RecordError struct {
	Row        int
	EmployeeID string
	Field      string
	Value      string
	Cause      error
}

func (e *RecordError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: field %q = %q: %v", e.Row, e.Field, e.Value, e.Cause)
	}
	return fmt.Sprintf("field %q = %q: %v", e.Field, e.Value, e.Cause)
}

func (e *RecordError) Unwrap() error { return e.Cause }

// EmployeeError attributes a record failure to its owning employee.
// Employees are processed independently, so these are collected rather
// than aborting the batch.
type EmployeeError struct {
	EmployeeID string
	Err        error
}

func (e *EmployeeError) Error() string {
	return fmt.Sprintf("employee %q: %v", e.EmployeeID, e.Err)
}

func (e *EmployeeError) Unwrap() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInputError returns true if the error is due to malformed input rather
// than an internal failure.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingEmployeeID) ||
		errors.Is(err, ErrNegativeHours) ||
		errors.Is(err, ErrMalformedHours) ||
		errors.Is(err, ErrMalformedDate)
}
