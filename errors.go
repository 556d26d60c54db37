package cashflow

import "errors"

// Error kinds returned by the engine. Every returned error wraps exactly one
// of them, so callers classify with errors.Is.
var (
	// ErrInvalidInput is returned when an argument is malformed: negative or
	// over-scaled amounts, bad counts, impossible days, unknown frequencies.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInconsistentState is returned when an operation does not apply to
	// the current state of a record, like settling a reconciled transaction.
	ErrInconsistentState = errors.New("inconsistent state")
	// ErrNotFound is returned when a referenced identifier does not exist.
	ErrNotFound = errors.New("not found")
)
