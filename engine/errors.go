/*
errors.go - Centralized error types for the statement engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Statement packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Request errors - Malformed periods or inputs, rejected before any fetch
  2. Source errors - The record collaborator could not be reached
  3. Validation outcomes - NOT errors: a statement that fails its accounting
     identity is a normal result carried in Statement.Validation

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, engine.ErrSourceUnavailable) {
        // render retryable banner
    }

SEE ALSO:
  - validate.go: ValidationResult (not an error)
  - records/source.go: Wraps ErrSourceUnavailable with the failing source
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPeriod is returned when a reporting window is malformed
	// (end before start, or a missing date). Rejected before any fetch.
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrSourceUnavailable is returned when the record source cannot be
	// reached. Surfaced to the caller unchanged; the engine never retries.
	ErrSourceUnavailable = errors.New("record source unavailable")

	// ErrUnknownSourceType is returned for a fetch of a source type the
	// store does not recognize.
	ErrUnknownSourceType = errors.New("unknown source type")

	// ErrInvalidCurrency is returned when a request carries an empty or
	// malformed currency code.
	ErrInvalidCurrency = errors.New("invalid currency code")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// SourceError reports which source type failed during a snapshot fetch.
type SourceError struct {
	SourceType string
	Err        error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.SourceType, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidCurrency) ||
		errors.Is(err, ErrUnknownSourceType)
}

// IsRetryable returns true if the error might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}
