/*
errors.go - Centralized error types for the ledger

ERROR CATEGORIES:
  1. Ledger errors - Entry persistence failures
  2. Validation errors - Entries that can never be recorded
  3. Query errors - Periods and granularities that do not fit a series

  Unit-of-time failures (malformed keys, kind mismatches, granularity
  mismatches) pass through unchanged, so errors.Is against the
  unitoftime sentinels keeps working.

USAGE:
  if errors.Is(err, ledger.ErrDuplicateIdempotencyKey) {
      // Already recorded, safe to ignore
  }

SEE ALSO:
  - ledger.go: Uses these errors
  - api/handlers.go: Maps them to HTTP status codes
*/
package ledger

import (
	"errors"
	"fmt"

	"github.com/warp/accounting-time/unitoftime"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrDuplicateIdempotencyKey is returned when an entry with the same
	// idempotency key already exists. This is expected behavior for retries.
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

	// ErrSeriesRequired is returned when an entry names no series.
	ErrSeriesRequired = errors.New("series is required")

	// ErrUnitRequired is returned when an entry carries no unit of time.
	ErrUnitRequired = errors.New("unit of time is required")

	// ErrSeriesKindMismatch is returned when an entry's kind differs from
	// the kind its series already holds.
	ErrSeriesKindMismatch = fmt.Errorf("%w: series holds another kind", unitoftime.ErrKindMismatch)

	// ErrTransactionFailed is returned when entries cannot be persisted.
	ErrTransactionFailed = errors.New("transaction failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// KindMismatchError provides details about an entry rejected by its series.
type KindMismatchError struct {
	Series SeriesID
	Have   unitoftime.Kind
	Got    unitoftime.Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("series %q holds %s units, got %s", e.Series, e.Have, e.Got)
}

func (e *KindMismatchError) Unwrap() error {
	return ErrSeriesKindMismatch
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConflict returns true if the error reports a write that collides with
// existing entries.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateIdempotencyKey) ||
		errors.Is(err, ErrSeriesKindMismatch)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrSeriesRequired) ||
		errors.Is(err, ErrUnitRequired) ||
		errors.Is(err, unitoftime.ErrInvalidArgument) ||
		errors.Is(err, unitoftime.ErrInvalidOperation)
}
