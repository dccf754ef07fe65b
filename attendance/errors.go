/*
errors.go - Centralized error types for the attendance engine

ERROR CATEGORIES:
  1. Transport errors - A fetch against roster or record store failed entirely
  2. Data anomalies   - Records that contradict the roster (orphans)
  3. Input errors     - Malformed dates or periods from callers

Degradation policy: nothing in this engine raises a fatal error for a data
anomaly or an unparseable field. Orphans are logged and excluded; unparseable
numerics default to 0. Transport failures trigger the fallback chain in
daily.go / monthly.go.
*/
package attendance

import (
	"errors"
	"fmt"

	"github.com/warp/attendance-engine/calendar"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrOrphanRecord marks a raw record whose workerId is absent from the
	// current roster snapshot. Warning-level: excluded, never merged.
	ErrOrphanRecord = errors.New("record references worker not in roster")

	// ErrRosterUnavailable is returned when the roster provider fails.
	ErrRosterUnavailable = errors.New("roster unavailable")

	// ErrRecordsUnavailable is returned when the record store fails.
	ErrRecordsUnavailable = errors.New("attendance records unavailable")

	// ErrWorkerNotFound is returned when a referenced worker doesn't exist.
	ErrWorkerNotFound = errors.New("worker not found")

	// ErrInvalidPeriod is returned for a malformed month or date range.
	ErrInvalidPeriod = errors.New("invalid period")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// OrphanRecordError identifies the record behind an orphan anomaly.
type OrphanRecordError struct {
	RecordID string
	WorkerID string
	Date     calendar.Date
}

func (e *OrphanRecordError) Error() string {
	return fmt.Sprintf("orphan record %s: worker %s not in roster for %s",
		e.RecordID, e.WorkerID, e.Date)
}

func (e *OrphanRecordError) Unwrap() error { return ErrOrphanRecord }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPeriod)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWorkerNotFound)
}

// IsDegraded returns true for failures the engine absorbs with a fallback
// view rather than surfacing to the caller.
func IsDegraded(err error) bool {
	return errors.Is(err, ErrRosterUnavailable) ||
		errors.Is(err, ErrRecordsUnavailable)
}
