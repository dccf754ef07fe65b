/*
store.go - Read/write interfaces between the engine and its backends

The engine consumes two read interfaces: the roster provider (who is active
today) and the attendance record store (what was recorded). Writes exist only
for the bulk mark operations and the explicit record upsert; both are
idempotent upserts keyed by (workerID, date), so repeated or overlapping
submissions converge rather than conflict.

IMPLEMENTATIONS:
  - store/memory.go:        In-memory, for tests and dev mode
  - store/sqlite/sqlite.go: SQLite-backed production store
*/
package attendance

import (
	"context"

	"github.com/warp/attendance-engine/calendar"
)

// RosterProvider supplies the current active-worker snapshot.
// Implementations must exclude disabled workers and non-production seed rows
// (entries whose creator or code field matches the demo marker).
type RosterProvider interface {
	GetActiveWorkers(ctx context.Context) ([]WorkerRef, error)
}

// RecordStore supplies and accepts raw attendance records.
type RecordStore interface {
	// GetRecordsForDate returns all records for one calendar date.
	GetRecordsForDate(ctx context.Context, date calendar.Date) ([]RawAttendanceRecord, error)

	// GetRecordsForWorkerRange returns one worker's records in [from, to].
	// When a backend cannot serve range queries, implementations may return
	// ErrRecordsUnavailable; callers fall back to per-day queries.
	GetRecordsForWorkerRange(ctx context.Context, workerID string, from, to calendar.Date) ([]RawAttendanceRecord, error)

	// UpsertRecord writes a record, replacing any existing record for the
	// same (workerID, date). Idempotent.
	UpsertRecord(ctx context.Context, rec RawAttendanceRecord) error
}

// DemoMarker flags non-production seed data in roster sources. Workers whose
// creator or code contains it never reach the active roster.
const DemoMarker = "demo"
