/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements attendance.RosterProvider and attendance.RecordStore using
  SQLite. In production the same patterns apply to PostgreSQL - only minor
  SQL dialect differences.

KEY TABLES:
  workers:            Roster entries with assigned schedules
  attendance_records: Raw attendance records, one per (worker_id, date)

IDEMPOTENT UPSERTS:
  attendance_records carries UNIQUE(worker_id, date); UpsertRecord uses
  ON CONFLICT DO UPDATE, so repeated or overlapping bulk-mark submissions
  converge rather than conflict. No per-worker locking is required above
  this store.

SEED-DATA FILTER:
  GetActiveWorkers excludes disabled workers and rows whose created_by or
  code field carries the demo marker, so non-production seed data never
  reaches a reconciliation.

WAL MODE:
  SQLite is opened with WAL for better concurrency: readers don't block,
  single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/attendance.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - attendance/store.go: Interface definitions
  - attendance/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/calendar"
)

// Store implements the storage interfaces using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		morning_in TEXT,
		morning_out TEXT,
		afternoon_in TEXT,
		afternoon_out TEXT,
		active INTEGER NOT NULL DEFAULT 1,
		created_by TEXT NOT NULL DEFAULT '',
		code TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	-- One record per worker per date; the upsert contract hangs on this.
	CREATE TABLE IF NOT EXISTS attendance_records (
		id TEXT PRIMARY KEY,
		worker_id TEXT NOT NULL,
		date TEXT NOT NULL,
		morning_in TEXT,
		morning_out TEXT,
		afternoon_in TEXT,
		afternoon_out TEXT,
		mark_type TEXT NOT NULL DEFAULT '',
		record_state TEXT NOT NULL DEFAULT '',
		delay_minutes INTEGER NOT NULL DEFAULT 0,
		justified INTEGER NOT NULL DEFAULT 0,
		justification_reason TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		hours_worked TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(worker_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_records_date
		ON attendance_records(date);
	CREATE INDEX IF NOT EXISTS idx_records_worker_date
		ON attendance_records(worker_id, date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ROSTER PROVIDER
// =============================================================================

// SaveWorker inserts or updates a roster entry.
func (s *Store) SaveWorker(ctx context.Context, w attendance.WorkerRef) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workers (id, name, morning_in, morning_out, afternoon_in, afternoon_out, active, created_by, code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			morning_in = excluded.morning_in,
			morning_out = excluded.morning_out,
			afternoon_in = excluded.afternoon_in,
			afternoon_out = excluded.afternoon_out,
			active = excluded.active,
			created_by = excluded.created_by,
			code = excluded.code`,
		w.ID, w.Name,
		w.Schedule.MorningIn, w.Schedule.MorningOut,
		w.Schedule.AfternoonIn, w.Schedule.AfternoonOut,
		boolToInt(w.Active), w.CreatedBy, w.Code,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetActiveWorkers returns the active roster, excluding demo seed rows.
func (s *Store) GetActiveWorkers(ctx context.Context) ([]attendance.WorkerRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, morning_in, morning_out, afternoon_in, afternoon_out, active, created_by, code
		FROM workers
		WHERE active = 1
		  AND LOWER(created_by) NOT LIKE '%' || ? || '%'
		  AND LOWER(code) NOT LIKE '%' || ? || '%'
		ORDER BY id`,
		attendance.DemoMarker, attendance.DemoMarker)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []attendance.WorkerRef
	for rows.Next() {
		var w attendance.WorkerRef
		var morningIn, morningOut, afternoonIn, afternoonOut sql.NullString
		var active int
		if err := rows.Scan(&w.ID, &w.Name, &morningIn, &morningOut, &afternoonIn, &afternoonOut, &active, &w.CreatedBy, &w.Code); err != nil {
			return nil, err
		}
		w.Schedule = attendance.Schedule{
			MorningIn:    nullableString(morningIn),
			MorningOut:   nullableString(morningOut),
			AfternoonIn:  nullableString(afternoonIn),
			AfternoonOut: nullableString(afternoonOut),
		}
		w.Active = active != 0
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

// =============================================================================
// RECORD STORE
// =============================================================================

func (s *Store) GetRecordsForDate(ctx context.Context, date calendar.Date) ([]attendance.RawAttendanceRecord, error) {
	return s.queryRecords(ctx, `date = ?`, date.String())
}

func (s *Store) GetRecordsForWorkerRange(ctx context.Context, workerID string, from, to calendar.Date) ([]attendance.RawAttendanceRecord, error) {
	return s.queryRecords(ctx, `worker_id = ? AND date >= ? AND date <= ?`,
		workerID, from.String(), to.String())
}

func (s *Store) queryRecords(ctx context.Context, where string, args ...any) ([]attendance.RawAttendanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, worker_id, date, morning_in, morning_out, afternoon_in, afternoon_out,
		       mark_type, record_state, delay_minutes, justified, justification_reason, notes, hours_worked
		FROM attendance_records
		WHERE `+where+`
		ORDER BY date, worker_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []attendance.RawAttendanceRecord
	for rows.Next() {
		var r attendance.RawAttendanceRecord
		var dateStr string
		var morningIn, morningOut, afternoonIn, afternoonOut sql.NullString
		var justified int
		if err := rows.Scan(&r.ID, &r.WorkerID, &dateStr,
			&morningIn, &morningOut, &afternoonIn, &afternoonOut,
			&r.MarkType, &r.RecordState, &r.DelayMinutes, &justified,
			&r.JustificationReason, &r.Notes, &r.HoursWorked); err != nil {
			return nil, err
		}
		date, err := calendar.ParseDate(dateStr)
		if err != nil {
			// A malformed stored date degrades that record, not the query.
			continue
		}
		r.Date = date
		r.MorningIn = nullableString(morningIn)
		r.MorningOut = nullableString(morningOut)
		r.AfternoonIn = nullableString(afternoonIn)
		r.AfternoonOut = nullableString(afternoonOut)
		r.Justified = justified != 0
		records = append(records, r)
	}
	return records, rows.Err()
}

// UpsertRecord writes a record, replacing any existing one for the same
// (worker_id, date).
func (s *Store) UpsertRecord(ctx context.Context, rec attendance.RawAttendanceRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance_records
			(id, worker_id, date, morning_in, morning_out, afternoon_in, afternoon_out,
			 mark_type, record_state, delay_minutes, justified, justification_reason, notes, hours_worked,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(worker_id, date) DO UPDATE SET
			morning_in = excluded.morning_in,
			morning_out = excluded.morning_out,
			afternoon_in = excluded.afternoon_in,
			afternoon_out = excluded.afternoon_out,
			mark_type = excluded.mark_type,
			record_state = excluded.record_state,
			delay_minutes = excluded.delay_minutes,
			justified = excluded.justified,
			justification_reason = excluded.justification_reason,
			notes = excluded.notes,
			hours_worked = excluded.hours_worked,
			updated_at = excluded.updated_at`,
		rec.ID, rec.WorkerID, rec.Date.String(),
		rec.MorningIn, rec.MorningOut, rec.AfternoonIn, rec.AfternoonOut,
		string(rec.MarkType), string(rec.RecordState),
		rec.DelayMinutes, boolToInt(rec.Justified),
		rec.JustificationReason, rec.Notes, rec.HoursWorked,
		now, now)
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var (
	_ attendance.RosterProvider = (*Store)(nil)
	_ attendance.RecordStore    = (*Store)(nil)
)
