/*
Package attendance implements the attendance reconciliation and aggregation
engine.

PURPOSE:
  Turns sparse, inconsistently-shaped raw attendance records into a complete,
  internally-consistent view of who was present, late, absent, on leave, etc.,
  and recomputes statistics from that reconstructed view.

KEY CONCEPTS IN THIS FILE (types.go):
  - WorkerRef:           Roster entry with assigned schedule
  - RawAttendanceRecord: A record as the backend stores it, warts and all
  - EffectiveStatus:     The single resolved attendance category
  - DailyEntry:          One reconciled unit per worker per date
  - MonthlyDayEntry:     One reconciled unit per calendar day of a month
  - DailySummary / MonthlyStatistics: Derived aggregates, never stored

DESIGN PRINCIPLES:
  1. Totality: every record, however incomplete, resolves to exactly one status
  2. Completeness: one entry per active worker (daily), one per day (monthly)
  3. Roster wins: the roster is the source of truth for assigned schedules,
     the record for recorded/actual times
  4. Precision: percentages and hour sums use decimal.Decimal, 2 places

SEE ALSO:
  - classify.go:  Status precedence rules
  - daily.go:     Daily reconciliation and summary
  - monthly.go:   Monthly reconstruction and statistics
  - normalize.go: Ingestion-boundary field normalization
*/
package attendance

import (
	"github.com/warp/attendance-engine/calendar"
)

// =============================================================================
// EFFECTIVE STATUS - The resolved attendance category
// =============================================================================

// EffectiveStatus is the single attendance category a record resolves to.
type EffectiveStatus string

const (
	StatusPresent    EffectiveStatus = "Present"
	StatusLate       EffectiveStatus = "Late"
	StatusAbsent     EffectiveStatus = "Absent"
	StatusPermission EffectiveStatus = "Permission"
	StatusLeave      EffectiveStatus = "Leave"
	StatusVacation   EffectiveStatus = "Vacation"
	StatusCommission EffectiveStatus = "Commission"

	// StatusNoRecord marks a non-working day with no record in the monthly
	// view. It is excluded from every percentage numerator.
	StatusNoRecord EffectiveStatus = "NoRecord"
)

// =============================================================================
// MARK TYPE / RECORD STATE - The two status-bearing source fields
// =============================================================================

// MarkType says how (or as what) a mark was made. Manual, Biometric and
// System describe the marking method, not a status; the remaining values are
// status-bearing. Empty means the field was absent on the source record.
type MarkType string

const (
	MarkManual     MarkType = "Manual"
	MarkBiometric  MarkType = "Biometric"
	MarkSystem     MarkType = "System"
	MarkPresent    MarkType = "Present"
	MarkLate       MarkType = "Late"
	MarkAbsent     MarkType = "Absent"
	MarkPermission MarkType = "Permission"
	MarkLeave      MarkType = "Leave"
	MarkVacation   MarkType = "Vacation"
	MarkCommission MarkType = "Commission"
)

// RecordState is the record's workflow/state field. Empty means absent.
type RecordState string

const (
	StatePresent    RecordState = "Present"
	StateLate       RecordState = "Late"
	StateAbsent     RecordState = "Absent"
	StatePermission RecordState = "Permission"
	StateLeave      RecordState = "Leave"
	StateVacation   RecordState = "Vacation"
	StateCommission RecordState = "Commission"
	StateValidated  RecordState = "Validated"
	StatePending    RecordState = "Pending"
	StateObserved   RecordState = "Observed"
	StateVoided     RecordState = "Voided"
)

// =============================================================================
// SCHEDULE - Four nullable time-of-day points
// =============================================================================

// Schedule holds the four assigned time-of-day points of a worker's shift.
// Nil means the point is not assigned.
type Schedule struct {
	MorningIn    *string
	MorningOut   *string
	AfternoonIn  *string
	AfternoonOut *string
}

// =============================================================================
// WORKER REF - Roster entry (read-only to this engine)
// =============================================================================

// WorkerRef identifies an active worker and their assigned schedule.
// Owned by the roster provider.
type WorkerRef struct {
	ID       string
	Name     string
	Schedule Schedule
	Active   bool

	// CreatedBy and Code drive the seed-data filter in roster providers:
	// entries matching the demo marker are excluded from the active roster.
	CreatedBy string
	Code      string
}

// =============================================================================
// RAW ATTENDANCE RECORD - As stored, immutable from this engine's view
// =============================================================================

// RawAttendanceRecord is an attendance record as the store returns it.
// Every optional field is nullable; the date is a plain calendar date with
// no time-zone ambiguity.
type RawAttendanceRecord struct {
	ID       string
	Date     calendar.Date
	WorkerID string

	// Recorded (actual) time points. Nil means not recorded; a recorded
	// value may still equal the "no time" sentinel.
	MorningIn    *string
	MorningOut   *string
	AfternoonIn  *string
	AfternoonOut *string

	MarkType    MarkType    // "" when absent
	RecordState RecordState // "" when absent

	DelayMinutes        int
	Justified           bool
	JustificationReason string
	Notes               string

	// HoursWorked may be a bare numeral or a numeric-bearing string with a
	// unit suffix ("7.00h"). Parsed via ParseHours; unparseable defaults 0.
	HoursWorked string
}

// =============================================================================
// DAILY ENTRY - One reconciled unit per worker per date
// =============================================================================

// DailyEntry is the reconciled daily unit. For a given date there is exactly
// one entry per active worker: real when a record matched, synthetic
// otherwise.
type DailyEntry struct {
	Date       calendar.Date
	WorkerID   string
	WorkerName string

	// Assigned schedule, refreshed from the roster snapshot on every
	// reconciliation. The roster is the source of truth here.
	Assigned Schedule

	// Recorded times from the raw record; all nil on synthetic entries.
	MorningIn    *string
	MorningOut   *string
	AfternoonIn  *string
	AfternoonOut *string

	MarkType    MarkType
	RecordState RecordState

	DelayMinutes        int
	Justified           bool
	JustificationReason string
	Notes               string
	HoursWorked         string

	Status      EffectiveStatus
	IsSynthetic bool
}

// =============================================================================
// DAILY SUMMARY - Derived, recomputed on every reconciliation
// =============================================================================

type DailySummary struct {
	Date       calendar.Date
	Present    int
	Late       int
	Absent     int
	Permission int
	Leave      int
	Vacation   int
	Commission int

	Total int

	// (Present+Late+Commission)/Total, 2 decimals, 0 when Total is 0.
	AttendancePercentage float64
}

// =============================================================================
// MONTHLY DAY ENTRY - One reconciled unit per calendar day
// =============================================================================

// MonthlyDayEntry is one day of a worker's reconstructed month. For a given
// worker and month there is exactly one entry per calendar day, day 1 through
// the month's last day.
type MonthlyDayEntry struct {
	Date   calendar.Date
	Status EffectiveStatus

	MorningIn    *string
	MorningOut   *string
	AfternoonIn  *string
	AfternoonOut *string

	HoursWorked   float64
	DelayMinutes  int
	Notes         string
	Justification string

	// Weekend flag. Deliberately weekday-based only; holiday awareness is
	// the Calculator's job, not this view's.
	IsNonWorkingDay bool

	IsSynthetic bool
}

// =============================================================================
// MONTHLY STATISTICS - Derived from the finalized day series
// =============================================================================

type MonthlyStatistics struct {
	WorkerID string

	DaysPresent    int
	DaysLate       int
	DaysAbsent     int
	DaysPermission int
	DaysLeave      int

	TotalHoursWorked float64

	// Count of Monday-Friday entries in the month.
	BusinessDays int

	// Both capped at 100, both 0 when BusinessDays is 0.
	AttendancePercentage  float64
	PunctualityPercentage float64
}
