/*
daily.go - Daily reconciliation engine and summary aggregator

RECONCILIATION:
  A roster snapshot and the day's raw records merge into exactly one
  DailyEntry per active worker. Workers without a record get a synthetic
  Absent entry. The roster is the single source of truth for assigned
  schedules on every entry, real or synthetic; the record owns the
  recorded/actual times.

DEGRADATION CHAIN (never an empty view):
  1. Record fetch fails      -> roster-only view, every worker Absent
  2. Roster fetch also fails -> built-in minimal sample roster

ANOMALIES:
  A record whose workerId is not in the roster (orphan) is logged at Warn
  and excluded. It is never merged into an unrelated worker and never fatal.
*/
package attendance

import (
	"context"

	"go.uber.org/zap"

	"github.com/warp/attendance-engine/calendar"
)

// =============================================================================
// DAILY RECONCILER
// =============================================================================

// DailyReconciler combines the roster provider and the record store into the
// complete daily view.
type DailyReconciler struct {
	roster  RosterProvider
	records RecordStore
	log     *zap.Logger
}

func NewDailyReconciler(roster RosterProvider, records RecordStore, log *zap.Logger) *DailyReconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &DailyReconciler{roster: roster, records: records, log: log}
}

// ReconcileDay produces the reconciled entry set and its summary for one
// date. Transport failures degrade to fallback views instead of erroring;
// the returned error is reserved for context cancellation.
func (dr *DailyReconciler) ReconcileDay(ctx context.Context, date calendar.Date) ([]DailyEntry, DailySummary, error) {
	roster, err := dr.roster.GetActiveWorkers(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, DailySummary{}, ctx.Err()
		}
		dr.log.Warn("roster unavailable, using sample roster",
			zap.String("date", date.String()), zap.Error(err))
		roster = SampleRoster()
	}

	records, err := dr.records.GetRecordsForDate(ctx, date)
	if err != nil {
		if ctx.Err() != nil {
			return nil, DailySummary{}, ctx.Err()
		}
		dr.log.Warn("records unavailable, falling back to roster-only view",
			zap.String("date", date.String()), zap.Error(err))
		records = nil
	}

	entries, orphans := BuildDay(date, roster, records)
	for _, o := range orphans {
		dr.log.Warn("orphan attendance record excluded",
			zap.String("record_id", o.RecordID),
			zap.String("worker_id", o.WorkerID),
			zap.String("date", o.Date.String()))
	}

	return entries, Summarize(date, entries, len(roster)), nil
}

// =============================================================================
// RECONCILIATION CORE - Pure merge of roster and records
// =============================================================================

// BuildDay merges a roster snapshot with one date's raw records. The result
// has exactly one entry per roster worker: real entries where a record
// matched, synthetic Absent entries elsewhere. Orphan records are returned
// separately, excluded from the entry set.
func BuildDay(date calendar.Date, roster []WorkerRef, records []RawAttendanceRecord) ([]DailyEntry, []*OrphanRecordError) {
	byWorker := make(map[string]WorkerRef, len(roster))
	for _, w := range roster {
		byWorker[w.ID] = w
	}

	covered := make(map[string]bool, len(records))
	entries := make([]DailyEntry, 0, len(roster))
	var orphans []*OrphanRecordError

	for _, r := range records {
		if !r.Date.Equal(date) {
			continue
		}
		if _, ok := byWorker[r.WorkerID]; !ok {
			orphans = append(orphans, &OrphanRecordError{
				RecordID: r.ID, WorkerID: r.WorkerID, Date: r.Date,
			})
			continue
		}
		if covered[r.WorkerID] {
			// Upserts keyed (workerID, date) make this unreachable in
			// practice; first record wins if a backend violates it.
			continue
		}
		covered[r.WorkerID] = true
		entries = append(entries, entryFromRecord(r))
	}

	for _, w := range roster {
		if covered[w.ID] {
			continue
		}
		entries = append(entries, DailyEntry{
			Date:        date,
			WorkerID:    w.ID,
			WorkerName:  w.Name,
			Status:      StatusAbsent,
			IsSynthetic: true,
		})
	}

	// The roster snapshot overrides whatever schedule was last persisted on
	// the record, on synthetic and real entries alike.
	for i := range entries {
		w := byWorker[entries[i].WorkerID]
		entries[i].Assigned = w.Schedule
		if entries[i].WorkerName == "" {
			entries[i].WorkerName = w.Name
		}
	}

	return entries, orphans
}

func entryFromRecord(r RawAttendanceRecord) DailyEntry {
	return DailyEntry{
		Date:                r.Date,
		WorkerID:            r.WorkerID,
		MorningIn:           r.MorningIn,
		MorningOut:          r.MorningOut,
		AfternoonIn:         r.AfternoonIn,
		AfternoonOut:        r.AfternoonOut,
		MarkType:            r.MarkType,
		RecordState:         r.RecordState,
		DelayMinutes:        r.DelayMinutes,
		Justified:           r.Justified,
		JustificationReason: r.JustificationReason,
		Notes:               r.Notes,
		HoursWorked:         r.HoursWorked,
		Status:              Classify(r),
		IsSynthetic:         false,
	}
}

// =============================================================================
// DAILY SUMMARY AGGREGATOR
// =============================================================================

// Summarize reduces a reconciled entry set into per-status counts and an
// attendance percentage. Counting deliberately re-derives Present (and the
// other buckets) from the raw fields still carried on the entries, not only
// from the already-resolved status: the two paths are not provably
// equivalent for all observed inputs, so both are kept.
func Summarize(date calendar.Date, entries []DailyEntry, rosterSize int) DailySummary {
	s := DailySummary{Date: date}

	for _, e := range entries {
		state := string(e.RecordState)

		if e.Status == StatusPresent ||
			(equalToken(state, string(StateValidated)) && entryAnyTime(e)) ||
			equalToken(state, string(StatePresent)) {
			s.Present++
		}
		if e.Status == StatusLate || equalToken(state, string(StateLate)) {
			s.Late++
		}
		if e.Status == StatusAbsent || equalToken(state, string(StateAbsent)) || !entryAnyTime(e) {
			s.Absent++
		}
		if e.Status == StatusPermission || equalToken(state, string(StatePermission)) {
			s.Permission++
		}
		if e.Status == StatusLeave || equalToken(state, string(StateLeave)) {
			s.Leave++
		}
		if e.Status == StatusVacation || equalToken(state, string(StateVacation)) {
			s.Vacation++
		}
		if e.Status == StatusCommission || equalToken(state, string(StateCommission)) {
			s.Commission++
		}
	}

	s.Total = rosterSize
	if s.Total == 0 {
		s.Total = len(entries)
	}
	s.AttendancePercentage = percentage(s.Present+s.Late+s.Commission, s.Total, false)
	return s
}

func entryAnyTime(e DailyEntry) bool {
	return HasTime(e.MorningIn) || HasTime(e.MorningOut) ||
		HasTime(e.AfternoonIn) || HasTime(e.AfternoonOut)
}

// =============================================================================
// SAMPLE ROSTER - Last-resort fallback so the daily view is never empty
// =============================================================================

func SampleRoster() []WorkerRef {
	morningIn, morningOut := "08:00", "13:00"
	afternoonIn, afternoonOut := "14:00", "17:00"
	schedule := Schedule{
		MorningIn:    &morningIn,
		MorningOut:   &morningOut,
		AfternoonIn:  &afternoonIn,
		AfternoonOut: &afternoonOut,
	}
	return []WorkerRef{
		{ID: "sample-001", Name: "Example Worker A", Schedule: schedule, Active: true},
		{ID: "sample-002", Name: "Example Worker B", Schedule: schedule, Active: true},
	}
}
