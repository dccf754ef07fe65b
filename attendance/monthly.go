/*
monthly.go - Monthly reconstruction engine and statistics calculator

RECONSTRUCTION:
  One worker's sparse records over a month become a complete per-day series,
  day 1 through the month's last day. Days without a record are synthesized:
  Absent on weekdays, a NoRecord marker on weekends. Real entries always win
  over synthetic placeholders for the same date.

  Gap-filling classifies non-working days purely by weekday. It does NOT
  consult the holiday calculator: a national holiday on a weekday is
  synthesized as an automatic absence. Downstream statistics (business days,
  percentages) depend on this, so it stays until the system owner says
  otherwise.

FETCH STRATEGY:
  A single range query when the store supports it; otherwise N independent
  per-day queries. A failed per-day query degrades only that day to the
  no-data placeholder, never the whole month.

STATISTICS:
  Always recomputed from the finalized day series, never from whatever
  aggregate the caller already had.
*/
package attendance

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/attendance-engine/calendar"
)

const (
	noteAutoAbsence   = "automatic absence — no record"
	noteNonWorkingDay = "non-working day"
)

// =============================================================================
// MONTHLY RECONSTRUCTOR
// =============================================================================

type MonthlyReconstructor struct {
	records RecordStore
	log     *zap.Logger
}

func NewMonthlyReconstructor(records RecordStore, log *zap.Logger) *MonthlyReconstructor {
	if log == nil {
		log = zap.NewNop()
	}
	return &MonthlyReconstructor{records: records, log: log}
}

// ReconstructMonth returns exactly one entry per calendar day of the month,
// ascending. Fetch failures degrade per the fetch strategy above; the
// returned error is reserved for invalid input and context cancellation.
func (mr *MonthlyReconstructor) ReconstructMonth(ctx context.Context, workerID string, year int, month time.Month) ([]MonthlyDayEntry, error) {
	if month < time.January || month > time.December || year <= 0 {
		return nil, ErrInvalidPeriod
	}

	from := calendar.StartOfMonth(year, month)
	to := calendar.EndOfMonth(year, month)

	records, err := mr.records.GetRecordsForWorkerRange(ctx, workerID, from, to)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		mr.log.Warn("range query failed, falling back to per-day queries",
			zap.String("worker_id", workerID),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
			zap.Error(err))
		records = mr.fetchPerDay(ctx, workerID, year, month)
	}

	return AssembleMonth(workerID, year, month, records), nil
}

// fetchPerDay issues one independent query per calendar day and assembles
// the results. A failed day contributes nothing; gap-filling later turns it
// into the no-data placeholder.
func (mr *MonthlyReconstructor) fetchPerDay(ctx context.Context, workerID string, year int, month time.Month) []RawAttendanceRecord {
	var records []RawAttendanceRecord
	for _, day := range calendar.MonthDays(year, month) {
		dayRecords, err := mr.records.GetRecordsForDate(ctx, day)
		if err != nil {
			mr.log.Warn("per-day query failed, degrading day to no-data",
				zap.String("worker_id", workerID),
				zap.String("date", day.String()),
				zap.Error(err))
			continue
		}
		for _, r := range dayRecords {
			if r.WorkerID == workerID {
				records = append(records, r)
			}
		}
	}
	return records
}

// =============================================================================
// ASSEMBLY CORE - Pure reconstruction from fetched records
// =============================================================================

// AssembleMonth builds the complete day series from whatever records were
// fetched. Records are filtered defensively to the requested worker, year
// and month on their normalized dates; query boundaries alone are not
// trusted.
func AssembleMonth(workerID string, year int, month time.Month, records []RawAttendanceRecord) []MonthlyDayEntry {
	byDate := make(map[string]MonthlyDayEntry)

	for _, r := range records {
		if r.WorkerID != workerID {
			continue
		}
		if r.Date.Year() != year || r.Date.Month() != month {
			continue
		}
		key := r.Date.String()
		if _, exists := byDate[key]; exists {
			continue
		}
		byDate[key] = dayEntryFromRecord(r)
	}

	for _, day := range calendar.MonthDays(year, month) {
		key := day.String()
		if _, exists := byDate[key]; exists {
			continue
		}
		byDate[key] = syntheticDayEntry(day)
	}

	// Fixed-width YYYY-MM-DD keys sort lexicographically in date order.
	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]MonthlyDayEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, byDate[k])
	}

	// Belt and braces: the loop above already visits every calendar day,
	// but the returned series must hold exactly one entry per day.
	if len(entries) < calendar.DaysInMonth(year, month) {
		entries = fillMissingDays(entries, year, month)
	}
	return entries
}

func dayEntryFromRecord(r RawAttendanceRecord) MonthlyDayEntry {
	return MonthlyDayEntry{
		Date:            r.Date,
		Status:          Classify(r),
		MorningIn:       r.MorningIn,
		MorningOut:      r.MorningOut,
		AfternoonIn:     r.AfternoonIn,
		AfternoonOut:    r.AfternoonOut,
		HoursWorked:     ParseHours(r.HoursWorked),
		DelayMinutes:    r.DelayMinutes,
		Notes:           r.Notes,
		Justification:   r.JustificationReason,
		IsNonWorkingDay: r.Date.IsWeekend(),
		IsSynthetic:     false,
	}
}

// syntheticDayEntry fills a day with no record: an automatic absence on
// weekdays, a NoRecord marker on weekends. Weekday-based only; see the
// package comment about holidays.
func syntheticDayEntry(day calendar.Date) MonthlyDayEntry {
	if day.IsWeekend() {
		return MonthlyDayEntry{
			Date:            day,
			Status:          StatusNoRecord,
			Notes:           noteNonWorkingDay,
			IsNonWorkingDay: true,
			IsSynthetic:     true,
		}
	}
	return MonthlyDayEntry{
		Date:        day,
		Status:      StatusAbsent,
		Notes:       noteAutoAbsence,
		IsSynthetic: true,
	}
}

func fillMissingDays(entries []MonthlyDayEntry, year int, month time.Month) []MonthlyDayEntry {
	have := make(map[string]bool, len(entries))
	for _, e := range entries {
		have[e.Date.String()] = true
	}
	for _, day := range calendar.MonthDays(year, month) {
		if !have[day.String()] {
			entries = append(entries, syntheticDayEntry(day))
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.String() < entries[j].Date.String()
	})
	return entries
}

// =============================================================================
// MONTHLY STATISTICS CALCULATOR
// =============================================================================

// ComputeStatistics reduces a finalized day series into per-worker
// aggregates. Business days are the Monday-Friday entries; weekend entries
// never count toward them regardless of status.
func ComputeStatistics(workerID string, entries []MonthlyDayEntry) MonthlyStatistics {
	stats := MonthlyStatistics{WorkerID: workerID}
	hours := decimal.Zero

	for _, e := range entries {
		if e.Date.IsWeekday() {
			stats.BusinessDays++
		}
		switch e.Status {
		case StatusPresent:
			stats.DaysPresent++
		case StatusLate:
			stats.DaysLate++
		case StatusAbsent:
			stats.DaysAbsent++
		case StatusPermission:
			stats.DaysPermission++
		case StatusLeave:
			stats.DaysLeave++
		}
		hours = hours.Add(decimal.NewFromFloat(e.HoursWorked))
	}

	stats.TotalHoursWorked = round2(hours)
	stats.AttendancePercentage = percentage(stats.DaysPresent+stats.DaysLate, stats.BusinessDays, true)
	stats.PunctualityPercentage = percentage(stats.DaysPresent, stats.BusinessDays, true)
	return stats
}
