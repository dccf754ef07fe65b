/*
handlers.go - HTTP API handlers for the attendance engine

ENDPOINTS:
  Workers:
    GET  /api/workers                 Active roster

  Attendance:
    GET  /api/attendance/daily        Reconciled daily view (?date=)
    GET  /api/attendance/monthly      Reconstructed month (?worker=&year=&month=)
    POST /api/attendance/records      Upsert one record
    POST /api/attendance/bulk         Mark all present/absent for a date

  Calendar:
    GET  /api/holidays                Holiday dates (?year=)
    GET  /api/calendar/status         Non-working-day check (?date=)

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (reconciler, reconstructor, calculator)
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors
  Degraded views (fallback roster, missing days) are NOT errors; the engine
  absorbs those and the handlers return whatever view it produced.
*/
package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/calendar"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Roster   attendance.RosterProvider
	Records  attendance.RecordStore
	Daily    *attendance.DailyReconciler
	Monthly  *attendance.MonthlyReconstructor
	Calendar *calendar.Calculator

	log *zap.Logger
}

// NewHandler creates a new handler wired to the given stores.
func NewHandler(roster attendance.RosterProvider, records attendance.RecordStore, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Roster:   roster,
		Records:  records,
		Daily:    attendance.NewDailyReconciler(roster, records, log),
		Monthly:  attendance.NewMonthlyReconstructor(records, log),
		Calendar: calendar.NewCalculator(),
		log:      log,
	}
}

// =============================================================================
// WORKER HANDLERS
// =============================================================================

// ListWorkers returns the active roster.
func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.Roster.GetActiveWorkers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list workers", err)
		return
	}

	dtos := make([]WorkerDTO, len(workers))
	for i, worker := range workers {
		dtos[i] = toWorkerDTO(worker)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// DAILY ATTENDANCE HANDLERS
// =============================================================================

// GetDailyView returns the reconciled entry set and summary for one date.
// GET /api/attendance/daily?date=YYYY-MM-DD (default: today)
func (h *Handler) GetDailyView(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, "date", calendar.Today())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	entries, summary, err := h.Daily.ReconcileDay(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reconcile day", err)
		return
	}

	view := DailyViewDTO{
		Date:    date.String(),
		Entries: make([]DailyEntryDTO, len(entries)),
		Summary: toDailySummaryDTO(summary),
	}
	for i, e := range entries {
		view.Entries[i] = toDailyEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, view)
}

// GetMonthlyView returns one worker's reconstructed month and statistics.
// GET /api/attendance/monthly?worker=&year=&month=
func (h *Handler) GetMonthlyView(w http.ResponseWriter, r *http.Request) {
	workerID := r.URL.Query().Get("worker")
	if workerID == "" {
		writeError(w, http.StatusBadRequest, "worker parameter is required", nil)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	days, err := h.Monthly.ReconstructMonth(r.Context(), workerID, year, time.Month(month))
	if err != nil {
		if attendance.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid period", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to reconstruct month", err)
		return
	}

	view := MonthlyViewDTO{
		WorkerID:   workerID,
		Year:       year,
		Month:      month,
		Days:       make([]MonthlyDayDTO, len(days)),
		Statistics: toMonthlyStatisticsDTO(attendance.ComputeStatistics(workerID, days)),
	}
	for i, d := range days {
		view.Days[i] = toMonthlyDayDTO(d)
	}
	writeJSON(w, http.StatusOK, view)
}

// UpsertRecord writes one attendance record.
// POST /api/attendance/records
func (h *Handler) UpsertRecord(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.WorkerID == "" {
		writeError(w, http.StatusBadRequest, "worker_id is required", nil)
		return
	}
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	rec := attendance.RawAttendanceRecord{
		ID:                  uuid.NewString(),
		Date:                date,
		WorkerID:            req.WorkerID,
		MorningIn:           req.MorningIn,
		MorningOut:          req.MorningOut,
		AfternoonIn:         req.AfternoonIn,
		AfternoonOut:        req.AfternoonOut,
		MarkType:            attendance.MarkType(req.MarkType),
		RecordState:         attendance.RecordState(req.RecordState),
		DelayMinutes:        req.DelayMinutes,
		Justified:           req.Justified,
		JustificationReason: req.Reason,
		Notes:               req.Notes,
		HoursWorked:         req.HoursWorked,
	}
	if err := h.Records.UpsertRecord(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save record", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "saved",
		"worker": req.WorkerID,
		"date":   date.String(),
	})
}

// BulkMark marks every active worker present or absent for one date: one
// independent idempotent upsert per worker, all awaited, then a fresh
// reconciliation. POST /api/attendance/bulk
func (h *Handler) BulkMark(w http.ResponseWriter, r *http.Request) {
	var req BulkMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	var mark attendance.MarkType
	switch strings.ToLower(req.Status) {
	case "present":
		mark = attendance.MarkPresent
	case "absent":
		mark = attendance.MarkAbsent
	default:
		writeError(w, http.StatusBadRequest, "status must be 'present' or 'absent'", nil)
		return
	}

	workers, err := h.Roster.GetActiveWorkers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list workers", err)
		return
	}

	// One independent write per worker; upserts keyed (worker, date) make
	// overlapping submissions converge, so no per-worker locking here.
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0
	for _, worker := range workers {
		wg.Add(1)
		go func(worker attendance.WorkerRef) {
			defer wg.Done()
			rec := attendance.RawAttendanceRecord{
				ID:       uuid.NewString(),
				Date:     date,
				WorkerID: worker.ID,
				MarkType: mark,
			}
			if mark == attendance.MarkPresent {
				rec.MorningIn = worker.Schedule.MorningIn
				rec.MorningOut = worker.Schedule.MorningOut
				rec.AfternoonIn = worker.Schedule.AfternoonIn
				rec.AfternoonOut = worker.Schedule.AfternoonOut
			}
			if err := h.Records.UpsertRecord(r.Context(), rec); err != nil {
				h.log.Warn("bulk mark write failed",
					zap.String("worker_id", worker.ID),
					zap.String("date", date.String()),
					zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(worker)
	}
	wg.Wait()

	entries, summary, err := h.Daily.ReconcileDay(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reconcile day", err)
		return
	}

	view := DailyViewDTO{
		Date:    date.String(),
		Entries: make([]DailyEntryDTO, len(entries)),
		Summary: toDailySummaryDTO(summary),
	}
	for i, e := range entries {
		view.Entries[i] = toDailyEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"marked": len(workers) - failed,
		"failed": failed,
		"view":   view,
	})
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// ListHolidays returns the holiday dates for a year.
// GET /api/holidays?year=YYYY (default: current year)
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := calendar.Today().Year()
	if q := r.URL.Query().Get("year"); q != "" {
		y, err := strconv.Atoi(q)
		if err != nil || y <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = y
	}

	set := calendar.HolidaysForYear(year)
	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d.String())
	}
	// Fixed-width date strings sort chronologically.
	sort.Strings(dates)

	dtos := make([]HolidayDTO, len(dates))
	for i, d := range dates {
		dtos[i] = HolidayDTO{Date: d}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCalendarStatus answers whether a date is non-working.
// GET /api/calendar/status?date=YYYY-MM-DD (default: today)
func (h *Handler) GetCalendarStatus(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, "date", calendar.Today())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	writeJSON(w, http.StatusOK, CalendarStatusDTO{
		Date:       date.String(),
		NonWorking: h.Calendar.IsNonWorkingDay(date),
		Weekend:    date.IsWeekend(),
		Holiday:    h.Calendar.IsHoliday(date),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func dateParam(r *http.Request, name string, fallback calendar.Date) (calendar.Date, error) {
	q := r.URL.Query().Get(name)
	if q == "" {
		return fallback, nil
	}
	return calendar.ParseDate(q)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
