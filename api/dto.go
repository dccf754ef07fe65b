/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract. The display
  layer performs no business logic on them beyond formatting.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
*/
package api

import (
	"github.com/warp/attendance-engine/attendance"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// WorkerDTO represents a roster entry in API responses.
type WorkerDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	MorningIn    *string `json:"morning_in,omitempty"`
	MorningOut   *string `json:"morning_out,omitempty"`
	AfternoonIn  *string `json:"afternoon_in,omitempty"`
	AfternoonOut *string `json:"afternoon_out,omitempty"`
}

// DailyEntryDTO represents one reconciled daily entry.
type DailyEntryDTO struct {
	Date       string `json:"date"`
	WorkerID   string `json:"worker_id"`
	WorkerName string `json:"worker_name"`

	AssignedMorningIn    *string `json:"assigned_morning_in,omitempty"`
	AssignedMorningOut   *string `json:"assigned_morning_out,omitempty"`
	AssignedAfternoonIn  *string `json:"assigned_afternoon_in,omitempty"`
	AssignedAfternoonOut *string `json:"assigned_afternoon_out,omitempty"`

	MorningIn    *string `json:"morning_in,omitempty"`
	MorningOut   *string `json:"morning_out,omitempty"`
	AfternoonIn  *string `json:"afternoon_in,omitempty"`
	AfternoonOut *string `json:"afternoon_out,omitempty"`

	MarkType     string `json:"mark_type,omitempty"`
	RecordState  string `json:"record_state,omitempty"`
	DelayMinutes int    `json:"delay_minutes"`
	Justified    bool   `json:"justified"`
	Reason       string `json:"reason,omitempty"`
	Notes        string `json:"notes,omitempty"`

	Status    string `json:"status"`
	Synthetic bool   `json:"synthetic"`
}

// DailySummaryDTO represents the per-status counts for one date.
type DailySummaryDTO struct {
	Date                 string  `json:"date"`
	Present              int     `json:"present"`
	Late                 int     `json:"late"`
	Absent               int     `json:"absent"`
	Permission           int     `json:"permission"`
	Leave                int     `json:"leave"`
	Vacation             int     `json:"vacation"`
	Commission           int     `json:"commission"`
	Total                int     `json:"total"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// DailyViewDTO is the complete daily reconciliation response.
type DailyViewDTO struct {
	Date    string          `json:"date"`
	Entries []DailyEntryDTO `json:"entries"`
	Summary DailySummaryDTO `json:"summary"`
}

// MonthlyDayDTO represents one reconstructed day of a worker's month.
type MonthlyDayDTO struct {
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	MorningIn     *string `json:"morning_in,omitempty"`
	MorningOut    *string `json:"morning_out,omitempty"`
	AfternoonIn   *string `json:"afternoon_in,omitempty"`
	AfternoonOut  *string `json:"afternoon_out,omitempty"`
	HoursWorked   float64 `json:"hours_worked"`
	DelayMinutes  int     `json:"delay_minutes"`
	Notes         string  `json:"notes,omitempty"`
	Justification string  `json:"justification,omitempty"`
	NonWorkingDay bool    `json:"non_working_day"`
	Synthetic     bool    `json:"synthetic"`
}

// MonthlyStatisticsDTO represents per-worker monthly aggregates.
type MonthlyStatisticsDTO struct {
	WorkerID              string  `json:"worker_id"`
	DaysPresent           int     `json:"days_present"`
	DaysLate              int     `json:"days_late"`
	DaysAbsent            int     `json:"days_absent"`
	DaysPermission        int     `json:"days_permission"`
	DaysLeave             int     `json:"days_leave"`
	TotalHoursWorked      float64 `json:"total_hours_worked"`
	BusinessDays          int     `json:"business_days"`
	AttendancePercentage  float64 `json:"attendance_percentage"`
	PunctualityPercentage float64 `json:"punctuality_percentage"`
}

// MonthlyViewDTO is the complete monthly reconstruction response.
type MonthlyViewDTO struct {
	WorkerID   string               `json:"worker_id"`
	Year       int                  `json:"year"`
	Month      int                  `json:"month"`
	Days       []MonthlyDayDTO      `json:"days"`
	Statistics MonthlyStatisticsDTO `json:"statistics"`
}

// RecordRequest is the request to upsert an attendance record.
type RecordRequest struct {
	WorkerID     string  `json:"worker_id"`
	Date         string  `json:"date"`
	MorningIn    *string `json:"morning_in,omitempty"`
	MorningOut   *string `json:"morning_out,omitempty"`
	AfternoonIn  *string `json:"afternoon_in,omitempty"`
	AfternoonOut *string `json:"afternoon_out,omitempty"`
	MarkType     string  `json:"mark_type,omitempty"`
	RecordState  string  `json:"record_state,omitempty"`
	DelayMinutes int     `json:"delay_minutes,omitempty"`
	Justified    bool    `json:"justified,omitempty"`
	Reason       string  `json:"reason,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	HoursWorked  string  `json:"hours_worked,omitempty"`
}

// BulkMarkRequest marks every active worker for one date.
type BulkMarkRequest struct {
	Date   string `json:"date"`
	Status string `json:"status"` // "present" or "absent"
}

// HolidayDTO represents one non-working holiday date.
type HolidayDTO struct {
	Date string `json:"date"`
}

// CalendarStatusDTO answers "is this date non-working" for advisory banners.
type CalendarStatusDTO struct {
	Date       string `json:"date"`
	NonWorking bool   `json:"non_working"`
	Weekend    bool   `json:"weekend"`
	Holiday    bool   `json:"holiday"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toDailyEntryDTO(e attendance.DailyEntry) DailyEntryDTO {
	return DailyEntryDTO{
		Date:                 e.Date.String(),
		WorkerID:             e.WorkerID,
		WorkerName:           e.WorkerName,
		AssignedMorningIn:    e.Assigned.MorningIn,
		AssignedMorningOut:   e.Assigned.MorningOut,
		AssignedAfternoonIn:  e.Assigned.AfternoonIn,
		AssignedAfternoonOut: e.Assigned.AfternoonOut,
		MorningIn:            e.MorningIn,
		MorningOut:           e.MorningOut,
		AfternoonIn:          e.AfternoonIn,
		AfternoonOut:         e.AfternoonOut,
		MarkType:             string(e.MarkType),
		RecordState:          string(e.RecordState),
		DelayMinutes:         e.DelayMinutes,
		Justified:            e.Justified,
		Reason:               e.JustificationReason,
		Notes:                e.Notes,
		Status:               string(e.Status),
		Synthetic:            e.IsSynthetic,
	}
}

func toDailySummaryDTO(s attendance.DailySummary) DailySummaryDTO {
	return DailySummaryDTO{
		Date:                 s.Date.String(),
		Present:              s.Present,
		Late:                 s.Late,
		Absent:               s.Absent,
		Permission:           s.Permission,
		Leave:                s.Leave,
		Vacation:             s.Vacation,
		Commission:           s.Commission,
		Total:                s.Total,
		AttendancePercentage: s.AttendancePercentage,
	}
}

func toMonthlyDayDTO(e attendance.MonthlyDayEntry) MonthlyDayDTO {
	return MonthlyDayDTO{
		Date:          e.Date.String(),
		Status:        string(e.Status),
		MorningIn:     e.MorningIn,
		MorningOut:    e.MorningOut,
		AfternoonIn:   e.AfternoonIn,
		AfternoonOut:  e.AfternoonOut,
		HoursWorked:   e.HoursWorked,
		DelayMinutes:  e.DelayMinutes,
		Notes:         e.Notes,
		Justification: e.Justification,
		NonWorkingDay: e.IsNonWorkingDay,
		Synthetic:     e.IsSynthetic,
	}
}

func toMonthlyStatisticsDTO(s attendance.MonthlyStatistics) MonthlyStatisticsDTO {
	return MonthlyStatisticsDTO{
		WorkerID:              s.WorkerID,
		DaysPresent:           s.DaysPresent,
		DaysLate:              s.DaysLate,
		DaysAbsent:            s.DaysAbsent,
		DaysPermission:        s.DaysPermission,
		DaysLeave:             s.DaysLeave,
		TotalHoursWorked:      s.TotalHoursWorked,
		BusinessDays:          s.BusinessDays,
		AttendancePercentage:  s.AttendancePercentage,
		PunctualityPercentage: s.PunctualityPercentage,
	}
}

func toWorkerDTO(w attendance.WorkerRef) WorkerDTO {
	return WorkerDTO{
		ID:           w.ID,
		Name:         w.Name,
		MorningIn:    w.Schedule.MorningIn,
		MorningOut:   w.Schedule.MorningOut,
		AfternoonIn:  w.Schedule.AfternoonIn,
		AfternoonOut: w.Schedule.AfternoonOut,
	}
}
