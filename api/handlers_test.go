package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/api"
	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/attendance/store"
	"github.com/warp/attendance-engine/calendar"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	mem := store.NewMemory()
	handler := api.NewHandler(mem, mem, nil)
	srv := httptest.NewServer(api.NewRouter(handler, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv, mem
}

func addWorker(mem *store.Memory, id, name string) {
	morningIn, morningOut := "08:00", "13:00"
	afternoonIn, afternoonOut := "14:00", "17:00"
	mem.AddWorker(attendance.WorkerRef{
		ID:   id,
		Name: name,
		Schedule: attendance.Schedule{
			MorningIn:    &morningIn,
			MorningOut:   &morningOut,
			AfternoonIn:  &afternoonIn,
			AfternoonOut: &afternoonOut,
		},
		Active: true,
	})
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func postJSON(t *testing.T, url string, body any, out any) *http.Response {
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// =============================================================================
// DAILY VIEW
// =============================================================================

func TestGetDailyView_SynthesizesMissingWorkers(t *testing.T) {
	srv, mem := newTestServer(t)
	addWorker(mem, "w1", "Worker One")
	addWorker(mem, "w2", "Worker Two")

	var view api.DailyViewDTO
	resp := getJSON(t, srv.URL+"/api/attendance/daily?date=2025-03-11", &view)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2025-03-11", view.Date)
	require.Len(t, view.Entries, 2)
	for _, e := range view.Entries {
		assert.True(t, e.Synthetic)
		assert.Equal(t, "Absent", e.Status)
		require.NotNil(t, e.AssignedMorningIn)
		assert.Equal(t, "08:00", *e.AssignedMorningIn)
	}
	assert.Equal(t, 2, view.Summary.Absent)
	assert.Equal(t, 2, view.Summary.Total)
	assert.Equal(t, 0.0, view.Summary.AttendancePercentage)
}

func TestGetDailyView_InvalidDate(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := getJSON(t, srv.URL+"/api/attendance/daily?date=garbage", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// RECORD UPSERT AND BULK MARK
// =============================================================================

func TestUpsertRecord_RoundTrip(t *testing.T) {
	srv, mem := newTestServer(t)
	addWorker(mem, "w1", "Worker One")

	morningIn := "08:05"
	resp := postJSON(t, srv.URL+"/api/attendance/records", api.RecordRequest{
		WorkerID:    "w1",
		Date:        "2025-03-11",
		MorningIn:   &morningIn,
		RecordState: "Validated",
		HoursWorked: "8h",
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var view api.DailyViewDTO
	getJSON(t, srv.URL+"/api/attendance/daily?date=2025-03-11", &view)

	require.Len(t, view.Entries, 1)
	assert.False(t, view.Entries[0].Synthetic)
	assert.Equal(t, "Present", view.Entries[0].Status)
	assert.Equal(t, 1, view.Summary.Present)
	assert.Equal(t, 100.0, view.Summary.AttendancePercentage)
}

func TestBulkMark_AllPresent(t *testing.T) {
	srv, mem := newTestServer(t)
	addWorker(mem, "w1", "Worker One")
	addWorker(mem, "w2", "Worker Two")
	addWorker(mem, "w3", "Worker Three")

	var result struct {
		Marked int              `json:"marked"`
		Failed int              `json:"failed"`
		View   api.DailyViewDTO `json:"view"`
	}
	resp := postJSON(t, srv.URL+"/api/attendance/bulk", api.BulkMarkRequest{
		Date:   "2025-03-11",
		Status: "present",
	}, &result)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, result.Marked)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.View.Entries, 3)
	for _, e := range result.View.Entries {
		assert.False(t, e.Synthetic)
		assert.Equal(t, "Present", e.Status)
	}
	assert.Equal(t, 3, result.View.Summary.Present)
	assert.Equal(t, 100.0, result.View.Summary.AttendancePercentage)
}

func TestBulkMark_Repeatable(t *testing.T) {
	// Overlapping bulk submissions converge: upserts are keyed by
	// (worker, date).
	srv, mem := newTestServer(t)
	addWorker(mem, "w1", "Worker One")

	postJSON(t, srv.URL+"/api/attendance/bulk", api.BulkMarkRequest{Date: "2025-03-11", Status: "present"}, nil)
	postJSON(t, srv.URL+"/api/attendance/bulk", api.BulkMarkRequest{Date: "2025-03-11", Status: "absent"}, nil)

	var view api.DailyViewDTO
	getJSON(t, srv.URL+"/api/attendance/daily?date=2025-03-11", &view)

	require.Len(t, view.Entries, 1)
	assert.Equal(t, "Absent", view.Entries[0].Status)
}

func TestBulkMark_RejectsUnknownStatus(t *testing.T) {
	srv, mem := newTestServer(t)
	addWorker(mem, "w1", "Worker One")

	resp := postJSON(t, srv.URL+"/api/attendance/bulk", api.BulkMarkRequest{
		Date:   "2025-03-11",
		Status: "late",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// MONTHLY VIEW
// =============================================================================

func TestGetMonthlyView_CompleteSeries(t *testing.T) {
	srv, mem := newTestServer(t)
	addWorker(mem, "w1", "Worker One")

	morningIn := "08:00"
	postJSON(t, srv.URL+"/api/attendance/records", api.RecordRequest{
		WorkerID:    "w1",
		Date:        "2024-03-04",
		MorningIn:   &morningIn,
		RecordState: "Validated",
		HoursWorked: "8h",
	}, nil)

	var view api.MonthlyViewDTO
	resp := getJSON(t, srv.URL+"/api/attendance/monthly?worker=w1&year=2024&month=3", &view)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, view.Days, 31)
	assert.Equal(t, "2024-03-01", view.Days[0].Date)
	assert.Equal(t, "2024-03-31", view.Days[30].Date)
	assert.Equal(t, "Present", view.Days[3].Status)
	assert.Equal(t, 8.0, view.Days[3].HoursWorked)

	assert.Equal(t, 21, view.Statistics.BusinessDays)
	assert.Equal(t, 1, view.Statistics.DaysPresent)
	assert.Equal(t, 8.0, view.Statistics.TotalHoursWorked)
}

func TestGetMonthlyView_RequiresWorker(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := getJSON(t, srv.URL+"/api/attendance/monthly?year=2024&month=3", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetMonthlyView_InvalidMonth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := getJSON(t, srv.URL+"/api/attendance/monthly?worker=w1&year=2024&month=13", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// CALENDAR
// =============================================================================

func TestListHolidays_IncludesMoveable(t *testing.T) {
	srv, _ := newTestServer(t)

	var holidays []api.HolidayDTO
	resp := getJSON(t, srv.URL+"/api/holidays?year=2025", &holidays)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, holidays, 11)

	dates := make([]string, len(holidays))
	for i, h := range holidays {
		dates[i] = h.Date
	}
	assert.Contains(t, dates, "2025-04-17") // Holy Thursday
	assert.Contains(t, dates, "2025-04-18") // Good Friday
	assert.Contains(t, dates, "2025-12-25")
}

func TestGetCalendarStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	saturday := calendar.NewDate(2025, time.March, 8)
	require.Equal(t, time.Saturday, saturday.Weekday())

	var status api.CalendarStatusDTO
	getJSON(t, srv.URL+"/api/calendar/status?date=2025-03-08", &status)
	assert.True(t, status.NonWorking)
	assert.True(t, status.Weekend)
	assert.False(t, status.Holiday)

	getJSON(t, srv.URL+"/api/calendar/status?date=2025-05-01", &status)
	assert.True(t, status.NonWorking)
	assert.False(t, status.Weekend)
	assert.True(t, status.Holiday)
}

// =============================================================================
// WORKERS
// =============================================================================

func TestListWorkers(t *testing.T) {
	srv, mem := newTestServer(t)
	addWorker(mem, "w1", "Worker One")

	var workers []api.WorkerDTO
	resp := getJSON(t, srv.URL+"/api/workers", &workers)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, workers, 1)
	assert.Equal(t, "Worker One", workers[0].Name)
}
