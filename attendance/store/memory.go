// Package store provides RosterProvider/RecordStore implementations.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/calendar"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements both RosterProvider and RecordStore with mutex-guarded
// maps. Records are keyed by (workerID, date) so upserts are idempotent.
type Memory struct {
	mu      sync.RWMutex
	workers map[string]attendance.WorkerRef
	records map[recordKey]attendance.RawAttendanceRecord

	// Error injection hooks for exercising the degradation paths.
	RosterErr error
	RecordErr error
	RangeErr  error
}

type recordKey struct {
	WorkerID string
	Date     calendar.Date
}

func NewMemory() *Memory {
	return &Memory{
		workers: make(map[string]attendance.WorkerRef),
		records: make(map[recordKey]attendance.RawAttendanceRecord),
	}
}

// AddWorker registers a worker in the roster source.
func (m *Memory) AddWorker(w attendance.WorkerRef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workers[w.ID] = w
}

// GetActiveWorkers returns active workers, excluding demo-marker seed rows.
func (m *Memory) GetActiveWorkers(_ context.Context) ([]attendance.WorkerRef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.RosterErr != nil {
		return nil, m.RosterErr
	}

	var roster []attendance.WorkerRef
	for _, w := range m.workers {
		if !w.Active || isDemoWorker(w) {
			continue
		}
		roster = append(roster, w)
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })
	return roster, nil
}

func isDemoWorker(w attendance.WorkerRef) bool {
	return strings.Contains(strings.ToLower(w.CreatedBy), attendance.DemoMarker) ||
		strings.Contains(strings.ToLower(w.Code), attendance.DemoMarker)
}

func (m *Memory) GetRecordsForDate(_ context.Context, date calendar.Date) ([]attendance.RawAttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.RecordErr != nil {
		return nil, m.RecordErr
	}

	var out []attendance.RawAttendanceRecord
	for k, r := range m.records {
		if k.Date.Equal(date) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkerID < out[j].WorkerID })
	return out, nil
}

func (m *Memory) GetRecordsForWorkerRange(_ context.Context, workerID string, from, to calendar.Date) ([]attendance.RawAttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.RangeErr != nil {
		return nil, m.RangeErr
	}

	var out []attendance.RawAttendanceRecord
	for k, r := range m.records {
		if k.WorkerID != workerID {
			continue
		}
		if from.BeforeOrEqual(k.Date) && k.Date.BeforeOrEqual(to) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// UpsertRecord replaces any existing record for the same (workerID, date).
func (m *Memory) UpsertRecord(_ context.Context, rec attendance.RawAttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[recordKey{WorkerID: rec.WorkerID, Date: rec.Date}] = rec
	return nil
}

var (
	_ attendance.RosterProvider = (*Memory)(nil)
	_ attendance.RecordStore    = (*Memory)(nil)
)
