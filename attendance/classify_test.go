package attendance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/calendar"
)

func str(s string) *string { return &s }

// =============================================================================
// PRECEDENCE RULES
// =============================================================================

func TestClassify_MarkTypeWinsOutright(t *testing.T) {
	// A status-bearing markType beats everything else on the record.
	r := attendance.RawAttendanceRecord{
		MarkType:    attendance.MarkVacation,
		RecordState: attendance.StateAbsent,
		MorningIn:   str("08:00"),
	}
	assert.Equal(t, attendance.StatusVacation, attendance.Classify(r))
}

func TestClassify_MarkTypeLowercaseConvention(t *testing.T) {
	// Backends disagree on casing; both conventions resolve identically.
	r := attendance.RawAttendanceRecord{MarkType: "late", MorningIn: str("09:40")}
	assert.Equal(t, attendance.StatusLate, attendance.Classify(r))

	r = attendance.RawAttendanceRecord{MarkType: "Late", MorningIn: str("09:40")}
	assert.Equal(t, attendance.StatusLate, attendance.Classify(r))
}

func TestClassify_MarkMethodFallsThrough(t *testing.T) {
	// Manual/Biometric/System say how the mark was made, not what it means;
	// classification continues with the remaining rules.
	r := attendance.RawAttendanceRecord{
		MarkType:    attendance.MarkBiometric,
		RecordState: attendance.StateLate,
		MorningIn:   str("09:15"),
	}
	assert.Equal(t, attendance.StatusLate, attendance.Classify(r))

	// A method-only mark with no times lands on Absent.
	r = attendance.RawAttendanceRecord{MarkType: attendance.MarkManual}
	assert.Equal(t, attendance.StatusAbsent, attendance.Classify(r))
}

func TestClassify_NoTimePointsMeansAbsent(t *testing.T) {
	assert.Equal(t, attendance.StatusAbsent,
		attendance.Classify(attendance.RawAttendanceRecord{}))

	// Sentinel placeholders count as "no time".
	r := attendance.RawAttendanceRecord{
		MorningIn:    str("--:--"),
		MorningOut:   str(""),
		AfternoonIn:  str("-"),
		AfternoonOut: str("00:00:00"),
		RecordState:  attendance.StateValidated,
	}
	assert.Equal(t, attendance.StatusAbsent, attendance.Classify(r))
}

func TestClassify_ValidatedWithTimeIsPresent(t *testing.T) {
	// GIVEN: recordState Validated, one recorded time, no markType
	// THEN: Present
	r := attendance.RawAttendanceRecord{
		RecordState: attendance.StateValidated,
		MorningIn:   str("08:05"),
	}
	assert.Equal(t, attendance.StatusPresent, attendance.Classify(r))

	r.RecordState = "validated"
	assert.Equal(t, attendance.StatusPresent, attendance.Classify(r))
}

func TestClassify_StateAbsentBeatsRecordedTimes(t *testing.T) {
	r := attendance.RawAttendanceRecord{
		RecordState: attendance.StateAbsent,
		MorningIn:   str("08:00"),
	}
	assert.Equal(t, attendance.StatusAbsent, attendance.Classify(r))
}

func TestClassify_StatusBearingState(t *testing.T) {
	tests := []struct {
		state attendance.RecordState
		want  attendance.EffectiveStatus
	}{
		{attendance.StatePermission, attendance.StatusPermission},
		{attendance.StateLeave, attendance.StatusLeave},
		{attendance.StateVacation, attendance.StatusVacation},
		{attendance.StateCommission, attendance.StatusCommission},
		{attendance.StatePresent, attendance.StatusPresent},
		{"permission", attendance.StatusPermission},
	}
	for _, tt := range tests {
		r := attendance.RawAttendanceRecord{
			RecordState: tt.state,
			MorningIn:   str("08:00"),
		}
		assert.Equal(t, tt.want, attendance.Classify(r), "state %q", tt.state)
	}
}

func TestClassify_NonStatusStateDefaultsAbsent(t *testing.T) {
	for _, state := range []attendance.RecordState{
		attendance.StatePending,
		attendance.StateObserved,
		attendance.StateVoided,
		"garbage",
	} {
		r := attendance.RawAttendanceRecord{
			RecordState: state,
			MorningIn:   str("08:00"),
		}
		assert.Equal(t, attendance.StatusAbsent, attendance.Classify(r), "state %q", state)
	}
}

// =============================================================================
// TOTALITY
// =============================================================================

func TestClassify_Totality(t *testing.T) {
	// Every combination of status-bearing fields and time presence resolves
	// to exactly one of the seven effective statuses.
	marks := []attendance.MarkType{"", "Manual", "Biometric", "System",
		"Present", "Late", "Absent", "Permission", "Leave", "Vacation", "Commission",
		"present", "junk"}
	states := []attendance.RecordState{"", "Present", "Late", "Absent",
		"Permission", "Leave", "Vacation", "Commission",
		"Validated", "Pending", "Observed", "Voided", "junk"}
	times := []*string{nil, str(""), str("--:--"), str("08:00")}

	valid := map[attendance.EffectiveStatus]bool{
		attendance.StatusPresent:    true,
		attendance.StatusLate:       true,
		attendance.StatusAbsent:     true,
		attendance.StatusPermission: true,
		attendance.StatusLeave:      true,
		attendance.StatusVacation:   true,
		attendance.StatusCommission: true,
	}

	for _, m := range marks {
		for _, s := range states {
			for _, tp := range times {
				r := attendance.RawAttendanceRecord{
					Date:        calendar.Today(),
					WorkerID:    "w1",
					MarkType:    m,
					RecordState: s,
					MorningIn:   tp,
				}
				got := attendance.Classify(r)
				assert.True(t, valid[got],
					"mark=%q state=%q time=%v resolved to %q", m, s, tp, got)
			}
		}
	}
}

// =============================================================================
// HOURS PARSING
// =============================================================================

func TestParseHours(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"7.00h", 7.00},
		{"8h", 8},
		{"8.5", 8.5},
		{" 6.25 hrs", 6.25},
		{"", 0},
		{"garbage", 0},
		{"h7", 0},
		{"0", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, attendance.ParseHours(tt.raw), "raw %q", tt.raw)
	}
}
