/*
classify.go - Status precedence rules

The raw data carries two independent status-bearing fields (markType and
recordState) with an ad hoc precedence between them. That precedence lives
here, in one tested function, and nowhere else. Classify is total: every
reachable record resolves to exactly one EffectiveStatus, the all-empty
record included.
*/
package attendance

// Classify resolves a raw record to its effective status. Precedence,
// first match wins:
//
//  1. A status-bearing markType wins outright. Mark-method values
//     (Manual/Biometric/System) are metadata about how the mark was made
//     and fall through to the recordState branches.
//  2. All four recorded time points missing or sentinel: Absent.
//  3. recordState Validated with at least one recorded time: Present.
//  4. recordState Absent: Absent.
//  5. A status-bearing recordState; otherwise Absent.
func Classify(r RawAttendanceRecord) EffectiveStatus {
	if r.MarkType != "" && !IsMarkMethod(string(r.MarkType)) {
		if s, ok := NormalizeStatus(string(r.MarkType)); ok {
			return s
		}
	}

	if !anyTime(r) {
		return StatusAbsent
	}

	if equalToken(string(r.RecordState), string(StateValidated)) && anyTime(r) {
		return StatusPresent
	}

	if equalToken(string(r.RecordState), string(StateAbsent)) {
		return StatusAbsent
	}

	if s, ok := NormalizeStatus(string(r.RecordState)); ok {
		return s
	}
	return StatusAbsent
}
