/*
normalize.go - Ingestion-boundary normalization

The backends feeding this engine are loosely typed: status tokens arrive in
PascalCase or lowercase, dates may carry time components, and hours-worked may
be a bare number or a string with a unit suffix. All of that is reconciled
here, once, so the classifier and the engines only ever see canonical shapes.
*/
package attendance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STATUS TOKEN NORMALIZATION - Tolerates both casing conventions
// =============================================================================

var statusTokens = map[string]EffectiveStatus{
	"present":    StatusPresent,
	"late":       StatusLate,
	"absent":     StatusAbsent,
	"permission": StatusPermission,
	"leave":      StatusLeave,
	"vacation":   StatusVacation,
	"commission": StatusCommission,
}

// NormalizeStatus resolves a status-bearing token ("Present", "present",
// "PRESENT") to its canonical EffectiveStatus. Returns false for empty,
// mark-method and workflow-state tokens.
func NormalizeStatus(token string) (EffectiveStatus, bool) {
	s, ok := statusTokens[strings.ToLower(strings.TrimSpace(token))]
	return s, ok
}

// IsMarkMethod reports whether the token describes how a mark was made
// (Manual/Biometric/System) rather than a status.
func IsMarkMethod(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "manual", "biometric", "system":
		return true
	}
	return false
}

// equalToken compares two state/status tokens under either casing convention.
func equalToken(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// =============================================================================
// TIME POINT PRESENCE - Nil, empty and sentinel all mean "no time"
// =============================================================================

// "No time" placeholders seen in exported records.
var noTimeSentinels = map[string]struct{}{
	"":         {},
	"-":        {},
	"--:--":    {},
	"--:--:--": {},
	"00:00:00": {},
}

// HasTime reports whether a recorded time point carries an actual time.
func HasTime(t *string) bool {
	if t == nil {
		return false
	}
	_, sentinel := noTimeSentinels[strings.TrimSpace(*t)]
	return !sentinel
}

// anyTime reports whether any of the record's four time points is present.
func anyTime(r RawAttendanceRecord) bool {
	return HasTime(r.MorningIn) || HasTime(r.MorningOut) ||
		HasTime(r.AfternoonIn) || HasTime(r.AfternoonOut)
}

// =============================================================================
// HOURS PARSING - "7.00h" -> 7.00, garbage -> 0
// =============================================================================

// ParseHours parses an hours-worked field that may carry a unit suffix.
// The non-numeric suffix is stripped and the remaining numeral parsed;
// anything unparseable defaults to 0. Never fatal.
func ParseHours(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	end := 0
	for i, c := range s {
		if (c >= '0' && c <= '9') || c == '.' || (i == 0 && c == '-') {
			end = i + 1
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}

	d, err := decimal.NewFromString(s[:end])
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// =============================================================================
// ROUNDING - Percentages and hour sums are 2-decimal throughout
// =============================================================================

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// percentage computes num/den*100 rounded to 2 decimals, 0 for a zero
// denominator, optionally capped at 100.
func percentage(num, den int, cap100 bool) float64 {
	if den == 0 {
		return 0
	}
	p := decimal.NewFromInt(int64(num)).
		Div(decimal.NewFromInt(int64(den))).
		Mul(decimal.NewFromInt(100))
	if cap100 && p.GreaterThan(decimal.NewFromInt(100)) {
		return 100
	}
	return round2(p)
}
