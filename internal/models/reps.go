package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RepsKind distinguishes the three prescription forms a reps field can take.
type RepsKind int

const (
	// RepsFixed is a plain rep count, e.g. 8.
	RepsFixed RepsKind = iota
	// RepsRange is a low-high prescription, e.g. "8-12".
	RepsRange
	// RepsToFailure means "as many as possible" (AMRAP / falha).
	RepsToFailure
)

// failureKeywords mark a to-failure prescription. Matched as
// case-insensitive substrings; "falha" because the original training
// logs are Portuguese.
var failureKeywords = []string{"falha", "failure", "amrap"}

// Reps is the reps prescription of an exercise, parsed once at the JSON
// boundary. The wire value may be a number (fixed) or a free-text string
// (fixed, range like "8-12", or a failure keyword); malformed text parses
// to a fixed count of zero rather than an error, since this is
// athlete-entered data.
type Reps struct {
	Kind RepsKind
	Low  int
	High int

	// raw preserves the original string form for round-tripping.
	raw string
}

// FixedReps returns a plain rep count.
func FixedReps(n int) Reps { return Reps{Kind: RepsFixed, Low: n, High: n} }

// RangeReps returns a low-high rep prescription.
func RangeReps(low, high int) Reps { return Reps{Kind: RepsRange, Low: low, High: high} }

// ToFailure returns an AMRAP prescription.
func ToFailure() Reps { return Reps{Kind: RepsToFailure} }

// ParseReps interprets a free-text reps string.
func ParseReps(s string) Reps {
	r := parseRepsString(s)
	r.raw = s
	return r
}

func parseRepsString(s string) Reps {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	for _, kw := range failureKeywords {
		if strings.Contains(lower, kw) {
			return Reps{Kind: RepsToFailure}
		}
	}
	if low, high, ok := strings.Cut(trimmed, "-"); ok {
		a, errA := strconv.Atoi(strings.TrimSpace(low))
		b, errB := strconv.Atoi(strings.TrimSpace(high))
		if errA == nil && errB == nil {
			return Reps{Kind: RepsRange, Low: a, High: b}
		}
		// Not a clean range; fall through to whole-string parsing.
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return Reps{Kind: RepsFixed}
	}
	return Reps{Kind: RepsFixed, Low: n, High: n}
}

// Effective returns the rep count used for volume estimates: 15 for
// to-failure sets, the arithmetic mean for ranges, the count itself
// otherwise. Negative counts (possible via free text like "-5" or a
// negative wire number) clamp to 0 so volume can never go negative.
func (r Reps) Effective() float64 {
	var n float64
	switch r.Kind {
	case RepsToFailure:
		return 15
	case RepsRange:
		n = float64(r.Low+r.High) / 2
	default:
		n = float64(r.Low)
	}
	if n < 0 {
		return 0
	}
	return n
}

// String renders the prescription the way it was entered where possible.
func (r Reps) String() string {
	if r.raw != "" {
		return r.raw
	}
	switch r.Kind {
	case RepsToFailure:
		return "failure"
	case RepsRange:
		return fmt.Sprintf("%d-%d", r.Low, r.High)
	default:
		return strconv.Itoa(r.Low)
	}
}

// UnmarshalJSON accepts either a JSON number or a string.
func (r *Reps) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = FixedReps(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("reps: expected number or string, got %s", data)
	}
	*r = ParseReps(s)
	return nil
}

// MarshalJSON emits the original string form when one exists, otherwise a
// plain number for fixed counts.
func (r Reps) MarshalJSON() ([]byte, error) {
	if r.raw == "" && r.Kind == RepsFixed {
		return json.Marshal(r.Low)
	}
	return json.Marshal(r.String())
}
