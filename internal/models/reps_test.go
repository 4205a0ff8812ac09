package models

import (
	"encoding/json"
	"testing"
)

// TestParseRepsFixed verifies a plain integer string parses to a fixed count.
func TestParseRepsFixed(t *testing.T) {
	r := ParseReps("8")
	if r.Kind != RepsFixed || r.Low != 8 {
		t.Errorf("got kind=%d low=%d, want fixed 8", r.Kind, r.Low)
	}
	if r.Effective() != 8 {
		t.Errorf("effective = %f, want 8", r.Effective())
	}
}

// TestParseRepsRange verifies "a-b" parses to a range whose effective
// value is the arithmetic mean.
func TestParseRepsRange(t *testing.T) {
	r := ParseReps("8-12")
	if r.Kind != RepsRange || r.Low != 8 || r.High != 12 {
		t.Errorf("got kind=%d low=%d high=%d, want range 8-12", r.Kind, r.Low, r.High)
	}
	if r.Effective() != 10 {
		t.Errorf("effective = %f, want 10", r.Effective())
	}
}

// TestParseRepsFailureKeywords verifies failure keywords in any casing
// map to a to-failure prescription worth 15 reps.
func TestParseRepsFailureKeywords(t *testing.T) {
	for _, s := range []string{"falha", "FALHA", "to failure", "AMRAP", "3+ amrap"} {
		r := ParseReps(s)
		if r.Kind != RepsToFailure {
			t.Errorf("ParseReps(%q) kind = %d, want to-failure", s, r.Kind)
		}
		if r.Effective() != 15 {
			t.Errorf("ParseReps(%q) effective = %f, want 15", s, r.Effective())
		}
	}
}

// TestParseRepsMalformedRange verifies a hyphenated string that is not a
// numeric range falls back to whole-string parsing, then to zero.
func TestParseRepsMalformedRange(t *testing.T) {
	if got := ParseReps("8-x").Effective(); got != 0 {
		t.Errorf("ParseReps(8-x) effective = %f, want 0", got)
	}
	if got := ParseReps("oito").Effective(); got != 0 {
		t.Errorf("ParseReps(oito) effective = %f, want 0", got)
	}
}

// TestParseRepsNegative verifies negative counts clamp to zero effective
// reps, whether entered as free text or a JSON number. "-5" is not a
// range: the empty low side fails numeric parsing, so the whole string
// parses as a fixed count.
func TestParseRepsNegative(t *testing.T) {
	r := ParseReps("-5")
	if r.Kind != RepsFixed || r.Low != -5 {
		t.Errorf("got kind=%d low=%d, want fixed -5", r.Kind, r.Low)
	}
	if got := r.Effective(); got != 0 {
		t.Errorf("ParseReps(-5) effective = %f, want 0", got)
	}

	var n Reps
	if err := json.Unmarshal([]byte(`-3`), &n); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if got := n.Effective(); got != 0 {
		t.Errorf("unmarshaled -3 effective = %f, want 0", got)
	}

	if got := ParseReps("-10--5").Effective(); got != 0 {
		t.Errorf("negative range effective = %f, want 0", got)
	}
}

// TestRepsUnmarshalNumber verifies a JSON number decodes as a fixed count.
func TestRepsUnmarshalNumber(t *testing.T) {
	var r Reps
	if err := json.Unmarshal([]byte(`10`), &r); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if r.Kind != RepsFixed || r.Low != 10 {
		t.Errorf("got kind=%d low=%d, want fixed 10", r.Kind, r.Low)
	}
}

// TestRepsRoundTrip verifies the original string form survives a
// marshal/unmarshal cycle, so stored prescriptions are never rewritten.
func TestRepsRoundTrip(t *testing.T) {
	var r Reps
	if err := json.Unmarshal([]byte(`"8-12"`), &r); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(out) != `"8-12"` {
		t.Errorf("round trip = %s, want \"8-12\"", out)
	}
}

// TestSupersetGroups verifies grouping follows the shared token in
// first-appearance order, independent of adjacency.
func TestSupersetGroups(t *testing.T) {
	exercises := []ExerciseEntry{
		{ID: "a", SupersetID: "s1"},
		{ID: "b", SupersetID: "s1"},
		{ID: "c"},
		{ID: "d", SupersetID: "s2"},
		{ID: "e", SupersetID: "s2"},
	}
	groups := SupersetGroups(exercises)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].ID != "s1" || len(groups[0].MemberIDs) != 2 || groups[0].MemberIDs[0] != "a" {
		t.Errorf("group 0 = %+v, want s1 with members [a b]", groups[0])
	}
	if groups[1].ID != "s2" || len(groups[1].MemberIDs) != 2 {
		t.Errorf("group 1 = %+v, want s2 with members [d e]", groups[1])
	}
}
