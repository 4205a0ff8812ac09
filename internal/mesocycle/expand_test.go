package mesocycle

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/claude/repcoach/internal/models"
)

// seqID returns a deterministic identifier source for tests.
func seqID() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func ptr(v float64) *float64 { return &v }

func benchTemplate() models.MesocycleTemplate {
	return models.MesocycleTemplate{
		ID:   "tpl-1",
		Name: "Workout A",
		Exercises: []models.ExerciseEntry{
			{ID: "ex-1", Name: "Bench Press", Sets: 3, Reps: models.ParseReps("8-12"), LoadKg: 80, SupersetID: "s1"},
			{ID: "ex-2", Name: "Row", Sets: 3, Reps: models.FixedReps(10), LoadKg: 60, SupersetID: "s1"},
		},
	}
}

// TestExpandMondaysOverFourWeeks verifies one template scheduled on
// Mondays with a Sunday start date yields exactly one session per week,
// each on that week's Monday.
func TestExpandMondaysOverFourWeeks(t *testing.T) {
	tpl := benchTemplate()
	tpl.ScheduledDays = []int{1} // Monday

	cfg := models.MesocycleConfig{
		Name:          "Hypertrophy Block",
		Weeks:         4,
		StartDate:     "2026-03-01", // a Sunday
		ActivityType:  models.ActivityWeightlifting,
		BaseTemplates: []models.MesocycleTemplate{tpl},
	}

	sessions, err := Expand(cfg, "athlete-1", 3, seqID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 4 {
		t.Fatalf("got %d sessions, want 4", len(sessions))
	}
	for i, s := range sessions {
		if s.Date.Weekday() != time.Monday {
			t.Errorf("session %d on %v, want Monday", i, s.Date.Weekday())
		}
		if s.Meta.Week != i+1 {
			t.Errorf("session %d week = %d, want %d", i, s.Meta.Week, i+1)
		}
		if s.Meta.Mesocycle != 3 {
			t.Errorf("session %d mesocycle = %d, want 3", i, s.Meta.Mesocycle)
		}
		if s.Status != models.StatusPlanned {
			t.Errorf("session %d status = %s, want planned", i, s.Status)
		}
	}
	// Week 1 Monday after Sunday 2026-03-01 is 2026-03-02.
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !sessions[0].Date.Equal(want) {
		t.Errorf("first session date = %v, want %v", sessions[0].Date, want)
	}
}

// TestExpandWeekdayWrap verifies a target weekday earlier in the week
// than the start date wraps forward, never backward out of the window.
func TestExpandWeekdayWrap(t *testing.T) {
	tpl := benchTemplate()
	tpl.ScheduledDays = []int{1} // Monday

	cfg := models.MesocycleConfig{
		Name:          "Wrap",
		Weeks:         1,
		StartDate:     "2026-03-04", // a Wednesday
		ActivityType:  models.ActivityWeightlifting,
		BaseTemplates: []models.MesocycleTemplate{tpl},
	}
	sessions, err := Expand(cfg, "athlete-1", 1, seqID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) // next Monday
	if !sessions[0].Date.Equal(want) {
		t.Errorf("date = %v, want %v", sessions[0].Date, want)
	}
}

// TestExpandFallbackSpacing verifies templates without scheduled days
// land at two-day intervals from the week start.
func TestExpandFallbackSpacing(t *testing.T) {
	a, b := benchTemplate(), benchTemplate()
	b.Name = "Workout B"

	cfg := models.MesocycleConfig{
		Name:          "Fallback",
		Weeks:         1,
		StartDate:     "2026-03-02",
		ActivityType:  models.ActivityWeightlifting,
		BaseTemplates: []models.MesocycleTemplate{a, b},
	}
	sessions, err := Expand(cfg, "athlete-1", 1, seqID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	gap := sessions[1].Date.Sub(sessions[0].Date)
	if gap != 48*time.Hour {
		t.Errorf("gap = %v, want 48h", gap)
	}
}

// TestExpandClonesPrescription verifies emitted exercises get fresh IDs
// and blank performance fields while keeping the prescription and
// superset links.
func TestExpandClonesPrescription(t *testing.T) {
	tpl := benchTemplate()
	tpl.ScheduledDays = []int{2}

	cfg := models.MesocycleConfig{
		Name:          "Clone",
		Weeks:         1,
		StartDate:     "2026-03-02",
		ActivityType:  models.ActivityWeightlifting,
		BaseTemplates: []models.MesocycleTemplate{tpl},
	}
	sessions, err := Expand(cfg, "athlete-1", 1, seqID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := sessions[0].Exercises
	if len(got) != 2 {
		t.Fatalf("got %d exercises, want 2", len(got))
	}
	if got[0].ID == "ex-1" || got[0].ID == "" {
		t.Errorf("exercise kept template ID %q", got[0].ID)
	}
	if got[0].RPE != nil || got[0].RIR != nil {
		t.Error("cloned exercise carries performance data")
	}
	if got[0].LoadKg != 80 || got[0].Reps.Effective() != 10 {
		t.Errorf("prescription not preserved: %+v", got[0])
	}
	if got[0].SupersetID != "s1" || got[1].SupersetID != "s1" {
		t.Error("superset link lost in clone")
	}
	if sessions[0].Meta.Category != "Workout A" || sessions[0].Meta.ProgramName != "Clone" {
		t.Errorf("meta = %+v", sessions[0].Meta)
	}
	if sessions[0].Meta.ScheduledDay == nil || *sessions[0].Meta.ScheduledDay != 2 {
		t.Errorf("scheduledDay = %v, want 2", sessions[0].Meta.ScheduledDay)
	}
}

// TestExpandValidation verifies each pre-flight check fails with a
// ValidationError and produces no sessions.
func TestExpandValidation(t *testing.T) {
	valid := models.MesocycleConfig{
		Name:          "OK",
		Weeks:         4,
		StartDate:     "2026-03-02",
		ActivityType:  models.ActivityWeightlifting,
		BaseTemplates: []models.MesocycleTemplate{benchTemplate()},
	}

	cases := []struct {
		name    string
		athlete string
		mutate  func(*models.MesocycleConfig)
	}{
		{"missing athlete", "", func(*models.MesocycleConfig) {}},
		{"empty name", "a1", func(c *models.MesocycleConfig) { c.Name = "" }},
		{"bad start date", "a1", func(c *models.MesocycleConfig) { c.StartDate = "2026-02-30" }},
		{"zero weeks", "a1", func(c *models.MesocycleConfig) { c.Weeks = 0 }},
		{"lifting template without exercises", "a1", func(c *models.MesocycleConfig) {
			c.BaseTemplates = []models.MesocycleTemplate{{Name: "Empty"}}
		}},
	}
	for _, tc := range cases {
		cfg := valid
		tc.mutate(&cfg)
		sessions, err := Expand(cfg, tc.athlete, 1, seqID())
		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: error = %v, want ValidationError", tc.name, err)
		}
		if sessions != nil {
			t.Errorf("%s: got %d sessions alongside error", tc.name, len(sessions))
		}
	}
}

// TestNextMesocycle verifies the next number is one past the maximum,
// starting from 1 for a fresh athlete.
func TestNextMesocycle(t *testing.T) {
	if got := NextMesocycle(nil); got != 1 {
		t.Errorf("fresh athlete next = %d, want 1", got)
	}
	sessions := []models.WorkoutSession{
		{Meta: models.SessionMeta{Mesocycle: 2}},
		{Meta: models.SessionMeta{Mesocycle: 5}},
		{Meta: models.SessionMeta{Mesocycle: 1}},
	}
	if got := NextMesocycle(sessions); got != 6 {
		t.Errorf("next = %d, want 6", got)
	}
}
