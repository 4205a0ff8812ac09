package timeline

import (
	"testing"
	"time"

	"github.com/claude/repcoach/internal/models"
)

func ptr(v float64) *float64 { return &v }

func completedSession(date time.Time, normalized float64) models.WorkoutSession {
	return models.WorkoutSession{
		Status:         models.StatusCompleted,
		Date:           date,
		NormalizedLoad: ptr(normalized),
	}
}

// TestBuildEmpty verifies no completed sessions yields an empty timeline.
func TestBuildEmpty(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	planned := models.WorkoutSession{Status: models.StatusPlanned, Date: now}
	if got := Build([]models.WorkoutSession{planned}, now); got != nil {
		t.Errorf("got %d points, want none", len(got))
	}
}

// TestBuildWindowLength verifies the timeline spans every day from the
// earliest completed session through "now", inclusive.
func TestBuildWindowLength(t *testing.T) {
	start := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 10, 18, 0, 0, 0, time.UTC)
	points := Build([]models.WorkoutSession{completedSession(start, 100)}, now)
	if len(points) != 10 {
		t.Fatalf("got %d points, want 10", len(points))
	}
	if !points[0].Date.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first day = %v, want 2026-02-01", points[0].Date)
	}
}

// TestBuildFutureSessionExtendsWindow verifies a completed session dated
// after "now" extends the window, with the gap zero-filled.
func TestBuildFutureSessionExtendsWindow(t *testing.T) {
	now := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC)
	sessions := []models.WorkoutSession{
		completedSession(time.Date(2026, 2, 1, 7, 0, 0, 0, time.UTC), 100),
		completedSession(time.Date(2026, 2, 8, 7, 0, 0, 0, time.UTC), 50),
	}
	points := Build(sessions, now)
	if len(points) != 8 {
		t.Fatalf("got %d points, want 8", len(points))
	}
	for i := 1; i < 7; i++ {
		if points[i].Load != 0 {
			t.Errorf("day %d load = %f, want 0", i, points[i].Load)
		}
	}
	if points[7].Load != 50 {
		t.Errorf("last day load = %f, want 50", points[7].Load)
	}
}

// TestBuildBootstrapSeeding verifies ATL and CTL are seeded to the first
// nonzero daily load, then decay monotonically toward zero on rest days.
func TestBuildBootstrapSeeding(t *testing.T) {
	start := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 13)
	points := Build([]models.WorkoutSession{completedSession(start, 80)}, now)

	if points[0].Fitness != 80 || points[0].Fatigue != 80 {
		t.Fatalf("day 0 fitness/fatigue = %d/%d, want 80/80", points[0].Fitness, points[0].Fatigue)
	}
	if points[0].Form != 0 {
		t.Errorf("day 0 form = %d, want 0", points[0].Form)
	}
	for i := 1; i < len(points); i++ {
		if points[i].Fatigue > points[i-1].Fatigue {
			t.Errorf("fatigue rose on rest day %d: %d -> %d", i, points[i-1].Fatigue, points[i].Fatigue)
		}
		if points[i].Fitness > points[i-1].Fitness {
			t.Errorf("fitness rose on rest day %d: %d -> %d", i, points[i-1].Fitness, points[i].Fitness)
		}
		if points[i].Fatigue < 0 || points[i].Fitness < 0 {
			t.Errorf("day %d went negative", i)
		}
	}
	// ATL (7-day) decays faster than CTL (42-day), so form goes positive.
	last := points[len(points)-1]
	if last.Form < 0 {
		t.Errorf("form after two rest weeks = %d, want >= 0", last.Form)
	}
}

// TestBuildSameDaySessionsSum verifies multiple sessions on one calendar
// day sum into a single daily load.
func TestBuildSameDaySessionsSum(t *testing.T) {
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	sessions := []models.WorkoutSession{
		completedSession(day.Add(7*time.Hour), 60),
		completedSession(day.Add(18*time.Hour), 40),
	}
	points := Build(sessions, day.Add(20*time.Hour))
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if points[0].Load != 100 {
		t.Errorf("load = %f, want 100", points[0].Load)
	}
}

// TestBuildLeadingZeroDays verifies days before the first nonzero load
// stay at zero instead of dragging the seed down.
func TestBuildLeadingZeroDays(t *testing.T) {
	first := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	sessions := []models.WorkoutSession{
		completedSession(first, 0),
		completedSession(first.AddDate(0, 0, 3), 90),
	}
	points := Build(sessions, first.AddDate(0, 0, 4))
	if points[0].Fitness != 0 || points[0].Fatigue != 0 {
		t.Errorf("day 0 = %d/%d, want 0/0", points[0].Fitness, points[0].Fatigue)
	}
	if points[3].Fitness != 90 || points[3].Fatigue != 90 {
		t.Errorf("seed day = %d/%d, want 90/90", points[3].Fitness, points[3].Fatigue)
	}
}

// TestBuildCapsRunawayWindow verifies a malformed date range truncates
// the timeline instead of walking decades of days.
func TestBuildCapsRunawayWindow(t *testing.T) {
	sessions := []models.WorkoutSession{
		completedSession(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 100),
	}
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	points := Build(sessions, now)
	if len(points) != 10000 {
		t.Errorf("got %d points, want the 10000 cap", len(points))
	}
}

// TestCurrentForm verifies the convenience accessor returns the last point.
func TestCurrentForm(t *testing.T) {
	start := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 5)
	point, ok := CurrentForm([]models.WorkoutSession{completedSession(start, 70)}, now)
	if !ok {
		t.Fatal("expected a current form point")
	}
	if !point.Date.Equal(time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v, want 2026-02-06", point.Date)
	}
	if _, ok := CurrentForm(nil, now); ok {
		t.Error("expected no point for empty input")
	}
}
