package load

import (
	"testing"

	"github.com/claude/repcoach/internal/models"
)

func ptr(v float64) *float64 { return &v }

// TestVolumeLoadRange verifies a rep range contributes its mean:
// 3 x mean(8,12) x 50 = 1500.
func TestVolumeLoadRange(t *testing.T) {
	got := VolumeLoad([]models.ExerciseEntry{
		{Sets: 3, Reps: models.ParseReps("8-12"), LoadKg: 50},
	})
	if got != 1500 {
		t.Errorf("volume = %f, want 1500", got)
	}
}

// TestVolumeLoadBodyweightFailure verifies the bodyweight fallback and
// the to-failure rep value: 4 x 15 x 20 = 1200.
func TestVolumeLoadBodyweightFailure(t *testing.T) {
	got := VolumeLoad([]models.ExerciseEntry{
		{Sets: 4, Reps: models.ParseReps("falha"), LoadKg: 0},
	})
	if got != 1200 {
		t.Errorf("volume = %f, want 1200", got)
	}
}

// TestVolumeLoadLinearInLoad verifies volume scales linearly with load
// for fixed sets and reps.
func TestVolumeLoadLinearInLoad(t *testing.T) {
	base := VolumeLoad([]models.ExerciseEntry{{Sets: 5, Reps: models.FixedReps(5), LoadKg: 60}})
	doubled := VolumeLoad([]models.ExerciseEntry{{Sets: 5, Reps: models.FixedReps(5), LoadKg: 120}})
	if doubled != 2*base {
		t.Errorf("doubled load volume = %f, want %f", doubled, 2*base)
	}
}

// TestVolumeLoadMalformed verifies malformed reps degrade to zero
// contribution rather than an error.
func TestVolumeLoadMalformed(t *testing.T) {
	got := VolumeLoad([]models.ExerciseEntry{
		{Sets: 3, Reps: models.ParseReps("muitas"), LoadKg: 50},
	})
	if got != 0 {
		t.Errorf("volume = %f, want 0", got)
	}
}

// TestVolumeLoadNegativeReps verifies athlete-entered negative rep
// counts cannot drive the total below zero.
func TestVolumeLoadNegativeReps(t *testing.T) {
	got := VolumeLoad([]models.ExerciseEntry{
		{Sets: 3, Reps: models.ParseReps("-5"), LoadKg: 50},
		{Sets: 2, Reps: models.FixedReps(10), LoadKg: 40},
	})
	if got != 800 {
		t.Errorf("volume = %f, want 800 (negative reps contribute 0)", got)
	}
	if got < 0 {
		t.Errorf("volume = %f, want >= 0", got)
	}
}

// TestNormalizedLoadOverride verifies an explicit stored value is
// returned unchanged, no matter what else the session carries.
func TestNormalizedLoadOverride(t *testing.T) {
	s := models.WorkoutSession{
		NormalizedLoad: ptr(321),
		SessionRPE:     ptr(8),
		DurationMin:    ptr(60),
	}
	if got := NormalizedLoad(s); got != 321 {
		t.Errorf("normalized = %f, want 321", got)
	}
}

// TestNormalizedLoadRPEDuration verifies the rpe x duration path.
func TestNormalizedLoadRPEDuration(t *testing.T) {
	s := models.WorkoutSession{SessionRPE: ptr(7), DurationMin: ptr(60)}
	if got := NormalizedLoad(s); got != 420 {
		t.Errorf("normalized = %f, want 420", got)
	}
}

// TestNormalizedLoadEstimate verifies the set-count estimate: 8 sets x 3
// min x mean RPE of the tracked exercises.
func TestNormalizedLoadEstimate(t *testing.T) {
	s := models.WorkoutSession{
		Exercises: []models.ExerciseEntry{
			{Sets: 5, Reps: models.FixedReps(5), RPE: ptr(8)},
			{Sets: 3, Reps: models.FixedReps(10)},
		},
	}
	// 8 sets * 3 min * 8 RPE = 192
	if got := NormalizedLoad(s); got != 192 {
		t.Errorf("normalized = %f, want 192", got)
	}
}

// TestNormalizedLoadDefaultRPE verifies untracked RPE defaults to 6.
func TestNormalizedLoadDefaultRPE(t *testing.T) {
	s := models.WorkoutSession{
		Exercises: []models.ExerciseEntry{{Sets: 4, Reps: models.FixedReps(10)}},
	}
	// 4 sets * 3 min * 6 RPE = 72
	if got := NormalizedLoad(s); got != 72 {
		t.Errorf("normalized = %f, want 72", got)
	}
}

// TestNormalizedLoadEmptySession verifies a session with no exercises
// and no logged effort scores zero.
func TestNormalizedLoadEmptySession(t *testing.T) {
	if got := NormalizedLoad(models.WorkoutSession{}); got != 0 {
		t.Errorf("normalized = %f, want 0", got)
	}
}

// TestNormalizedLoadPure verifies repeated calls on the same session
// yield the same value.
func TestNormalizedLoadPure(t *testing.T) {
	s := models.WorkoutSession{SessionRPE: ptr(9), DurationMin: ptr(45)}
	if NormalizedLoad(s) != NormalizedLoad(s) {
		t.Error("NormalizedLoad is not deterministic")
	}
}

// TestIsHighStress verifies the RPE and RIR thresholds and that a
// missing RIR is treated as safe.
func TestIsHighStress(t *testing.T) {
	if !IsHighStress(9.5, nil) {
		t.Error("rpe 9.5 with no RIR should be high stress")
	}
	if IsHighStress(7, ptr(2)) {
		t.Error("rpe 7 / rir 2 should not be high stress")
	}
	if !IsHighStress(7, ptr(1)) {
		t.Error("rpe 7 / rir 1 should be high stress")
	}
	if IsHighStress(8.5, nil) {
		t.Error("rpe 8.5 with no RIR should not be high stress")
	}
}
