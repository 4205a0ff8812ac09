// Package load computes per-exercise volume load and per-session
// normalized load from logged session data. Inputs are athlete-entered
// and often messy, so malformed numbers degrade to defaults instead of
// failing: a rough estimate beats a rejected session here.
package load

import (
	"math"

	"github.com/claude/repcoach/internal/models"
)

const (
	// bodyweightLoadKg stands in for the load of bodyweight exercises
	// (load logged as 0) when estimating volume. The prescribed load is
	// never rewritten.
	bodyweightLoadKg = 20

	// minutesPerSet estimates session duration from set count when no
	// duration was logged.
	minutesPerSet = 3

	// defaultRPE is assumed when no exercise carries an RPE.
	defaultRPE = 6

	// safeRIR is the effective reps-in-reserve for sets that did not
	// track RIR; untracked is treated as far from failure.
	safeRIR = 5
)

// VolumeLoad returns the total mechanical work proxy for a set of
// exercises: sets x reps x load summed over all entries. To-failure sets
// count as 15 reps, rep ranges as their mean, and zero/unknown loads as
// the bodyweight constant.
func VolumeLoad(exercises []models.ExerciseEntry) float64 {
	var total float64
	for _, ex := range exercises {
		sets := ex.Sets
		if sets < 0 {
			sets = 0
		}
		kg := ex.LoadKg
		if kg <= 0 {
			kg = bodyweightLoadKg
		}
		total += float64(sets) * ex.Reps.Effective() * kg
	}
	return total
}

// NormalizedLoad returns the session-level scalar load used as the
// chronic/acute EMA input. An explicit stored value is authoritative and
// returned unchanged. Otherwise session RPE x duration is used when both
// were logged, and an estimate from set counts and per-exercise RPE when
// not. A session with no exercises and no logged effort scores 0.
func NormalizedLoad(s models.WorkoutSession) float64 {
	if s.NormalizedLoad != nil {
		return *s.NormalizedLoad
	}
	if s.SessionRPE != nil && s.DurationMin != nil && *s.SessionRPE > 0 && *s.DurationMin > 0 {
		return *s.SessionRPE * *s.DurationMin
	}
	if len(s.Exercises) == 0 {
		return 0
	}

	totalSets := 0
	var rpeSum float64
	rpeCount := 0
	for _, ex := range s.Exercises {
		if ex.Sets > 0 {
			totalSets += ex.Sets
		}
		if ex.RPE != nil && *ex.RPE > 0 {
			rpeSum += *ex.RPE
			rpeCount++
		}
	}

	estimatedDuration := float64(totalSets * minutesPerSet)
	estimatedRPE := float64(defaultRPE)
	if rpeCount > 0 {
		estimatedRPE = rpeSum / float64(rpeCount)
	}
	return math.Round(estimatedDuration * estimatedRPE)
}

// IsHighStress reports whether a set's effort marks it as high stress:
// RPE at or above 9, or one rep or less in reserve. A missing RIR is
// treated as safe, not as near-failure.
func IsHighStress(rpe float64, rir *float64) bool {
	effectiveRIR := float64(safeRIR)
	if rir != nil {
		effectiveRIR = *rir
	}
	return rpe >= 9 || effectiveRIR <= 1
}
