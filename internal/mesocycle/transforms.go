package mesocycle

import (
	"time"

	"github.com/claude/repcoach/internal/models"
)

// mesocycleSpanDays is the fixed shift when duplicating a block into the
// next one: mesocycles here are four weeks.
const mesocycleSpanDays = 28

// Duplicate clones the given sessions so the earliest lands on
// targetDate, preserving the relative spacing between them. Performance
// fields are reset and the clones come back planned.
//
// The anchor is set to local noon on targetDate so a shift across a DST
// boundary cannot drift the clones into the wrong calendar day.
func Duplicate(sessions []models.WorkoutSession, targetDate time.Time, newID IDFunc) []models.WorkoutSession {
	if len(sessions) == 0 {
		return nil
	}
	earliest := sessions[0].Date
	for _, s := range sessions[1:] {
		if s.Date.Before(earliest) {
			earliest = s.Date
		}
	}
	y, m, d := targetDate.Date()
	anchor := time.Date(y, m, d, 12, 0, 0, 0, targetDate.Location())
	offset := anchor.Sub(earliest)

	out := make([]models.WorkoutSession, len(sessions))
	for i, s := range sessions {
		out[i] = cloneShifted(s, offset, newID, false)
	}
	return out
}

// MirrorWeek clones every week-1 session of the given mesocycle into
// weeks 2 through 4, each shifted by whole weeks. Category and program
// metadata are preserved, performance fields reset.
func MirrorWeek(sessions []models.WorkoutSession, mesocycle int, newID IDFunc) []models.WorkoutSession {
	var out []models.WorkoutSession
	for w := 2; w <= 4; w++ {
		for _, s := range sessions {
			if s.Meta.Mesocycle != mesocycle || s.Meta.Week != 1 {
				continue
			}
			clone := cloneShiftedDays(s, (w-1)*daysPerWeek, newID, false)
			clone.Meta.Week = w
			out = append(out, clone)
		}
	}
	return out
}

// DuplicateToNext clones every session of the source mesocycle 28 days
// forward under a freshly computed mesocycle number. The full session
// list is needed to compute that number; only sourceMesocycle sessions
// are cloned.
func DuplicateToNext(sessions []models.WorkoutSession, sourceMesocycle int, newID IDFunc) []models.WorkoutSession {
	next := NextMesocycle(sessions)

	var out []models.WorkoutSession
	for _, s := range sessions {
		if s.Meta.Mesocycle != sourceMesocycle {
			continue
		}
		clone := cloneShiftedDays(s, mesocycleSpanDays, newID, false)
		clone.Meta.Mesocycle = next
		out = append(out, clone)
	}
	return out
}

// Import re-times another athlete's sessions so the earliest lands today
// for the destination athlete, under the destination's next mesocycle
// number. With keepData the source status and performance values carry
// over; without it the clones come back planned and reset.
func Import(source []models.WorkoutSession, toAthlete string, destMesocycle int, keepData bool, now time.Time, newID IDFunc) []models.WorkoutSession {
	if len(source) == 0 {
		return nil
	}
	earliest := source[0].Date
	for _, s := range source[1:] {
		if s.Date.Before(earliest) {
			earliest = s.Date
		}
	}
	y, m, d := now.Date()
	anchor := time.Date(y, m, d, 12, 0, 0, 0, now.Location())
	offset := anchor.Sub(earliest)

	out := make([]models.WorkoutSession, len(source))
	for i, s := range source {
		clone := cloneShifted(s, offset, newID, keepData)
		clone.AthleteID = toAthlete
		clone.Meta.Mesocycle = destMesocycle
		out[i] = clone
	}
	return out
}

// cloneShifted copies a session with a fresh ID and a date moved by an
// absolute offset. Used where the anchor is already pinned to local
// noon, so the offset cannot straddle a DST transition meaningfully.
func cloneShifted(s models.WorkoutSession, offset time.Duration, newID IDFunc, keepData bool) models.WorkoutSession {
	return resetClone(s, s.Date.Add(offset), newID, keepData)
}

// cloneShiftedDays copies a session shifted by whole calendar days.
// AddDate keeps the wall-clock time in the session's own location, so a
// week-multiple shift across a DST change still lands on the same hour
// of the right day.
func cloneShiftedDays(s models.WorkoutSession, days int, newID IDFunc, keepData bool) models.WorkoutSession {
	return resetClone(s, s.Date.AddDate(0, 0, days), newID, keepData)
}

// resetClone copies a session under a fresh ID and the given date.
// Unless keepData is set, status drops back to planned and logged
// performance (derived loads, per-exercise RPE/RIR) is cleared;
// prescription fields always carry over.
func resetClone(s models.WorkoutSession, date time.Time, newID IDFunc, keepData bool) models.WorkoutSession {
	clone := s
	clone.ID = newID()
	clone.Date = date

	clone.Exercises = make([]models.ExerciseEntry, len(s.Exercises))
	copy(clone.Exercises, s.Exercises)
	for i := range clone.Exercises {
		clone.Exercises[i].ID = newID()
		if !keepData {
			clone.Exercises[i].RPE = nil
			clone.Exercises[i].RIR = nil
		}
	}

	if !keepData {
		clone.Status = models.StatusPlanned
		clone.VolumeLoadKg = nil
		clone.NormalizedLoad = nil
	}
	return clone
}
