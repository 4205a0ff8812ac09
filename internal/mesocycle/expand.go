// Package mesocycle expands weekly workout templates into dated session
// instances and implements the date-shifting transforms built on the same
// calendar arithmetic: duplication, week mirroring, and cross-athlete
// import. Everything here is pure given its inputs; callers inject the
// reference time and the identifier source.
package mesocycle

import (
	"time"

	"github.com/claude/repcoach/internal/models"
)

// IDFunc produces identifiers for generated sessions and exercises.
// Production callers pass uuid.NewString.
type IDFunc func() string

const daysPerWeek = 7

// fallbackSpacing spreads templates without explicit weekdays across the
// week at two-day intervals.
const fallbackSpacing = 2

// NextMesocycle returns the mesocycle number the athlete's next program
// should use: one past the highest existing number, starting at 1.
func NextMesocycle(sessions []models.WorkoutSession) int {
	max := 0
	for _, s := range sessions {
		if s.Meta.Mesocycle > max {
			max = s.Meta.Mesocycle
		}
	}
	return max + 1
}

// Expand turns a weekly template config into one planned session per
// template occurrence per week. Templates with scheduled weekdays land on
// the matching weekday of each week (on or after the week start);
// templates without land on an evenly spaced fallback day.
//
// Validation failures are returned before any session is built, so a
// caller never bulk-inserts a partial mesocycle.
func Expand(cfg models.MesocycleConfig, athleteID string, mesocycle int, newID IDFunc) ([]models.WorkoutSession, error) {
	if athleteID == "" {
		return nil, models.Invalidf("athleteId", "athlete is required")
	}
	if cfg.Name == "" {
		return nil, models.Invalidf("name", "program name is required")
	}
	start, err := time.Parse(time.DateOnly, cfg.StartDate)
	if err != nil {
		return nil, models.Invalidf("startDate", "%q is not a valid date", cfg.StartDate)
	}
	if cfg.Weeks < 1 {
		return nil, models.Invalidf("weeks", "must be at least 1, got %d", cfg.Weeks)
	}
	if cfg.ActivityType == models.ActivityWeightlifting {
		for _, t := range cfg.BaseTemplates {
			if len(t.Exercises) == 0 {
				return nil, models.Invalidf("baseTemplates", "template %q has no exercises", t.Name)
			}
		}
	}

	var sessions []models.WorkoutSession
	for w := 1; w <= cfg.Weeks; w++ {
		weekStart := start.AddDate(0, 0, (w-1)*daysPerWeek)
		for i, tpl := range cfg.BaseTemplates {
			if len(tpl.ScheduledDays) > 0 {
				for _, day := range tpl.ScheduledDays {
					date := weekdayWithin(weekStart, day)
					sessions = append(sessions, instantiate(tpl, cfg, athleteID, mesocycle, w, date, newID))
				}
			} else {
				date := weekStart.AddDate(0, 0, (i*fallbackSpacing)%daysPerWeek)
				sessions = append(sessions, instantiate(tpl, cfg, athleteID, mesocycle, w, date, newID))
			}
		}
	}
	return sessions, nil
}

// weekdayWithin returns the date in [weekStart, weekStart+6] whose
// weekday equals target (0 = Sunday).
func weekdayWithin(weekStart time.Time, target int) time.Time {
	offset := (target - int(weekStart.Weekday())) % daysPerWeek
	if offset < 0 {
		offset += daysPerWeek
	}
	return weekStart.AddDate(0, 0, offset)
}

func instantiate(tpl models.MesocycleTemplate, cfg models.MesocycleConfig, athleteID string, mesocycle, week int, date time.Time, newID IDFunc) models.WorkoutSession {
	day := int(date.Weekday())
	return models.WorkoutSession{
		ID:           newID(),
		AthleteID:    athleteID,
		Date:         date,
		Status:       models.StatusPlanned,
		ActivityType: cfg.ActivityType,
		DurationMin:  tpl.DurationMin,
		DistanceKm:   tpl.DistanceKm,
		SessionRPE:   tpl.SessionRPE,
		Drills:       tpl.Drills,
		MainSet:      tpl.MainSet,
		Exercises:    cloneExercises(tpl.Exercises, newID),
		Meta: models.SessionMeta{
			Mesocycle:    mesocycle,
			Week:         week,
			Category:     tpl.Name,
			ProgramName:  cfg.Name,
			ScheduledDay: &day,
		},
	}
}

// cloneExercises copies a prescription with fresh identifiers and blank
// performance fields. Superset tokens are preserved so grouping survives
// the clone.
func cloneExercises(exercises []models.ExerciseEntry, newID IDFunc) []models.ExerciseEntry {
	if len(exercises) == 0 {
		return nil
	}
	out := make([]models.ExerciseEntry, len(exercises))
	for i, ex := range exercises {
		out[i] = models.ExerciseEntry{
			ID:         newID(),
			Name:       ex.Name,
			Sets:       ex.Sets,
			Reps:       ex.Reps,
			LoadKg:     ex.LoadKg,
			SupersetID: ex.SupersetID,
		}
	}
	return out
}
