// Package endurance generates phase-aware multi-week training plans for
// running, cycling and swimming: Base, Build and Taper phases, a linear
// weekly volume ramp with every-fourth-week deloads, and per-slot workout
// type assignment driven by how many days a week the athlete can train.
package endurance

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/claude/repcoach/internal/models"
)

// IDFunc produces identifiers for generated sessions.
type IDFunc func() string

// WorkoutType is the role of one weekly slot.
type WorkoutType string

const (
	TypeEasy     WorkoutType = "Easy"
	TypeInterval WorkoutType = "Interval"
	TypeTempo    WorkoutType = "Tempo"
	TypeLong     WorkoutType = "Long"
)

// Phase is the periodization phase of one plan week.
type Phase string

const (
	PhaseBase     Phase = "Base"
	PhaseBuild    Phase = "Build"
	PhaseTaper    Phase = "Taper"
	PhaseRaceWeek Phase = "Race Week"
)

// Tuning carries the periodization constants. They have no
// athlete-specific basis, so they live in configuration rather than in
// code; the defaults match the values coaching plans were built with.
type Tuning struct {
	BasePhaseEnd        float64 // fraction of the plan still in Base
	BuildPhaseEnd       float64 // fraction of the plan still in Build
	WeeklyRamp          float64 // volume increase per week index
	DeloadFactor        float64 // volume multiplier on deload weeks
	DeloadEveryWeeks    int
	MinWeeks            int
	MaxWeeks            int
	TaperDurationFactor float64
	TaperRPEDrop        float64
}

// DefaultTuning returns the standard periodization constants.
func DefaultTuning() Tuning {
	return Tuning{
		BasePhaseEnd:        0.4,
		BuildPhaseEnd:       0.75,
		WeeklyRamp:          0.05,
		DeloadFactor:        0.6,
		DeloadEveryWeeks:    4,
		MinWeeks:            4,
		MaxWeeks:            16,
		TaperDurationFactor: 0.7,
		TaperRPEDrop:        1,
	}
}

// baseline is the per-modality, per-type prescription before any phase
// or volume scaling.
type baseline struct {
	durationMin float64
	distance    float64 // km for running/cycling, meters for swimming
	rpe         float64
	mainSet     string
	drills      string
}

var baselines = map[models.ActivityType]map[WorkoutType]baseline{
	models.ActivityRunning: {
		TypeEasy:     {40, 6, 4, "Conversational pace, flat route", "Strides 4x80m after"},
		TypeInterval: {45, 7, 8, "6x800m at 5k effort, 400m jog recovery", "Dynamic warmup 10min"},
		TypeTempo:    {50, 8, 7, "20min continuous at threshold effort", "Drills: A-skips, high knees"},
		TypeLong:     {70, 12, 5, "Steady aerobic effort, fuel every 30min", ""},
	},
	models.ActivityCycling: {
		TypeEasy:     {60, 25, 4, "Zone 2 spin, high cadence", "Single-leg drills 3x1min each"},
		TypeInterval: {60, 30, 8, "5x4min at VO2 effort, 4min easy between", "Openers 3x30s"},
		TypeTempo:    {75, 35, 7, "2x20min sweet spot, 10min easy between", ""},
		TypeLong:     {120, 60, 5, "Endurance ride, eat and drink on schedule", ""},
	},
	models.ActivitySwimming: {
		TypeEasy:     {40, 1500, 4, "Technique focus, mix of strokes", "Catch-up and fingertip-drag drills"},
		TypeInterval: {45, 1800, 8, "10x100m at threshold, 20s rest", "Kick set 4x50m"},
		TypeTempo:    {50, 2000, 7, "3x400m at steady pace, 30s rest", "Pull buoy set 4x100m"},
		TypeLong:     {60, 2500, 5, "Continuous swim, negative split the back half", ""},
	},
}

var weekdayIndex = map[string]int{
	"sunday": 0, "monday": 1, "tuesday": 2, "wednesday": 3,
	"thursday": 4, "friday": 5, "saturday": 6,
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

// Generate expands an endurance plan config into dated planned sessions
// starting from the week containing now. Sessions whose computed date has
// already passed are dropped; no plan schedules retroactive work.
func Generate(cfg models.EndurancePlanConfig, athleteID string, mesocycle int, tuning Tuning, now time.Time, newID IDFunc) ([]models.WorkoutSession, error) {
	if athleteID == "" {
		return nil, models.Invalidf("athleteId", "athlete is required")
	}
	if _, ok := baselines[cfg.Modality]; !ok {
		return nil, models.Invalidf("modality", "%q is not an endurance modality", cfg.Modality)
	}

	slots, err := parseDays(cfg.Schedule.Days)
	if err != nil {
		return nil, err
	}

	weeks := tuning.MinWeeks
	var hasTarget bool
	if cfg.Schedule.TargetDate != "" {
		target, err := time.Parse(time.DateOnly, cfg.Schedule.TargetDate)
		if err != nil {
			return nil, models.Invalidf("targetDate", "%q is not a valid date", cfg.Schedule.TargetDate)
		}
		hasTarget = true
		days := target.Sub(dateOnly(now)).Hours() / 24
		weeks = int(math.Ceil(days / 7))
		if weeks < tuning.MinWeeks {
			weeks = tuning.MinWeeks
		}
		if weeks > tuning.MaxWeeks {
			weeks = tuning.MaxWeeks
		}
	}

	types := assignTypes(len(slots))
	today := dateOnly(now)
	weekAnchor := today.AddDate(0, 0, -int(today.Weekday()))

	var sessions []models.WorkoutSession
	for w := 0; w < weeks; w++ {
		phase := phaseFor(w, weeks, hasTarget, tuning)

		volumeFactor := 1 + float64(w)*tuning.WeeklyRamp
		if (w+1)%tuning.DeloadEveryWeeks == 0 {
			volumeFactor = tuning.DeloadFactor
		}

		weekStart := weekAnchor.AddDate(0, 0, w*7)
		for i, day := range slots {
			date := weekdayOnOrAfter(weekStart, day)
			if date.Before(today) {
				continue
			}
			sessions = append(sessions, buildSession(cfg, athleteID, mesocycle, w, types[i], phase, volumeFactor, date, tuning, newID))
		}
	}
	return sessions, nil
}

func parseDays(tokens []string) ([]int, error) {
	var days []int
	seen := make(map[int]bool)
	for _, tok := range tokens {
		idx, ok := weekdayIndex[strings.ToLower(strings.TrimSpace(tok))]
		if !ok {
			return nil, models.Invalidf("schedule.days", "unknown weekday %q", tok)
		}
		if !seen[idx] {
			seen[idx] = true
			days = append(days, idx)
		}
	}
	if len(days) == 0 {
		return nil, models.Invalidf("schedule.days", "at least one training day is required")
	}
	sort.Ints(days)
	return days, nil
}

// assignTypes maps slot index to workout type based on how many days a
// week the athlete trains. The long session always takes the last slot.
func assignTypes(n int) []WorkoutType {
	switch {
	case n == 1:
		return []WorkoutType{TypeLong}
	case n == 2:
		return []WorkoutType{TypeInterval, TypeLong}
	default:
		types := make([]WorkoutType, n)
		for i := range types {
			types[i] = TypeTempo
		}
		types[0] = TypeEasy
		types[n-1] = TypeLong
		if n >= 4 {
			types[1] = TypeInterval
		}
		return types
	}
}

func phaseFor(w, weeks int, hasTarget bool, tuning Tuning) Phase {
	if hasTarget && w == weeks-1 {
		return PhaseRaceWeek
	}
	switch {
	case float64(w) <= tuning.BasePhaseEnd*float64(weeks):
		return PhaseBase
	case float64(w) <= tuning.BuildPhaseEnd*float64(weeks):
		return PhaseBuild
	default:
		return PhaseTaper
	}
}

func buildSession(cfg models.EndurancePlanConfig, athleteID string, mesocycle, w int, wt WorkoutType, phase Phase, volumeFactor float64, date time.Time, tuning Tuning, newID IDFunc) models.WorkoutSession {
	b := baselines[cfg.Modality][wt]

	duration := b.durationMin
	distance := b.distance
	rpe := b.rpe
	if wt == TypeLong {
		duration *= volumeFactor
		distance *= volumeFactor
	}

	title := string(wt)
	if phase == PhaseTaper || phase == PhaseRaceWeek {
		duration *= tuning.TaperDurationFactor
		rpe -= tuning.TaperRPEDrop
		if rpe < 1 {
			rpe = 1
		}
		title = fmt.Sprintf("%s (%s)", wt, phase)
	}

	duration = math.Round(duration)
	distance = math.Round(distance*10) / 10
	normalized := math.Round(duration * rpe)
	day := int(date.Weekday())

	return models.WorkoutSession{
		ID:             newID(),
		AthleteID:      athleteID,
		Date:           date,
		Status:         models.StatusPlanned,
		ActivityType:   cfg.Modality,
		DurationMin:    &duration,
		SessionRPE:     &rpe,
		DistanceKm:     &distance,
		Drills:         b.drills,
		MainSet:        b.mainSet,
		NormalizedLoad: &normalized,
		Meta: models.SessionMeta{
			Mesocycle:    mesocycle,
			Week:         w + 1,
			Category:     title,
			ProgramName:  fmt.Sprintf("%s endurance plan", cfg.Modality),
			ScheduledDay: &day,
		},
	}
}

func weekdayOnOrAfter(weekStart time.Time, target int) time.Time {
	offset := (target - int(weekStart.Weekday())) % 7
	if offset < 0 {
		offset += 7
	}
	return weekStart.AddDate(0, 0, offset)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
