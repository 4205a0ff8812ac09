// Package timeline builds the chronic/acute fitness-fatigue timeline for
// one athlete: daily normalized-load sums fed through exponential moving
// averages with the standard 7-day (ATL) and 42-day (CTL) time constants.
package timeline

import (
	"math"
	"sort"
	"time"

	"github.com/claude/repcoach/internal/load"
	"github.com/claude/repcoach/internal/models"
)

const (
	atlPeriodDays = 7
	ctlPeriodDays = 42

	// maxTimelineDays caps the day walk so a malformed date range
	// truncates the timeline instead of hanging.
	maxTimelineDays = 10000
)

const dayKeyFormat = "2006-01-02"

// Build computes one DailyLoadPoint per calendar day from the earliest
// completed session through max(now, latest completed session). Future
// completed sessions extend the window, with the gap zero-filled.
//
// Both EMAs are seeded from the first nonzero-load day rather than from
// zero; seeding at zero would show a multi-week fitness ramp-up that is
// an artifact, not training.
func Build(sessions []models.WorkoutSession, now time.Time) []models.DailyLoadPoint {
	var completed []models.WorkoutSession
	for _, s := range sessions {
		if s.Status == models.StatusCompleted {
			completed = append(completed, s)
		}
	}
	if len(completed) == 0 {
		return nil
	}

	sort.Slice(completed, func(i, j int) bool {
		return completed[i].Date.Before(completed[j].Date)
	})

	loadByDay := make(map[string]float64)
	for _, s := range completed {
		loadByDay[s.Date.Format(dayKeyFormat)] += load.NormalizedLoad(s)
	}

	start := dateOnly(completed[0].Date)
	end := dateOnly(completed[len(completed)-1].Date)
	if today := dateOnly(now); today.After(end) {
		end = today
	}

	atlDecay := 2.0 / (atlPeriodDays + 1)
	ctlDecay := 2.0 / (ctlPeriodDays + 1)

	var points []models.DailyLoadPoint
	var atl, ctl float64
	seeded := false

	for d := start; !d.After(end) && len(points) < maxTimelineDays; d = d.AddDate(0, 0, 1) {
		dailyLoad := loadByDay[d.Format(dayKeyFormat)]

		if !seeded {
			if dailyLoad > 0 {
				atl = dailyLoad
				ctl = dailyLoad
				seeded = true
			}
		} else {
			atl = dailyLoad*atlDecay + atl*(1-atlDecay)
			ctl = dailyLoad*ctlDecay + ctl*(1-ctlDecay)
		}

		points = append(points, models.DailyLoadPoint{
			Date:    d,
			Load:    dailyLoad,
			Fitness: int(math.Round(ctl)),
			Fatigue: int(math.Round(atl)),
			Form:    int(math.Round(ctl - atl)),
		})
	}

	return points
}

// CurrentForm returns the most recent point of the timeline.
func CurrentForm(sessions []models.WorkoutSession, now time.Time) (models.DailyLoadPoint, bool) {
	points := Build(sessions, now)
	if len(points) == 0 {
		return models.DailyLoadPoint{}, false
	}
	return points[len(points)-1], true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
