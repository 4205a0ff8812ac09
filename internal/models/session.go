package models

import "time"

// Status is the lifecycle state of a workout session.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusCompleted Status = "completed"
)

// ActivityType identifies the sport discipline of a session or template.
type ActivityType string

const (
	ActivityWeightlifting ActivityType = "weightlifting"
	ActivityRunning       ActivityType = "running"
	ActivityCycling       ActivityType = "cycling"
	ActivitySwimming      ActivityType = "swimming"
)

// ExerciseEntry is one prescribed or logged exercise within a session.
// Entries sharing a SupersetID form a superset and are contiguous in the
// containing slice; use SupersetGroups to recover explicit groups instead
// of relying on adjacency.
type ExerciseEntry struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Sets       int      `json:"sets"`
	Reps       Reps     `json:"reps"`
	LoadKg     float64  `json:"load"`
	RPE        *float64 `json:"rpe,omitempty"`
	RIR        *float64 `json:"rir,omitempty"`
	SupersetID string   `json:"supersetId,omitempty"`
}

// SessionMeta ties a session to its position within a training program.
type SessionMeta struct {
	Mesocycle    int    `json:"mesocycle"`
	Week         int    `json:"week"`
	Category     string `json:"category,omitempty"`
	ProgramName  string `json:"programName,omitempty"`
	ScheduledDay *int   `json:"scheduledDay,omitempty"`
}

// WorkoutSession is a single dated training session for one athlete.
// VolumeLoadKg and NormalizedLoad are derived values; a non-nil
// NormalizedLoad is an authoritative external override for the load
// calculators.
type WorkoutSession struct {
	ID             string          `json:"id"`
	AthleteID      string          `json:"athleteId"`
	Date           time.Time       `json:"date"`
	Status         Status          `json:"status"`
	ActivityType   ActivityType    `json:"activityType"`
	DurationMin    *float64        `json:"durationMinutes,omitempty"`
	SessionRPE     *float64        `json:"sessionRpe,omitempty"`
	DistanceKm     *float64        `json:"distanceKm,omitempty"`
	Drills         string          `json:"drillsDescription,omitempty"`
	MainSet        string          `json:"mainSetDescription,omitempty"`
	Exercises      []ExerciseEntry `json:"exercises"`
	VolumeLoadKg   *float64        `json:"volumeLoadKg,omitempty"`
	NormalizedLoad *float64        `json:"normalizedLoad,omitempty"`
	Meta           SessionMeta     `json:"meta"`
}

// DailyLoadPoint is one day of the chronic/acute timeline.
// Fitness is CTL, Fatigue is ATL, Form is TSB (CTL - ATL).
type DailyLoadPoint struct {
	Date    time.Time `json:"date"`
	Load    float64   `json:"load"`
	Fitness int       `json:"fitness"`
	Fatigue int       `json:"fatigue"`
	Form    int       `json:"form"`
}

// MesocycleTemplate is one weekly slot (e.g. "Workout A") of a plan.
// Exercises are prescription-only: no RPE/RIR, no derived volume.
type MesocycleTemplate struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Exercises     []ExerciseEntry `json:"exercises"`
	DurationMin   *float64        `json:"durationMinutes,omitempty"`
	DistanceKm    *float64        `json:"distanceKm,omitempty"`
	SessionRPE    *float64        `json:"sessionRpe,omitempty"`
	Drills        string          `json:"drillsDescription,omitempty"`
	MainSet       string          `json:"mainSetDescription,omitempty"`
	ScheduledDays []int           `json:"scheduledDays"`
}

// MesocycleConfig drives one expansion of a weekly plan into dated
// sessions. It is consumed by the expansion and not persisted; the
// generated sessions carry the program name and mesocycle/week numbers.
type MesocycleConfig struct {
	Name          string              `json:"name"`
	Weeks         int                 `json:"weeks"`
	StartDate     string              `json:"startDate"`
	ActivityType  ActivityType        `json:"activityType"`
	BaseTemplates []MesocycleTemplate `json:"baseTemplates"`
}

// PlanSchedule is the weekly availability for an endurance plan.
type PlanSchedule struct {
	Days       []string `json:"days"`
	TargetDate string   `json:"targetDate,omitempty"`
}

// EndurancePlanConfig drives one endurance plan generation.
type EndurancePlanConfig struct {
	AthleteAge int          `json:"athleteAge"`
	Modality   ActivityType `json:"modality"`
	Schedule   PlanSchedule `json:"schedule"`
}

// Athlete is a registered athlete the coach tracks sessions for.
type Athlete struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Sport     string    `json:"sport,omitempty"`
	BirthYear int       `json:"birthYear,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SupersetGroup is an explicit superset: an ordered list of member
// exercise IDs sharing one superset token.
type SupersetGroup struct {
	ID        string   `json:"id"`
	MemberIDs []string `json:"memberExerciseIds"`
}

// SupersetGroups derives explicit superset groups from a session's
// exercise list, in first-appearance order. Entries without a SupersetID
// are not grouped.
func SupersetGroups(exercises []ExerciseEntry) []SupersetGroup {
	var groups []SupersetGroup
	index := make(map[string]int)
	for _, ex := range exercises {
		if ex.SupersetID == "" {
			continue
		}
		i, ok := index[ex.SupersetID]
		if !ok {
			index[ex.SupersetID] = len(groups)
			groups = append(groups, SupersetGroup{ID: ex.SupersetID})
			i = len(groups) - 1
		}
		groups[i].MemberIDs = append(groups[i].MemberIDs, ex.ID)
	}
	return groups
}
