package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/claude/repcoach/internal/models"
)

const sessionColumns = `id, athlete_id, session_date, status, activity_type,
	 duration_min, session_rpe, distance_km, drills, main_set, exercises,
	 volume_load_kg, normalized_load, mesocycle, week, category, program_name, scheduled_day`

// ListSessions retrieves all sessions for an athlete in chronological order.
func (db *DB) ListSessions(ctx context.Context, athleteID string) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE athlete_id = $1
		 ORDER BY session_date ASC`,
		athleteID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetSession retrieves a single session by ID.
func (db *DB) GetSession(ctx context.Context, id string) (*models.WorkoutSession, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	s, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return &s, nil
}

// BulkInsertSessions inserts all sessions in one multi-row statement, so
// an expanded mesocycle is written atomically: either every generated
// session lands or none do.
func (db *DB) BulkInsertSessions(ctx context.Context, sessions []models.WorkoutSession) (int64, error) {
	if len(sessions) == 0 {
		return 0, nil
	}

	const cols = 18
	query := `INSERT INTO sessions (` + sessionColumns + `) VALUES `
	args := make([]any, 0, len(sessions)*cols)
	valueStrings := make([]string, 0, len(sessions))

	for i, s := range sessions {
		base := i * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		exercises, err := json.Marshal(s.Exercises)
		if err != nil {
			return 0, fmt.Errorf("encoding exercises: %w", err)
		}
		args = append(args, s.ID, s.AthleteID, s.Date, s.Status, s.ActivityType,
			s.DurationMin, s.SessionRPE, s.DistanceKm, s.Drills, s.MainSet, exercises,
			s.VolumeLoadKg, s.NormalizedLoad, s.Meta.Mesocycle, s.Meta.Week,
			s.Meta.Category, s.Meta.ProgramName, s.Meta.ScheduledDay)
	}

	query += strings.Join(valueStrings, ",")

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SessionPatch is a partial session update; nil fields are left untouched.
type SessionPatch struct {
	Date           *time.Time
	Status         *models.Status
	DurationMin    *float64
	SessionRPE     *float64
	DistanceKm     *float64
	VolumeLoadKg   *float64
	NormalizedLoad *float64
	Exercises      *[]models.ExerciseEntry
}

// UpdateSession applies a partial update to one session.
func (db *DB) UpdateSession(ctx context.Context, id string, patch SessionPatch) error {
	var sets []string
	var args []any
	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Date != nil {
		add("session_date", *patch.Date)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.DurationMin != nil {
		add("duration_min", *patch.DurationMin)
	}
	if patch.SessionRPE != nil {
		add("session_rpe", *patch.SessionRPE)
	}
	if patch.DistanceKm != nil {
		add("distance_km", *patch.DistanceKm)
	}
	if patch.VolumeLoadKg != nil {
		add("volume_load_kg", *patch.VolumeLoadKg)
	}
	if patch.NormalizedLoad != nil {
		add("normalized_load", *patch.NormalizedLoad)
	}
	if patch.Exercises != nil {
		encoded, err := json.Marshal(*patch.Exercises)
		if err != nil {
			return fmt.Errorf("encoding exercises: %w", err)
		}
		add("exercises", encoded)
	}
	if len(sets) == 0 {
		return nil
	}
	add("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf("UPDATE sessions SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s not found", id)
	}
	return nil
}

// DeleteSession removes one session.
func (db *DB) DeleteSession(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s not found", id)
	}
	return nil
}

// DeleteAthleteSessions removes every session of one athlete. Returns
// the number deleted.
func (db *DB) DeleteAthleteSessions(ctx context.Context, athleteID string) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM sessions WHERE athlete_id = $1`, athleteID)
	if err != nil {
		return 0, fmt.Errorf("deleting athlete sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MaxMesocycle returns the highest mesocycle number among an athlete's
// sessions, zero when there are none.
func (db *DB) MaxMesocycle(ctx context.Context, athleteID string) (int, error) {
	var max int
	err := db.Pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(mesocycle), 0) FROM sessions WHERE athlete_id = $1`,
		athleteID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("querying max mesocycle: %w", err)
	}
	return max, nil
}

func scanSession(row interface{ Scan(dest ...any) error }) (models.WorkoutSession, error) {
	var s models.WorkoutSession
	var exercises []byte
	err := row.Scan(&s.ID, &s.AthleteID, &s.Date, &s.Status, &s.ActivityType,
		&s.DurationMin, &s.SessionRPE, &s.DistanceKm, &s.Drills, &s.MainSet, &exercises,
		&s.VolumeLoadKg, &s.NormalizedLoad, &s.Meta.Mesocycle, &s.Meta.Week,
		&s.Meta.Category, &s.Meta.ProgramName, &s.Meta.ScheduledDay)
	if err != nil {
		return s, fmt.Errorf("scanning session: %w", err)
	}
	if len(exercises) > 0 {
		if err := json.Unmarshal(exercises, &s.Exercises); err != nil {
			return s, fmt.Errorf("decoding exercises: %w", err)
		}
	}
	return s, nil
}
