package storage

import (
	"context"
	"fmt"
)

// ProgramWeek holds aggregated session stats for one (mesocycle, week)
// pair of an athlete's training history.
type ProgramWeek struct {
	Mesocycle   int     `json:"mesocycle"`
	Week        int     `json:"week"`
	ProgramName string  `json:"program_name,omitempty"`
	Sessions    int     `json:"sessions"`
	Completed   int     `json:"completed"`
	TotalLoad   float64 `json:"total_load"`
}

// ProgramOverview returns per-week aggregates across an athlete's
// mesocycles: session counts, completion counts and summed normalized
// load, newest block first.
func (db *DB) ProgramOverview(ctx context.Context, athleteID string) ([]ProgramWeek, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT mesocycle,
		        week,
		        COALESCE(MAX(program_name), ''),
		        COUNT(*)::int,
		        COUNT(*) FILTER (WHERE status = 'completed')::int,
		        COALESCE(SUM(normalized_load), 0)
		 FROM sessions
		 WHERE athlete_id = $1
		 GROUP BY mesocycle, week
		 ORDER BY mesocycle DESC, week ASC`,
		athleteID)
	if err != nil {
		return nil, fmt.Errorf("querying program overview: %w", err)
	}
	defer rows.Close()

	var result []ProgramWeek
	for rows.Next() {
		var w ProgramWeek
		if err := rows.Scan(&w.Mesocycle, &w.Week, &w.ProgramName, &w.Sessions, &w.Completed, &w.TotalLoad); err != nil {
			return nil, fmt.Errorf("scanning program week: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}
