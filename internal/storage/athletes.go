package storage

import (
	"context"
	"fmt"

	"github.com/claude/repcoach/internal/models"
)

// ListAthletes retrieves every registered athlete ordered by name.
func (db *DB) ListAthletes(ctx context.Context) ([]models.Athlete, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, sport, birth_year, created_at FROM athletes ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying athletes: %w", err)
	}
	defer rows.Close()

	var result []models.Athlete
	for rows.Next() {
		var a models.Athlete
		if err := rows.Scan(&a.ID, &a.Name, &a.Sport, &a.BirthYear, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning athlete: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// GetAthlete retrieves one athlete by ID.
func (db *DB) GetAthlete(ctx context.Context, id string) (*models.Athlete, error) {
	var a models.Athlete
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, sport, birth_year, created_at FROM athletes WHERE id = $1`,
		id).Scan(&a.ID, &a.Name, &a.Sport, &a.BirthYear, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying athlete: %w", err)
	}
	return &a, nil
}

// CreateAthlete inserts a new athlete and returns it with the
// store-assigned creation time.
func (db *DB) CreateAthlete(ctx context.Context, a models.Athlete) (*models.Athlete, error) {
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO athletes (id, name, sport, birth_year)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		a.ID, a.Name, a.Sport, a.BirthYear).Scan(&a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting athlete: %w", err)
	}
	return &a, nil
}
