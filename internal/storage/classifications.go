package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetClassification looks up a cached muscle-group category for a
// normalized exercise name. The second return is false on a cache miss.
func (db *DB) GetClassification(ctx context.Context, normalizedName string) (string, bool, error) {
	var category string
	err := db.Pool.QueryRow(ctx,
		`SELECT category FROM exercise_classifications WHERE normalized_name = $1`,
		normalizedName).Scan(&category)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying classification: %w", err)
	}
	return category, true, nil
}

// PutClassification caches a classifier result, overwriting any stale
// entry for the same name.
func (db *DB) PutClassification(ctx context.Context, normalizedName, category string) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercise_classifications (normalized_name, category)
		 VALUES ($1, $2)
		 ON CONFLICT (normalized_name) DO UPDATE SET category = EXCLUDED.category`,
		normalizedName, category)
	if err != nil {
		return fmt.Errorf("caching classification: %w", err)
	}
	return nil
}
