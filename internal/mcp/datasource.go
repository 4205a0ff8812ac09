package mcp

import (
	"context"
	"time"

	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/storage"
	"github.com/claude/repcoach/internal/timeline"
)

// DataSource abstracts the data layer for MCP tools. LocalSource (direct
// database) and HTTPClient (remote via REST API) both satisfy this
// interface.
type DataSource interface {
	GetAthletes(ctx context.Context) ([]models.Athlete, error)
	GetSessions(ctx context.Context, athleteID string) ([]models.WorkoutSession, error)
	GetTimeline(ctx context.Context, athleteID string, now time.Time) ([]models.DailyLoadPoint, error)
	GetProgramOverview(ctx context.Context, athleteID string) ([]storage.ProgramWeek, error)
}

// LocalSource serves MCP tools straight from the database, computing the
// timeline in-process.
type LocalSource struct {
	db *storage.DB
}

// Compile-time check: LocalSource satisfies DataSource.
var _ DataSource = (*LocalSource)(nil)

// NewLocalSource creates a DataSource over a direct database connection.
func NewLocalSource(db *storage.DB) *LocalSource {
	return &LocalSource{db: db}
}

func (l *LocalSource) GetAthletes(ctx context.Context) ([]models.Athlete, error) {
	return l.db.ListAthletes(ctx)
}

func (l *LocalSource) GetSessions(ctx context.Context, athleteID string) ([]models.WorkoutSession, error) {
	return l.db.ListSessions(ctx, athleteID)
}

func (l *LocalSource) GetTimeline(ctx context.Context, athleteID string, now time.Time) ([]models.DailyLoadPoint, error) {
	sessions, err := l.db.ListSessions(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	return timeline.Build(sessions, now), nil
}

func (l *LocalSource) GetProgramOverview(ctx context.Context, athleteID string) ([]storage.ProgramWeek, error) {
	return l.db.ProgramOverview(ctx, athleteID)
}
