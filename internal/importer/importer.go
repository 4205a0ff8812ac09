// Package importer loads workout-session export files into the
// database. An export file is a JSON document with an athlete ID and a
// list of sessions; the importer scans a directory of them, skips files
// it has already ingested (tracked in a local SQLite state database by
// path, size and content hash), derives missing load values, and bulk
// inserts the rest.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/repcoach/internal/load"
	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/storage"
	"github.com/google/uuid"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	SessionsInserted int64
}

// ExportFile is the on-disk format of one session export.
type ExportFile struct {
	AthleteID string                  `json:"athleteId"`
	Sessions  []models.WorkoutSession `json:"sessions"`
}

// Importer reads session export files from a directory and inserts
// their sessions into the database.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil, which disables
// duplicate-file tracking (every file is processed).
func New(db *storage.DB, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, log: log, dryRun: dryRun}
}

// Import processes all .json export files under dir. Files that fail to
// parse are logged and skipped rather than aborting the run.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return &imp.stats, fmt.Errorf("scanning %s: %w", dir, err)
	}

	for _, f := range files {
		if err := imp.importFile(ctx, f); err != nil {
			return &imp.stats, err
		}
	}
	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		imp.log.Warn("stat failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	var hash string
	if imp.state != nil {
		hash, err = HashFile(path)
		if err != nil {
			imp.log.Warn("hash failed", "file", path, "error", err)
			imp.stats.FilesErrored++
			return nil
		}
		done, err := imp.state.IsImported(path, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking import state for %s: %w", path, err)
		}
		if done {
			imp.stats.FilesSkipped++
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		imp.log.Warn("read failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	var export ExportFile
	if err := json.Unmarshal(data, &export); err != nil {
		imp.log.Warn("parse failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}
	if export.AthleteID == "" {
		imp.log.Warn("export missing athlete", "file", path)
		imp.stats.FilesErrored++
		return nil
	}
	if len(export.Sessions) == 0 {
		imp.stats.FilesSkipped++
		return nil
	}

	sessions := prepareSessions(export)

	imp.stats.FilesProcessed++
	if imp.dryRun {
		imp.stats.SessionsInserted += int64(len(sessions))
		return nil
	}

	inserted, err := imp.db.BulkInsertSessions(ctx, sessions)
	if err != nil {
		return fmt.Errorf("inserting sessions from %s: %w", filepath.Base(path), err)
	}
	imp.stats.SessionsInserted += inserted

	if imp.state != nil {
		if err := imp.state.MarkImported(path, info.Size(), hash); err != nil {
			return fmt.Errorf("recording import of %s: %w", path, err)
		}
	}
	return nil
}

// prepareSessions normalizes exported sessions for insertion: the file's
// athlete wins over any per-session value, missing identifiers are
// generated, and derived loads are filled in where absent.
func prepareSessions(export ExportFile) []models.WorkoutSession {
	sessions := make([]models.WorkoutSession, len(export.Sessions))
	for i, s := range export.Sessions {
		s.AthleteID = export.AthleteID
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if s.Status == "" {
			s.Status = models.StatusCompleted
		}
		for j := range s.Exercises {
			if s.Exercises[j].ID == "" {
				s.Exercises[j].ID = uuid.NewString()
			}
		}
		if len(s.Exercises) > 0 && s.VolumeLoadKg == nil {
			volume := load.VolumeLoad(s.Exercises)
			s.VolumeLoadKg = &volume
		}
		if s.NormalizedLoad == nil {
			normalized := load.NormalizedLoad(s)
			s.NormalizedLoad = &normalized
		}
		sessions[i] = s
	}
	return sessions
}
