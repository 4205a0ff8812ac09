package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/repcoach/internal/classify"
	"github.com/claude/repcoach/internal/endurance"
	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Store is the session/athlete persistence the handlers need.
// *storage.DB satisfies it; handler tests use a fake.
type Store interface {
	ListAthletes(ctx context.Context) ([]models.Athlete, error)
	GetAthlete(ctx context.Context, id string) (*models.Athlete, error)
	CreateAthlete(ctx context.Context, a models.Athlete) (*models.Athlete, error)

	ListSessions(ctx context.Context, athleteID string) ([]models.WorkoutSession, error)
	GetSession(ctx context.Context, id string) (*models.WorkoutSession, error)
	BulkInsertSessions(ctx context.Context, sessions []models.WorkoutSession) (int64, error)
	UpdateSession(ctx context.Context, id string, patch storage.SessionPatch) error
	DeleteSession(ctx context.Context, id string) error
	DeleteAthleteSessions(ctx context.Context, athleteID string) (int64, error)
	MaxMesocycle(ctx context.Context, athleteID string) (int, error)
	ProgramOverview(ctx context.Context, athleteID string) ([]storage.ProgramWeek, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      Store
	classifier classify.Classifier
	log        *slog.Logger
	apiKey     string
	tuning     endurance.Tuning
	router     chi.Router

	// now and newID are swapped out in tests for determinism.
	now   func() time.Time
	newID func() string
}

// New creates a new Server with all routes configured. classifier may be
// nil, which disables exercise classification.
func New(store Store, classifier classify.Classifier, apiKey string, tuning endurance.Tuning, log *slog.Logger) *Server {
	s := &Server{
		store:      store,
		classifier: classifier,
		log:        log,
		apiKey:     apiKey,
		tuning:     tuning,
		router:     chi.NewRouter(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/athletes", s.handleListAthletes)
	s.router.Get("/api/v1/athletes/{id}", s.handleGetAthlete)
	s.router.Get("/api/v1/athletes/{id}/sessions", s.handleListSessions)
	s.router.Get("/api/v1/athletes/{id}/timeline", s.handleTimeline)
	s.router.Get("/api/v1/athletes/{id}/overview", s.handleOverview)

	// Mutations (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/athletes", s.handleCreateAthlete)
		r.Post("/api/v1/sessions", s.handleCreateSession)
		r.Patch("/api/v1/sessions/{id}", s.handlePatchSession)
		r.Delete("/api/v1/sessions/{id}", s.handleDeleteSession)
		r.Delete("/api/v1/athletes/{id}/sessions", s.handleDeleteAthleteSessions)
		r.Post("/api/v1/sessions/duplicate", s.handleDuplicateSessions)
		r.Post("/api/v1/mesocycles/expand", s.handleExpandMesocycle)
		r.Post("/api/v1/mesocycles/import", s.handleImportMesocycle)
		r.Post("/api/v1/athletes/{id}/mesocycles/{n}/mirror", s.handleMirrorWeek)
		r.Post("/api/v1/athletes/{id}/mesocycles/{n}/duplicate", s.handleDuplicateMesocycle)
		r.Post("/api/v1/plans/endurance", s.handleEndurancePlan)
	})
}
