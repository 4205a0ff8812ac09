package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/claude/repcoach/internal/load"
	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/storage"
	"github.com/claude/repcoach/internal/timeline"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleListAthletes(w http.ResponseWriter, r *http.Request) {
	athletes, err := s.store.ListAthletes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, athletes)
}

func (s *Server) handleCreateAthlete(w http.ResponseWriter, r *http.Request) {
	var a models.Athlete
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if a.Name == "" {
		writeError(w, models.Invalidf("name", "athlete name is required"))
		return
	}
	a.ID = s.newID()

	created, err := s.store.CreateAthlete(r.Context(), a)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetAthlete(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := athleteParam(w, r)
	if !ok {
		return
	}
	athlete, err := s.store.GetAthlete(r.Context(), athleteID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "athlete not found"})
		return
	}
	writeJSON(w, http.StatusOK, athlete)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := athleteParam(w, r)
	if !ok {
		return
	}
	sessions, err := s.store.ListSessions(r.Context(), athleteID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := athleteParam(w, r)
	if !ok {
		return
	}
	sessions, err := s.store.ListSessions(r.Context(), athleteID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, timeline.Build(sessions, s.now()))
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := athleteParam(w, r)
	if !ok {
		return
	}
	overview, err := s.store.ProgramOverview(r.Context(), athleteID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var session models.WorkoutSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if session.AthleteID == "" {
		writeError(w, models.Invalidf("athleteId", "athlete is required"))
		return
	}
	if session.Date.IsZero() {
		writeError(w, models.Invalidf("date", "session date is required"))
		return
	}
	if session.Status == "" {
		session.Status = models.StatusCompleted
	}
	if session.ID == "" {
		session.ID = s.newID()
	}
	for i := range session.Exercises {
		if session.Exercises[i].ID == "" {
			session.Exercises[i].ID = s.newID()
		}
	}

	s.deriveLoads(&session)
	s.classifyExercises(r.Context(), session.Exercises)

	if _, err := s.store.BulkInsertSessions(r.Context(), []models.WorkoutSession{session}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// sessionPatchBody mirrors the updatable session fields on the wire.
type sessionPatchBody struct {
	Date           *time.Time              `json:"date"`
	Status         *models.Status          `json:"status"`
	DurationMin    *float64                `json:"durationMinutes"`
	SessionRPE     *float64                `json:"sessionRpe"`
	DistanceKm     *float64                `json:"distanceKm"`
	NormalizedLoad *float64                `json:"normalizedLoad"`
	Exercises      *[]models.ExerciseEntry `json:"exercises"`
}

func (s *Server) handlePatchSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionParam(w, r)
	if !ok {
		return
	}
	var body sessionPatchBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	current, err := s.store.GetSession(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}

	patch := storage.SessionPatch{
		Date:           body.Date,
		Status:         body.Status,
		DurationMin:    body.DurationMin,
		SessionRPE:     body.SessionRPE,
		DistanceKm:     body.DistanceKm,
		NormalizedLoad: body.NormalizedLoad,
		Exercises:      body.Exercises,
	}

	// Recompute derived loads when the inputs they depend on change.
	if body.Exercises != nil || body.Status != nil || body.SessionRPE != nil || body.DurationMin != nil {
		merged := *current
		if body.Exercises != nil {
			merged.Exercises = *body.Exercises
		}
		if body.Status != nil {
			merged.Status = *body.Status
		}
		if body.SessionRPE != nil {
			merged.SessionRPE = body.SessionRPE
		}
		if body.DurationMin != nil {
			merged.DurationMin = body.DurationMin
		}
		merged.NormalizedLoad = body.NormalizedLoad
		s.deriveLoads(&merged)
		patch.VolumeLoadKg = merged.VolumeLoadKg
		patch.NormalizedLoad = merged.NormalizedLoad
	}

	if err := s.store.UpdateSession(r.Context(), id, patch); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionParam(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteSession(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleDeleteAthleteSessions(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := athleteParam(w, r)
	if !ok {
		return
	}
	deleted, err := s.store.DeleteAthleteSessions(r.Context(), athleteID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

// deriveLoads fills in the derived volume and normalized load of a
// session. An explicit normalized load on the way in is authoritative
// and kept as-is.
func (s *Server) deriveLoads(session *models.WorkoutSession) {
	if len(session.Exercises) > 0 {
		volume := load.VolumeLoad(session.Exercises)
		session.VolumeLoadKg = &volume
	}
	if session.NormalizedLoad == nil {
		normalized := load.NormalizedLoad(*session)
		session.NormalizedLoad = &normalized
	}
}

// classifyExercises resolves muscle-group categories best-effort: a
// classifier failure is logged, never surfaced to the athlete logging a
// session.
func (s *Server) classifyExercises(ctx context.Context, exercises []models.ExerciseEntry) {
	if s.classifier == nil {
		return
	}
	for _, ex := range exercises {
		if ex.Name == "" {
			continue
		}
		if _, err := s.classifier.ClassifyExercise(ctx, ex.Name); err != nil {
			s.log.Warn("exercise classification failed", "exercise", ex.Name, "error", err)
		}
	}
}

func athleteParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid athlete ID"})
		return "", false
	}
	return id, true
}

func sessionParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return "", false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps validation failures to 400 and everything else —
// store errors included — to 500 with the underlying message preserved.
func writeError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
