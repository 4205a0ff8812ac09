package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/repcoach/internal/endurance"
	"github.com/claude/repcoach/internal/mesocycle"
	"github.com/claude/repcoach/internal/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleExpandMesocycle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AthleteID string                 `json:"athleteId"`
		Config    models.MesocycleConfig `json:"config"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	max, err := s.store.MaxMesocycle(r.Context(), body.AthleteID)
	if err != nil {
		writeError(w, err)
		return
	}
	sessions, err := mesocycle.Expand(body.Config, body.AthleteID, max+1, s.newID)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := s.store.BulkInsertSessions(r.Context(), sessions); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"mesocycle": max + 1,
		"created":   len(sessions),
		"sessions":  sessions,
	})
}

func (s *Server) handleDuplicateSessions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs        []string `json:"ids"`
		TargetDate string   `json:"targetDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(body.IDs) == 0 {
		writeError(w, models.Invalidf("ids", "at least one session is required"))
		return
	}
	target, err := time.Parse(time.DateOnly, body.TargetDate)
	if err != nil {
		writeError(w, models.Invalidf("targetDate", "%q is not a valid date", body.TargetDate))
		return
	}

	sessions := make([]models.WorkoutSession, 0, len(body.IDs))
	for _, id := range body.IDs {
		sess, err := s.store.GetSession(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		sessions = append(sessions, *sess)
	}

	clones := mesocycle.Duplicate(sessions, target, s.newID)
	if _, err := s.store.BulkInsertSessions(r.Context(), clones); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"created": len(clones), "sessions": clones})
}

func (s *Server) handleMirrorWeek(w http.ResponseWriter, r *http.Request) {
	athleteID, meso, ok := mesocycleParams(w, r)
	if !ok {
		return
	}
	sessions, err := s.store.ListSessions(r.Context(), athleteID)
	if err != nil {
		writeError(w, err)
		return
	}
	clones := mesocycle.MirrorWeek(sessions, meso, s.newID)
	if len(clones) == 0 {
		writeError(w, models.Invalidf("mesocycle", "mesocycle %d has no week-1 sessions to mirror", meso))
		return
	}
	if _, err := s.store.BulkInsertSessions(r.Context(), clones); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"created": len(clones), "sessions": clones})
}

func (s *Server) handleDuplicateMesocycle(w http.ResponseWriter, r *http.Request) {
	athleteID, meso, ok := mesocycleParams(w, r)
	if !ok {
		return
	}
	sessions, err := s.store.ListSessions(r.Context(), athleteID)
	if err != nil {
		writeError(w, err)
		return
	}
	clones := mesocycle.DuplicateToNext(sessions, meso, s.newID)
	if len(clones) == 0 {
		writeError(w, models.Invalidf("mesocycle", "mesocycle %d has no sessions", meso))
		return
	}
	if _, err := s.store.BulkInsertSessions(r.Context(), clones); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"mesocycle": clones[0].Meta.Mesocycle,
		"created":   len(clones),
	})
}

func (s *Server) handleImportMesocycle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FromAthleteID string `json:"fromAthleteId"`
		ToAthleteID   string `json:"toAthleteId"`
		Mesocycle     int    `json:"mesocycle"`
		KeepData      bool   `json:"keepData"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if body.FromAthleteID == "" || body.ToAthleteID == "" {
		writeError(w, models.Invalidf("athleteId", "source and destination athletes are required"))
		return
	}

	all, err := s.store.ListSessions(r.Context(), body.FromAthleteID)
	if err != nil {
		writeError(w, err)
		return
	}
	var source []models.WorkoutSession
	for _, sess := range all {
		if sess.Meta.Mesocycle == body.Mesocycle {
			source = append(source, sess)
		}
	}
	if len(source) == 0 {
		writeError(w, models.Invalidf("mesocycle", "mesocycle %d has no sessions for the source athlete", body.Mesocycle))
		return
	}

	max, err := s.store.MaxMesocycle(r.Context(), body.ToAthleteID)
	if err != nil {
		writeError(w, err)
		return
	}
	clones := mesocycle.Import(source, body.ToAthleteID, max+1, body.KeepData, s.now(), s.newID)
	if _, err := s.store.BulkInsertSessions(r.Context(), clones); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"mesocycle": max + 1,
		"created":   len(clones),
	})
}

func (s *Server) handleEndurancePlan(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AthleteID string                     `json:"athleteId"`
		Config    models.EndurancePlanConfig `json:"config"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	max, err := s.store.MaxMesocycle(r.Context(), body.AthleteID)
	if err != nil {
		writeError(w, err)
		return
	}
	sessions, err := endurance.Generate(body.Config, body.AthleteID, max+1, s.tuning, s.now(), s.newID)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := s.store.BulkInsertSessions(r.Context(), sessions); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"mesocycle": max + 1,
		"created":   len(sessions),
		"sessions":  sessions,
	})
}

func mesocycleParams(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	athleteID, ok := athleteParam(w, r)
	if !ok {
		return "", 0, false
	}
	meso, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || meso < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid mesocycle number"})
		return "", 0, false
	}
	return athleteID, meso, true
}
