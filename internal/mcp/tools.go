package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetAthletes = mcp.NewTool("get_athletes",
	mcp.WithDescription("List all registered athletes with their sport and birth year."),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("List an athlete's workout sessions in chronological order: planned and completed, with exercises, loads, and program metadata."),
	mcp.WithString("athlete_id", mcp.Required(), mcp.Description("Athlete identifier (UUID)")),
)

var toolGetTrainingTimeline = mcp.NewTool("get_training_timeline",
	mcp.WithDescription("Daily training-load timeline for an athlete: per-day load plus fitness (chronic load), fatigue (acute load), and form (fitness minus fatigue). One point per day from the first completed session through today."),
	mcp.WithString("athlete_id", mcp.Required(), mcp.Description("Athlete identifier (UUID)")),
)

var toolGetCurrentForm = mcp.NewTool("get_current_form",
	mcp.WithDescription("Today's fitness, fatigue, and form values for an athlete. Negative form means accumulated fatigue exceeds fitness; positive means the athlete is fresh."),
	mcp.WithString("athlete_id", mcp.Required(), mcp.Description("Athlete identifier (UUID)")),
)

var toolGetProgramOverview = mcp.NewTool("get_program_overview",
	mcp.WithDescription("Per-week program summary for an athlete: planned vs completed session counts and total completed load, grouped by mesocycle and week."),
	mcp.WithString("athlete_id", mcp.Required(), mcp.Description("Athlete identifier (UUID)")),
)

// --- Tool handlers ---

func (h *handlers) getAthletes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	athletes, err := h.ds.GetAthletes(ctx)
	if err != nil {
		h.log.Error("mcp get_athletes", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolResultJSON(athletes)
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	athleteID, err := req.RequireString("athlete_id")
	if err != nil {
		return mcp.NewToolResultError("athlete_id parameter is required"), nil
	}

	sessions, err := h.ds.GetSessions(ctx, athleteID)
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolResultJSON(sessions)
}

func (h *handlers) getTrainingTimeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	athleteID, err := req.RequireString("athlete_id")
	if err != nil {
		return mcp.NewToolResultError("athlete_id parameter is required"), nil
	}

	points, err := h.ds.GetTimeline(ctx, athleteID, h.now())
	if err != nil {
		h.log.Error("mcp get_training_timeline", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolResultJSON(points)
}

func (h *handlers) getCurrentForm(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	athleteID, err := req.RequireString("athlete_id")
	if err != nil {
		return mcp.NewToolResultError("athlete_id parameter is required"), nil
	}

	points, err := h.ds.GetTimeline(ctx, athleteID, h.now())
	if err != nil {
		h.log.Error("mcp get_current_form", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if len(points) == 0 {
		return mcp.NewToolResultError("no completed sessions for this athlete"), nil
	}
	latest := points[len(points)-1]
	return toolResultJSON(map[string]any{
		"date":    latest.Date.Format("2006-01-02"),
		"fitness": latest.Fitness,
		"fatigue": latest.Fatigue,
		"form":    latest.Form,
	})
}

func (h *handlers) getProgramOverview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	athleteID, err := req.RequireString("athlete_id")
	if err != nil {
		return mcp.NewToolResultError("athlete_id parameter is required"), nil
	}

	weeks, err := h.ds.GetProgramOverview(ctx, athleteID)
	if err != nil {
		h.log.Error("mcp get_program_overview", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolResultJSON(weeks)
}

func toolResultJSON(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
