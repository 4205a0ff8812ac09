package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepCoach", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepCoach training data server. Query athletes, workout sessions, training-load timelines (fitness/fatigue/form), and program overviews."),
	)

	h := &handlers{ds: ds, log: log, now: time.Now}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetAthletes, Handler: h.getAthletes},
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
		server.ServerTool{Tool: toolGetTrainingTimeline, Handler: h.getTrainingTimeline},
		server.ServerTool{Tool: toolGetCurrentForm, Handler: h.getCurrentForm},
		server.ServerTool{Tool: toolGetProgramOverview, Handler: h.getProgramOverview},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resAthletes, Handler: h.athletesResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
	now func() time.Time
}

// --- Resource definitions ---

var resAthletes = mcp.NewResource(
	"repcoach://athletes",
	"Athletes",
	mcp.WithResourceDescription("All registered athletes with sport and birth year"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) athletesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	athletes, err := h.ds.GetAthletes(ctx)
	if err != nil {
		h.log.Error("mcp athletes resource", "error", err)
		return nil, err
	}
	return jsonResource(req.Params.URI, athletes)
}
