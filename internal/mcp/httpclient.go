package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/storage"
)

// HTTPClient implements DataSource by calling the RepCoach REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) GetAthletes(ctx context.Context) ([]models.Athlete, error) {
	body, err := c.get(ctx, "/api/v1/athletes")
	if err != nil {
		return nil, err
	}

	var athletes []models.Athlete
	if err := json.Unmarshal(body, &athletes); err != nil {
		return nil, fmt.Errorf("httpclient: decode athletes: %w", err)
	}
	return athletes, nil
}

func (c *HTTPClient) GetSessions(ctx context.Context, athleteID string) ([]models.WorkoutSession, error) {
	body, err := c.get(ctx, "/api/v1/athletes/"+athleteID+"/sessions")
	if err != nil {
		return nil, err
	}

	var sessions []models.WorkoutSession
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("httpclient: decode sessions: %w", err)
	}
	return sessions, nil
}

// GetTimeline fetches the server-computed timeline; the server anchors
// it to its own clock, so now is unused in remote mode.
func (c *HTTPClient) GetTimeline(ctx context.Context, athleteID string, _ time.Time) ([]models.DailyLoadPoint, error) {
	body, err := c.get(ctx, "/api/v1/athletes/"+athleteID+"/timeline")
	if err != nil {
		return nil, err
	}

	var points []models.DailyLoadPoint
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("httpclient: decode timeline: %w", err)
	}
	return points, nil
}

func (c *HTTPClient) GetProgramOverview(ctx context.Context, athleteID string) ([]storage.ProgramWeek, error) {
	body, err := c.get(ctx, "/api/v1/athletes/"+athleteID+"/overview")
	if err != nil {
		return nil, err
	}

	var weeks []storage.ProgramWeek
	if err := json.Unmarshal(body, &weeks); err != nil {
		return nil, fmt.Errorf("httpclient: decode overview: %w", err)
	}
	return weeks, nil
}
