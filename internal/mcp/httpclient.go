package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// HTTPClient implements DataSource by calling the LiftLog REST API.
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

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
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

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

// User scoping is handled server-side by the identity middleware, so the
// userID arguments are ignored on this path.

func (c *HTTPClient) QuerySessions(ctx context.Context, start, end time.Time, _ int, programFilter string) ([]models.SessionRow, error) {
	params := timeParams(start, end)
	if programFilter != "" {
		params.Set("program", programFilter)
	}

	body, err := c.get(ctx, "/api/v1/sessions", params)
	if err != nil {
		return nil, err
	}

	var rows []models.SessionRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode sessions: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) QueryPersonalRecords(ctx context.Context, _ int) ([]models.PersonalRecordRow, error) {
	body, err := c.get(ctx, "/api/v1/records", nil)
	if err != nil {
		return nil, err
	}

	var rows []models.PersonalRecordRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode records: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) QueryGoals(ctx context.Context, _ int) ([]models.GoalRow, error) {
	body, err := c.get(ctx, "/api/v1/goals", nil)
	if err != nil {
		return nil, err
	}

	var rows []models.GoalRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode goals: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) QueryMeasurements(ctx context.Context, start, end time.Time, _ int) ([]models.MeasurementRow, error) {
	body, err := c.get(ctx, "/api/v1/measurements", timeParams(start, end))
	if err != nil {
		return nil, err
	}

	var rows []models.MeasurementRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode measurements: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) ListProgramNames(ctx context.Context, _ int) ([]string, error) {
	body, err := c.get(ctx, "/api/v1/program-names", nil)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, fmt.Errorf("httpclient: decode program names: %w", err)
	}
	return names, nil
}
