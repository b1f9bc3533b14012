package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/fitmyself/internal/models"
)

// HTTPClient implements DataSource by calling the FitMyself REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but data
// lives on the remote server (accessed over Tailscale).
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

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, payload any) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, data)
	}

	return data, nil
}

func dateParams(date string) url.Values {
	v := url.Values{}
	if date != "" {
		v.Set("date", date)
	}
	return v
}

func (c *HTTPClient) Stats(ctx context.Context, _ int) (*models.UserStats, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/stats", nil, nil)
	if err != nil {
		return nil, err
	}

	var st models.UserStats
	if err := json.Unmarshal(body, &st); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &st, nil
}

func (c *HTTPClient) DailyPlan(ctx context.Context, _ int, date string) (*DaySnapshot, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/today", dateParams(date), nil)
	if err != nil {
		return nil, err
	}

	var snap DaySnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("httpclient: decode today: %w", err)
	}
	return &snap, nil
}

func (c *HTTPClient) LogWater(ctx context.Context, _ int, date string, liters float64) (*DayUpdate, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/today/water", nil,
		map[string]any{"liters": liters, "date": date})
	if err != nil {
		return nil, err
	}

	var update DayUpdate
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, fmt.Errorf("httpclient: decode water update: %w", err)
	}
	return &update, nil
}

func (c *HTTPClient) LogSleep(ctx context.Context, _ int, date string, hours float64) (*DayUpdate, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/today/sleep", nil,
		map[string]any{"hours": hours, "date": date})
	if err != nil {
		return nil, err
	}

	var update DayUpdate
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, fmt.Errorf("httpclient: decode sleep update: %w", err)
	}
	return &update, nil
}

func (c *HTTPClient) CompleteTask(ctx context.Context, _ int, date string, kind models.TaskKind) (*DayUpdate, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/today/complete", nil,
		map[string]any{"task": kind, "date": date})
	if err != nil {
		return nil, err
	}

	var update DayUpdate
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, fmt.Errorf("httpclient: decode completion: %w", err)
	}
	return &update, nil
}

func (c *HTTPClient) Chat(ctx context.Context, _ int, message string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/chat", nil,
		map[string]string{"message": message})
	if err != nil {
		return "", err
	}

	var resp struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("httpclient: decode chat reply: %w", err)
	}
	return resp.Reply, nil
}
