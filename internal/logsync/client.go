package logsync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claude/fitmyself/internal/models"
)

// syncEntry and syncResponse mirror the server's sync wire shapes without
// importing the server package (which would pull in chi and tsnet).
type syncEntry struct {
	Kind     string    `json:"kind"`
	Amount   float64   `json:"amount,omitempty"`
	Task     string    `json:"task,omitempty"`
	Date     string    `json:"date"`
	LoggedAt time.Time `json:"logged_at"`
}

type syncRequest struct {
	Entries []syncEntry `json:"entries"`
}

// SyncResult is the server's summary of one replayed batch.
type SyncResult struct {
	Applied int              `json:"applied"`
	Skipped int              `json:"skipped"`
	Reward  int              `json:"reward"`
	Stats   models.UserStats `json:"stats"`
}

// Client sends queued entries to the FitMyself server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a sync client for the given server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SendBatch POSTs a batch of entries to the sync endpoint. Retries up to 3
// times with exponential backoff on failure.
func (c *Client) SendBatch(entries []Entry) (*SyncResult, error) {
	req := syncRequest{Entries: make([]syncEntry, 0, len(entries))}
	for _, e := range entries {
		req.Entries = append(req.Entries, syncEntry{
			Kind: e.Kind, Amount: e.Amount, Task: e.Task,
			Date: e.Date, LoggedAt: e.LoggedAt,
		})
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling batch: %w", err)
	}

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		httpReq, err := http.NewRequest(http.MethodPost, c.serverURL+"/api/v1/sync", bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			var result SyncResult
			if err := json.Unmarshal(body, &result); err != nil {
				return nil, fmt.Errorf("decoding sync response: %w", err)
			}
			return &result, nil
		}
		lastErr = fmt.Errorf("sync failed (status %d): %s", resp.StatusCode, body)

		// Client errors won't succeed on retry
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, lastErr
		}
	}

	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}
