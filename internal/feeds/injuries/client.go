// Package injuries consumes the read-only injury feed. The engine only
// surfaces report counts next to its results; a failed fetch is logged and
// skipped, never fatal.
package injuries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.the-odds-api.com/v4/sports"

// Report is one player's injury status for a team.
type Report struct {
	Team     string `json:"team"`
	Player   string `json:"player"`
	Status   string `json:"status"`
	Position string `json:"position"`
}

// Client talks to the injury feed.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config provides optional overrides.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchReports retrieves current injury reports for one sport.
func (c *Client) FetchReports(ctx context.Context, sport string) ([]Report, error) {
	u, err := url.Parse(fmt.Sprintf("%s/%s/injuries", strings.TrimRight(c.baseURL, "/"), url.PathEscape(sport)))
	if err != nil {
		return nil, fmt.Errorf("build injuries url: %w", err)
	}
	q := u.Query()
	q.Set("apiKey", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch injuries for %s: %w", sport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("injury feed %s: %s", resp.Status, string(body))
	}

	var reports []Report
	if err := json.NewDecoder(resp.Body).Decode(&reports); err != nil {
		return nil, err
	}
	return reports, nil
}
