// Package oddsfeed fetches quoted lines from the upstream odds provider and
// normalizes them into the internal event model. The payload is treated as
// untrusted: missing markets, outcomes, or points are tolerated and malformed
// quotes are dropped rather than failing the slice.
package oddsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hetulpatel/OddsEdge/internal/logging"
	"github.com/hetulpatel/OddsEdge/internal/models"
)

const defaultBaseURL = "https://api.the-odds-api.com/v4/sports"

// Client talks to the odds feed API.
type Client struct {
	baseURL    string
	apiKey     string
	regions    string
	httpClient *http.Client
}

// Config provides optional overrides.
type Config struct {
	BaseURL string
	APIKey  string
	Regions string
	Timeout time.Duration
}

// NewClient builds a configured odds feed client. The default timeout bounds
// each fetch at 10 seconds; a slow sport is abandoned, not waited on.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	regions := cfg.Regions
	if regions == "" {
		regions = "us"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		regions: regions,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchOdds retrieves the current slate for one sport and the requested
// market set.
func (c *Client) FetchOdds(ctx context.Context, sport string, markets []models.MarketType) ([]models.Event, error) {
	u, err := url.Parse(fmt.Sprintf("%s/%s/odds", strings.TrimRight(c.baseURL, "/"), url.PathEscape(sport)))
	if err != nil {
		return nil, fmt.Errorf("build odds url: %w", err)
	}
	q := u.Query()
	q.Set("apiKey", c.apiKey)
	q.Set("regions", c.regions)
	q.Set("markets", joinMarketKeys(markets))
	q.Set("oddsFormat", "american")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	var raw []feedEvent
	if err := c.do(req, &raw); err != nil {
		return nil, fmt.Errorf("fetch odds for %s: %w", sport, err)
	}

	events := make([]models.Event, 0, len(raw))
	for _, fe := range raw {
		events = append(events, normalizeEvent(sport, fe))
	}
	return events, nil
}

func (c *Client) do(req *http.Request, dst any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return json.NewDecoder(resp.Body).Decode(dst)
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return fmt.Errorf("odds feed %s: %s", resp.Status, string(body))
}

func joinMarketKeys(markets []models.MarketType) string {
	keys := make([]string, 0, len(markets))
	for _, m := range markets {
		switch m {
		case models.MarketMoneyline:
			keys = append(keys, "h2h")
		case models.MarketSpread:
			keys = append(keys, "spreads")
		case models.MarketTotal:
			keys = append(keys, "totals")
		}
	}
	if len(keys) == 0 {
		keys = []string{"h2h", "spreads", "totals"}
	}
	return strings.Join(keys, ",")
}

// normalizeEvent converts a wire event, dropping malformed quotes (missing
// name or price) and empty markets along the way.
func normalizeEvent(sport string, fe feedEvent) models.Event {
	ev := models.Event{
		EventID:      fe.ID,
		Sport:        sport,
		HomeTeam:     fe.HomeTeam,
		AwayTeam:     fe.AwayTeam,
		CommenceTime: fe.CommenceTime,
	}
	for _, fb := range fe.Bookmakers {
		if fb.Key == "" {
			continue
		}
		book := models.Bookmaker{Key: fb.Key, Title: fb.Title}
		for _, fm := range fb.Markets {
			key, ok := marketKeyMap[fm.Key]
			if !ok {
				logging.Debugf("[oddsfeed] skip unknown market key %q", fm.Key)
				continue
			}
			market := models.Market{Key: models.MarketType(key)}
			for _, fo := range fm.Outcomes {
				if fo.Name == "" || fo.Price == nil {
					continue
				}
				q := models.Quote{Name: fo.Name, Price: *fo.Price, Point: fo.Point}
				if !q.ValidPrice() {
					continue
				}
				market.Outcomes = append(market.Outcomes, q)
			}
			if len(market.Outcomes) > 0 {
				book.Markets = append(book.Markets, market)
			}
		}
		if len(book.Markets) > 0 {
			ev.Bookmakers = append(ev.Bookmakers, book)
		}
	}
	return ev
}
