package oddsfeed

import "time"

// Wire types for the upstream odds feed. Every field an upstream may omit is
// optional here; normalization decides what to keep.

type feedEvent struct {
	ID           string          `json:"id"`
	SportKey     string          `json:"sport_key"`
	CommenceTime time.Time       `json:"commence_time"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	Bookmakers   []feedBookmaker `json:"bookmakers"`
}

type feedBookmaker struct {
	Key     string       `json:"key"`
	Title   string       `json:"title"`
	Markets []feedMarket `json:"markets"`
}

type feedMarket struct {
	Key      string        `json:"key"`
	Outcomes []feedOutcome `json:"outcomes"`
}

type feedOutcome struct {
	Name  string   `json:"name"`
	Price *int     `json:"price"`
	Point *float64 `json:"point"`
}

// marketKeyMap translates the feed's market keys ("h2h", "spreads", "totals")
// to internal market types.
var marketKeyMap = map[string]string{
	"h2h":       "moneyline",
	"spreads":   "spread",
	"totals":    "total",
	"moneyline": "moneyline",
	"spread":    "spread",
	"total":     "total",
}
