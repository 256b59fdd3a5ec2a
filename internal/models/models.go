package models

import (
	"fmt"
	"strconv"
	"time"
)

// MarketType identifies a betting market.
type MarketType string

const (
	MarketMoneyline MarketType = "moneyline"
	MarketSpread    MarketType = "spread"
	MarketTotal     MarketType = "total"
)

// AllMarkets is the fixed iteration order for market types.
var AllMarkets = []MarketType{MarketMoneyline, MarketSpread, MarketTotal}

// Quote is one bookmaker's price for one outcome. Price is American odds:
// magnitude is never in (-100, 100) and exactly 0 is invalid. Point is nil
// for moneylines and for feeds that omitted it.
type Quote struct {
	Name  string   `json:"name"`
	Price int      `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// ValidPrice reports whether Price is a representable American price.
func (q Quote) ValidPrice() bool {
	return q.Price <= -100 || q.Price >= 100
}

// OutcomeKey returns the grouping key for this quote. Spread and total quotes
// at different points are different outcomes and must never be merged, so the
// point is part of the key when present.
func (q Quote) OutcomeKey() string {
	if q.Point == nil {
		return q.Name
	}
	return q.Name + "_" + strconv.FormatFloat(*q.Point, 'f', -1, 64)
}

// Market is one book's view of a named market.
type Market struct {
	Key      MarketType `json:"key"`
	Outcomes []Quote    `json:"outcomes"`
}

// Bookmaker carries one book's markets for an event.
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// Event is a normalized game with all books' quotes attached.
type Event struct {
	EventID      string      `json:"event_id"`
	Sport        string      `json:"sport"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	CommenceTime time.Time   `json:"commence_time"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// BookQuote pairs a quote with the book that offered it.
type BookQuote struct {
	Book  string `json:"book"`
	Quote Quote  `json:"quote"`
}

// OutcomeConsensus is the de-vigged view of one outcome of a market.
type OutcomeConsensus struct {
	Name        string   `json:"name"`
	Point       *float64 `json:"point,omitempty"`
	AvgImplied  float64  `json:"avg_implied"`
	FairProb    float64  `json:"fair_prob"`
	FairPrice   int      `json:"fair_price"`
	BookCount   int      `json:"book_count"`
}

// ConsensusPrice is the fair-price overlay for one market of one event.
// Fair probabilities across Outcomes sum to 1 by construction.
type ConsensusPrice struct {
	Market   MarketType         `json:"market"`
	Outcomes []OutcomeConsensus `json:"outcomes"`
	HoldPct  float64            `json:"hold_pct"`
}

// Confidence buckets an edge's EV for display.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Edge is a detected opportunity. Edges live for one detection pass; the next
// pass supersedes the whole list.
type Edge struct {
	ID          string     `json:"id"`
	Sport       string     `json:"sport"`
	EventID     string     `json:"event_id"`
	Description string     `json:"description"`
	EV          float64    `json:"ev"`
	Book        string     `json:"book"`
	Confidence  Confidence `json:"confidence"`
	Market      MarketType `json:"market"`
	DetectedAt  time.Time  `json:"detected_at"`
}

func (e Edge) String() string {
	return fmt.Sprintf("%s %s ev=%.2f%% book=%s conf=%s", e.Market, e.Description, e.EV, e.Book, e.Confidence)
}
