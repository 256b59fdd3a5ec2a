// Package edge scans a slate of events for quotes priced away from the
// cross-book market and emits actionable edges.
package edge

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hetulpatel/OddsEdge/internal/models"
	"github.com/hetulpatel/OddsEdge/internal/oddsmath"
)

// Config holds the detector's gating thresholds and the market types it
// scans. Zero values take defaults.
type Config struct {
	MinBooks           int                 // distinct books required per outcome
	MinEV              float64             // EV floor for the EV-band emission branch
	MaxEV              float64             // EV above this is treated as a data error
	MinLineDiscrepancy int                 // raw American-price spread for the discrepancy branch
	Markets            []models.MarketType // empty scans every market type
}

func (c Config) withDefaults() Config {
	if c.MinBooks <= 0 {
		c.MinBooks = 3
	}
	if c.MinEV == 0 {
		c.MinEV = 3.0
	}
	if c.MaxEV == 0 {
		c.MaxEV = 25.0
	}
	if c.MinLineDiscrepancy <= 0 {
		c.MinLineDiscrepancy = 20
	}
	if len(c.Markets) == 0 {
		c.Markets = models.AllMarkets
	}
	return c
}

// passesGate applies the two emission branches. The per-outcome book-count
// gate has already been applied by the caller; it is unconditional and
// independent of which branch fires here.
func passesGate(ev float64, discrepancy int, cfg Config) bool {
	if ev >= cfg.MinEV && ev <= cfg.MaxEV {
		return true
	}
	if discrepancy >= cfg.MinLineDiscrepancy && ev > 0 && ev <= cfg.MaxEV {
		return true
	}
	return false
}

// Detect runs the batch pipeline over one sport's slate: every event, every
// configured market type, every outcome group. Returned edges are in encounter order;
// callers collecting across sports sort once with SortByEV.
func Detect(sport string, events []models.Event, cfg Config, now time.Time) []models.Edge {
	cfg = cfg.withDefaults()

	var edges []models.Edge
	for _, ev := range events {
		for _, market := range cfg.Markets {
			groups, order := GroupQuotes(ev, market)
			for _, key := range order {
				group := groups[key]
				if distinctBooks(group) < cfg.MinBooks {
					continue
				}

				best, worst, avgImplied, ok := summarize(group)
				if !ok {
					continue
				}

				evPct, err := CrossBookEV(best.Quote.Price, avgImplied)
				if err != nil {
					continue
				}
				discrepancy := best.Quote.Price - worst.Quote.Price
				if discrepancy < 0 {
					discrepancy = -discrepancy
				}
				if !passesGate(evPct, discrepancy, cfg) {
					continue
				}

				edges = append(edges, models.Edge{
					ID:          uuid.NewString(),
					Sport:       sport,
					EventID:     ev.EventID,
					Description: describe(market, best.Quote),
					EV:          evPct,
					Book:        best.Book,
					Confidence:  ConfidenceFor(evPct),
					Market:      market,
					DetectedAt:  now,
				})
			}
		}
	}
	return edges
}

// SortByEV orders edges descending by EV. The sort is stable so EV ties keep
// encounter order.
func SortByEV(edges []models.Edge) {
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].EV > edges[j].EV })
}

func distinctBooks(group []models.BookQuote) int {
	seen := make(map[string]struct{}, len(group))
	for _, bq := range group {
		seen[bq.Book] = struct{}{}
	}
	return len(seen)
}

// summarize finds the best (highest) and worst (lowest) prices in the group
// and the average implied probability across it. ok is false when no quote
// in the group has a representable price.
func summarize(group []models.BookQuote) (best, worst models.BookQuote, avgImplied float64, ok bool) {
	var sum float64
	var n int
	for _, bq := range group {
		implied, err := oddsmath.AmericanToImplied(bq.Quote.Price)
		if err != nil {
			continue
		}
		if n == 0 {
			best, worst = bq, bq
		} else {
			if bq.Quote.Price > best.Quote.Price {
				best = bq
			}
			if bq.Quote.Price < worst.Quote.Price {
				worst = bq
			}
		}
		sum += implied
		n++
	}
	if n == 0 {
		return models.BookQuote{}, models.BookQuote{}, 0, false
	}
	return best, worst, sum / float64(n), true
}

// describe builds the human-readable pick for an edge.
func describe(market models.MarketType, q models.Quote) string {
	switch market {
	case models.MarketSpread:
		if q.Point != nil {
			return fmt.Sprintf("%s %+g (%+d)", q.Name, *q.Point, q.Price)
		}
		return fmt.Sprintf("%s (%+d)", q.Name, q.Price)
	case models.MarketTotal:
		if q.Point != nil {
			return fmt.Sprintf("%s %g (%+d)", q.Name, *q.Point, q.Price)
		}
		return fmt.Sprintf("%s (%+d)", q.Name, q.Price)
	default:
		return fmt.Sprintf("%s (%+d)", q.Name, q.Price)
	}
}
