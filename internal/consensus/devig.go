// Package consensus removes bookmaker margin from a market's quotes to
// produce a fair probability and fair price per outcome.
package consensus

import (
	"errors"
	"math"
	"sort"

	"github.com/hetulpatel/OddsEdge/internal/models"
	"github.com/hetulpatel/OddsEdge/internal/oddsmath"
)

// ErrInsufficientData means fewer than two outcomes had usable quotes, so no
// two-sided probability can be formed. Callers check and skip; this is a
// well-defined "no consensus available", not a failure.
var ErrInsufficientData = errors.New("insufficient quotes for consensus")

// Devig averages each outcome's implied probability across the books quoting
// it, normalizes the averages so they sum to 1, and converts back to fair
// American prices. Hold is (sum of averaged implied - 1) * 100, rounded to
// one decimal place. Books missing an outcome are ignored, not an error.
func Devig(market models.MarketType, quotes map[string][]models.BookQuote) (*models.ConsensusPrice, error) {
	type outcomeAvg struct {
		key    string
		name   string
		point  *float64
		avg    float64
		booked int
	}

	// Deterministic outcome order regardless of map iteration.
	keys := make([]string, 0, len(quotes))
	for k := range quotes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	avgs := make([]outcomeAvg, 0, len(keys))
	for _, key := range keys {
		var sum float64
		var n int
		var name string
		var point *float64
		for _, bq := range quotes[key] {
			implied, err := oddsmath.AmericanToImplied(bq.Quote.Price)
			if err != nil {
				continue // malformed price, drop from aggregation
			}
			sum += implied
			n++
			name = bq.Quote.Name
			point = bq.Quote.Point
		}
		if n == 0 {
			continue
		}
		avgs = append(avgs, outcomeAvg{key: key, name: name, point: point, avg: sum / float64(n), booked: n})
	}

	if len(avgs) < 2 {
		return nil, ErrInsufficientData
	}

	var total float64
	for _, a := range avgs {
		total += a.avg
	}

	cp := &models.ConsensusPrice{
		Market:  market,
		HoldPct: math.Round((total-1.0)*100*10) / 10,
	}
	for _, a := range avgs {
		fair := a.avg / total
		price, err := oddsmath.ImpliedToAmerican(fair)
		if err != nil {
			return nil, err
		}
		cp.Outcomes = append(cp.Outcomes, models.OutcomeConsensus{
			Name:       a.name,
			Point:      a.point,
			AvgImplied: a.avg,
			FairProb:   fair,
			FairPrice:  price,
			BookCount:  a.booked,
		})
	}
	return cp, nil
}

// Outcome returns the consensus entry matching the outcome key ("Name", or
// "Name_point" for point-carrying markets), or nil. Matching on the full key
// keeps the same side at different points distinct.
func Outcome(cp *models.ConsensusPrice, key string) *models.OutcomeConsensus {
	if cp == nil {
		return nil
	}
	for i := range cp.Outcomes {
		o := &cp.Outcomes[i]
		if (models.Quote{Name: o.Name, Point: o.Point}).OutcomeKey() == key {
			return o
		}
	}
	return nil
}
