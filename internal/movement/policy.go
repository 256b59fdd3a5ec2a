package movement

import "github.com/hetulpatel/OddsEdge/internal/models"

// Significance thresholds per market type. Spread and total moves are
// measured in points, moneyline moves in American price units.
const (
	spreadMoveThreshold    = 1.0
	totalMoveThreshold     = 2.0
	moneylineMoveThreshold = 15.0
)

// significant reports whether the move from old to new crosses the market's
// threshold, and returns the compared values (points for spread/total, price
// for moneyline). ok is false when the pair cannot be compared, e.g. a spread
// snapshot missing its point.
func significant(market models.MarketType, old, cur models.LineSnapshot) (oldVal, newVal float64, ok bool) {
	switch market {
	case models.MarketSpread:
		if old.Point == nil || cur.Point == nil {
			return 0, 0, false
		}
		oldVal, newVal = *old.Point, *cur.Point
		return oldVal, newVal, abs(newVal-oldVal) >= spreadMoveThreshold
	case models.MarketTotal:
		if old.Point == nil || cur.Point == nil {
			return 0, 0, false
		}
		oldVal, newVal = *old.Point, *cur.Point
		return oldVal, newVal, abs(newVal-oldVal) >= totalMoveThreshold
	default:
		oldVal, newVal = float64(old.Price), float64(cur.Price)
		return oldVal, newVal, abs(newVal-oldVal) >= moneylineMoveThreshold
	}
}

// favorable classifies a significant move for the bettor. Spreads: the point
// increasing (more points received) is favorable; this does not know which
// side the bettor holds and is always computed relative to increasing value.
// Totals: proxied by the price increasing, not by Over/Under direction.
// Moneylines: price increasing means a better payout.
//
// Keep this policy isolated: the totals proxy in particular is a carried-over
// simplification that may be revisited without touching threshold logic.
func favorable(market models.MarketType, old, cur models.LineSnapshot) bool {
	switch market {
	case models.MarketSpread:
		if old.Point == nil || cur.Point == nil {
			return false
		}
		return *cur.Point > *old.Point
	default:
		return cur.Price > old.Price
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
