package edge

import (
	"github.com/hetulpatel/OddsEdge/internal/models"
	"github.com/hetulpatel/OddsEdge/internal/oddsmath"
)

// evPercent is the expected value per unit staked, as a percentage, of taking
// decimal odds dec when prob is treated as the true probability.
func evPercent(dec, prob float64) float64 {
	return ((dec*(1.0-prob) - prob) / prob) * 100.0
}

// ConsensusEV scores a best price against the market's de-vigged fair
// probability for the outcome.
func ConsensusEV(bestPrice int, fairProb float64) (float64, error) {
	if fairProb <= 0 || fairProb >= 1 {
		return 0, oddsmath.ErrInvalidProbability
	}
	dec, err := oddsmath.AmericanToDecimal(bestPrice)
	if err != nil {
		return 0, err
	}
	return evPercent(dec, fairProb), nil
}

// CrossBookEV scores a best price against the average implied probability
// across all quoting books. Used by the batch detector, where the full de-vig
// is skipped in favor of the raw cross-book average.
func CrossBookEV(bestPrice int, avgImplied float64) (float64, error) {
	if avgImplied <= 0 || avgImplied >= 1 {
		return 0, oddsmath.ErrInvalidProbability
	}
	dec, err := oddsmath.AmericanToDecimal(bestPrice)
	if err != nil {
		return 0, err
	}
	return evPercent(dec, avgImplied), nil
}

// ConfidenceFor buckets an EV for display. Edges admitted through the
// discrepancy gate can carry EVs below the normal minimum; those land in LOW.
func ConfidenceFor(ev float64) models.Confidence {
	switch {
	case ev >= 5.0:
		return models.ConfidenceHigh
	case ev >= 3.0:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
