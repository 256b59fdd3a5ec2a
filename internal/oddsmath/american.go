package oddsmath

import (
	"errors"
	"math"
)

var (
	// ErrInvalidOdds is returned for prices that are not representable
	// American odds: 0, or any magnitude below 100.
	ErrInvalidOdds = errors.New("invalid american odds")

	// ErrInvalidProbability is returned for probabilities outside (0, 1).
	ErrInvalidProbability = errors.New("probability must be in (0, 1)")
)

// AmericanToDecimal converts American odds to decimal odds.
// +150 -> 2.50, -150 -> 1.667.
func AmericanToDecimal(price int) (float64, error) {
	if err := validatePrice(price); err != nil {
		return 0, err
	}
	if price > 0 {
		return float64(price)/100.0 + 1.0, nil
	}
	return 100.0/math.Abs(float64(price)) + 1.0, nil
}

// AmericanToImplied converts American odds to implied probability in (0, 1).
// -150 -> 0.60, +150 -> 0.40.
func AmericanToImplied(price int) (float64, error) {
	if err := validatePrice(price); err != nil {
		return 0, err
	}
	if price > 0 {
		return 100.0 / (float64(price) + 100.0), nil
	}
	abs := math.Abs(float64(price))
	return abs / (abs + 100.0), nil
}

// ImpliedToAmerican converts a probability back to American odds. The usual
// round trip with AmericanToImplied reproduces the original price within +-1
// (rounding tolerance).
func ImpliedToAmerican(prob float64) (int, error) {
	if prob <= 0 || prob >= 1 {
		return 0, ErrInvalidProbability
	}
	if prob >= 0.5 {
		return int(math.Round(-100.0 * prob / (1.0 - prob))), nil
	}
	return int(math.Round(100.0 * (1.0 - prob) / prob)), nil
}

func validatePrice(price int) error {
	if price == 0 {
		return ErrInvalidOdds
	}
	if price > -100 && price < 100 {
		return ErrInvalidOdds
	}
	return nil
}
