package oddsmath

// KellySizing is the bankroll-fraction recommendation for one bet. When the
// computed fraction is non-positive there is no edge: NoEdge is set and every
// fraction is zero, so callers never confuse "do not bet" with a small stake.
type KellySizing struct {
	Fraction float64 `json:"fraction"`
	Half     float64 `json:"half"`
	Quarter  float64 `json:"quarter"`
	NoEdge   bool    `json:"no_edge"`
}

// Kelly computes the Kelly criterion stake for American odds and an estimated
// win probability: f* = (b*p - q) / b with b = decimal - 1, q = 1 - p.
func Kelly(price int, winProb float64) (KellySizing, error) {
	if winProb <= 0 || winProb >= 1 {
		return KellySizing{}, ErrInvalidProbability
	}
	dec, err := AmericanToDecimal(price)
	if err != nil {
		return KellySizing{}, err
	}

	b := dec - 1.0
	p := winProb
	q := 1.0 - p
	f := (b*p - q) / b

	if f <= 0 {
		return KellySizing{NoEdge: true}, nil
	}
	return KellySizing{
		Fraction: f,
		Half:     f / 2,
		Quarter:  f / 4,
	}, nil
}
