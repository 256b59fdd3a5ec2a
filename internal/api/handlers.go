// Package api holds the HTTP handlers for the Kelly sizing service. Sizing is
// a pure function of the request; the only server-side state is the default
// bankroll and the entitlement policy.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hetulpatel/OddsEdge/internal/entitlement"
	"github.com/hetulpatel/OddsEdge/internal/oddsmath"
)

// Handler carries the handler dependencies.
type Handler struct {
	defaultBankroll float64
	policy          entitlement.Policy
}

func NewHandler(defaultBankroll float64, policy entitlement.Policy) *Handler {
	if defaultBankroll <= 0 {
		defaultBankroll = 1000
	}
	return &Handler{defaultBankroll: defaultBankroll, policy: policy}
}

// KellyRequest asks for a stake recommendation on one quote.
type KellyRequest struct {
	Price    int     `json:"price"`
	WinProb  float64 `json:"win_prob"`
	Bankroll float64 `json:"bankroll,omitempty"`
	Tier     string  `json:"tier,omitempty"`
}

// KellyResponse returns the Kelly fraction with the fractional presets and the
// dollar stakes at the given bankroll.
type KellyResponse struct {
	Sizing       oddsmath.KellySizing `json:"sizing"`
	Bankroll     float64              `json:"bankroll"`
	Stake        float64              `json:"stake"`
	HalfStake    float64              `json:"half_stake"`
	QuarterStake float64              `json:"quarter_stake"`
}

// HealthCheck returns service health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "kelly-api",
	})
}

// Kelly computes the stake recommendation for a quote and win probability.
func (h *Handler) Kelly(w http.ResponseWriter, r *http.Request) {
	var req KellyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	tier := entitlement.Tier(req.Tier)
	if tier == "" {
		tier = entitlement.TierPro
	}
	if !h.policy.AllowKelly(tier) {
		respondError(w, http.StatusForbidden, "kelly sizing requires the pro tier")
		return
	}

	if req.Bankroll == 0 {
		req.Bankroll = h.defaultBankroll
	}
	if req.Bankroll < 0 {
		respondError(w, http.StatusBadRequest, "bankroll must be positive")
		return
	}

	sizing, err := oddsmath.Kelly(req.Price, req.WinProb)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("sizing error: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, &KellyResponse{
		Sizing:       sizing,
		Bankroll:     req.Bankroll,
		Stake:        sizing.Fraction * req.Bankroll,
		HalfStake:    sizing.Half * req.Bankroll,
		QuarterStake: sizing.Quarter * req.Bankroll,
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
