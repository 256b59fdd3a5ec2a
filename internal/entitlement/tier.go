// Package entitlement filters the engine's outputs by subscription tier.
// The engine always computes everything; gating is purely a view over its
// results, never an input to the algorithms.
package entitlement

import "github.com/hetulpatel/OddsEdge/internal/models"

// Tier is the opaque entitlement flag consumed from the account system.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// Policy names what the free tier may see. Pro sees everything.
type Policy struct {
	// FreeBooks is the book allowlist for free-tier edges. Empty means free
	// users see edges from every book.
	FreeBooks []string
}

// FilterEdges returns the edges visible at the tier. Pro passes through
// unchanged; free is restricted to the allowlisted books.
func (p Policy) FilterEdges(tier Tier, edges []models.Edge) []models.Edge {
	if tier == TierPro || len(p.FreeBooks) == 0 {
		return edges
	}
	allowed := make(map[string]struct{}, len(p.FreeBooks))
	for _, b := range p.FreeBooks {
		allowed[b] = struct{}{}
	}
	out := make([]models.Edge, 0, len(edges))
	for _, e := range edges {
		if _, ok := allowed[e.Book]; ok {
			out = append(out, e)
		}
	}
	return out
}

// AllowConsensus reports whether fair-probability overlays are exposed.
func (p Policy) AllowConsensus(tier Tier) bool { return tier == TierPro }

// AllowMovements reports whether movement alerts are exposed.
func (p Policy) AllowMovements(tier Tier) bool { return tier == TierPro }

// AllowKelly reports whether Kelly sizing is exposed.
func (p Policy) AllowKelly(tier Tier) bool { return tier == TierPro }
