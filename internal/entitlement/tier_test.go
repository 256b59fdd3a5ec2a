package entitlement

import (
	"testing"

	"github.com/hetulpatel/OddsEdge/internal/models"
)

func TestFilterEdgesByTier(t *testing.T) {
	policy := Policy{FreeBooks: []string{"bookA"}}
	edges := []models.Edge{
		{ID: "1", Book: "bookA"},
		{ID: "2", Book: "bookB"},
	}

	pro := policy.FilterEdges(TierPro, edges)
	if len(pro) != 2 {
		t.Errorf("pro sees %d edges, want 2", len(pro))
	}

	free := policy.FilterEdges(TierFree, edges)
	if len(free) != 1 || free[0].Book != "bookA" {
		t.Errorf("free sees %+v, want only bookA", free)
	}
}

func TestEmptyAllowlistPassesThrough(t *testing.T) {
	edges := []models.Edge{{ID: "1", Book: "bookB"}}
	if got := (Policy{}).FilterEdges(TierFree, edges); len(got) != 1 {
		t.Errorf("empty allowlist filtered edges: %+v", got)
	}
}

func TestDerivedFieldGates(t *testing.T) {
	var p Policy
	if p.AllowConsensus(TierFree) || p.AllowMovements(TierFree) || p.AllowKelly(TierFree) {
		t.Error("free tier must not see derived overlays")
	}
	if !p.AllowConsensus(TierPro) || !p.AllowMovements(TierPro) || !p.AllowKelly(TierPro) {
		t.Error("pro tier must see derived overlays")
	}
}
