package edge

import (
	"testing"
	"time"

	"github.com/hetulpatel/OddsEdge/internal/models"
)

func slateEvent(id string, prices map[string]int) models.Event {
	ev := models.Event{EventID: id, Sport: "basketball_nba", HomeTeam: "Home", AwayTeam: "Away"}
	for book, price := range prices {
		ev.Bookmakers = append(ev.Bookmakers, models.Bookmaker{
			Key: book,
			Markets: []models.Market{{
				Key:      models.MarketMoneyline,
				Outcomes: []models.Quote{{Name: "Home", Price: price}},
			}},
		})
	}
	return ev
}

func TestPassesGateBoundaries(t *testing.T) {
	cfg := Config{}.withDefaults()
	tests := []struct {
		name        string
		ev          float64
		discrepancy int
		want        bool
	}{
		{"at EV floor", 3.0, 0, true},
		{"just below EV floor", 2.99, 0, false},
		{"at EV ceiling", 25.0, 0, true},
		{"just above EV ceiling", 25.01, 0, false},
		{"ceiling applies to discrepancy branch too", 25.01, 100, false},
		{"discrepancy branch, small positive EV", 1.0, 20, true},
		{"discrepancy just below floor", 1.0, 19, false},
		{"discrepancy branch needs positive EV", 0.0, 100, false},
		{"discrepancy branch, negative EV", -2.0, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := passesGate(tt.ev, tt.discrepancy, cfg); got != tt.want {
				t.Errorf("passesGate(%v, %d) = %v, want %v", tt.ev, tt.discrepancy, got, tt.want)
			}
		})
	}
}

func TestDetectBookCountGate(t *testing.T) {
	// Two books is below the default minimum of three: no edge, no matter how
	// wide the discrepancy or how large the EV.
	events := []models.Event{slateEvent("evt1", map[string]int{"bookA": -250, "bookB": 150})}
	edges := Detect("basketball_nba", events, Config{}, time.Now())
	if len(edges) != 0 {
		t.Errorf("got %d edges from a 2-book outcome, want 0", len(edges))
	}
}

func TestDetectAnomalySuppression(t *testing.T) {
	// Three books at -110/-105/+102: the cross-book EV against the +102 best
	// price blows past the ceiling, so it is suppressed as a likely data
	// error rather than emitted as a high-confidence edge.
	events := []models.Event{slateEvent("evt1", map[string]int{"bookA": -110, "bookB": -105, "bookC": 102})}
	edges := Detect("basketball_nba", events, Config{}, time.Now())
	if len(edges) != 0 {
		t.Errorf("got %d edges, want 0 (EV above ceiling must be suppressed)", len(edges))
	}
}

func TestDetectEmitsWithinBand(t *testing.T) {
	// -250/-240/-110: avg implied ~0.648, best -110 -> EV ~3.7%, inside the
	// band, MEDIUM confidence.
	events := []models.Event{slateEvent("evt1", map[string]int{"bookA": -250, "bookB": -240, "bookC": -110})}
	edges := Detect("basketball_nba", events, Config{}, time.Now())
	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}
	e := edges[0]
	if e.Book != "bookC" {
		t.Errorf("edge book = %s, want bookC (best price)", e.Book)
	}
	if e.EV < 3.0 || e.EV > 5.0 {
		t.Errorf("EV = %.2f, want within (3.0, 5.0)", e.EV)
	}
	if e.Confidence != models.ConfidenceMedium {
		t.Errorf("confidence = %s, want MEDIUM", e.Confidence)
	}
	if e.Market != models.MarketMoneyline || e.EventID != "evt1" {
		t.Errorf("unexpected edge identity: %+v", e)
	}
	if e.ID == "" {
		t.Error("edge must carry an ID")
	}
}

func TestDetectHonorsMarketSet(t *testing.T) {
	// Same slate as the within-band case, but the detector is restricted to
	// spreads. The moneyline edge must not be scanned, let alone emitted.
	events := []models.Event{slateEvent("evt1", map[string]int{"bookA": -250, "bookB": -240, "bookC": -110})}
	edges := Detect("basketball_nba", events, Config{Markets: []models.MarketType{models.MarketSpread}}, time.Now())
	if len(edges) != 0 {
		t.Errorf("got %d edges from a market the config excludes, want 0", len(edges))
	}

	edges = Detect("basketball_nba", events, Config{Markets: []models.MarketType{models.MarketMoneyline}}, time.Now())
	if len(edges) != 1 {
		t.Errorf("got %d edges with moneyline configured, want 1", len(edges))
	}
}

func TestDetectDiscrepancyBranch(t *testing.T) {
	// -250/-245/-112: EV ~1.5% (below the band floor) but the 138-point raw
	// price spread fires the discrepancy branch. Tier is LOW.
	events := []models.Event{slateEvent("evt1", map[string]int{"bookA": -250, "bookB": -245, "bookC": -112})}
	edges := Detect("basketball_nba", events, Config{}, time.Now())
	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}
	if edges[0].EV >= 3.0 || edges[0].EV <= 0 {
		t.Errorf("EV = %.2f, want in (0, 3.0) for this scenario", edges[0].EV)
	}
	if edges[0].Confidence != models.ConfidenceLow {
		t.Errorf("confidence = %s, want LOW", edges[0].Confidence)
	}
}

func TestDetectSpreadOutcomesKeyedByPoint(t *testing.T) {
	// Same team at different points must not be merged: each point group has
	// only two books, so the book-count gate holds everything back.
	p35, p40 := -3.5, -4.0
	ev := models.Event{EventID: "evt1", Sport: "basketball_nba"}
	for book, pt := range map[string]*float64{"bookA": &p35, "bookB": &p35, "bookC": &p40, "bookD": &p40} {
		ev.Bookmakers = append(ev.Bookmakers, models.Bookmaker{
			Key: book,
			Markets: []models.Market{{
				Key:      models.MarketSpread,
				Outcomes: []models.Quote{{Name: "Home", Price: -110, Point: pt}},
			}},
		})
	}
	edges := Detect("basketball_nba", []models.Event{ev}, Config{}, time.Now())
	if len(edges) != 0 {
		t.Errorf("got %d edges, want 0 (point-split groups are each below MinBooks)", len(edges))
	}
}

func TestSortByEVStable(t *testing.T) {
	edges := []models.Edge{
		{ID: "a", EV: 4.0},
		{ID: "b", EV: 10.0},
		{ID: "c", EV: 4.0},
		{ID: "d", EV: 7.5},
	}
	SortByEV(edges)
	gotIDs := []string{edges[0].ID, edges[1].ID, edges[2].ID, edges[3].ID}
	wantIDs := []string{"b", "d", "a", "c"}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("order = %v, want %v (ties keep encounter order)", gotIDs, wantIDs)
		}
	}
}
