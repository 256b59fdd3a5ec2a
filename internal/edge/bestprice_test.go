package edge

import (
	"testing"

	"github.com/hetulpatel/OddsEdge/internal/models"
)

func mlEvent(quotes map[string]int) models.Event {
	ev := models.Event{EventID: "evt1", Sport: "basketball_nba", HomeTeam: "Home", AwayTeam: "Away"}
	for book, price := range quotes {
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

func TestFindBestOddsMonotonic(t *testing.T) {
	// Highest American price wins across the sign boundary, regardless of
	// input order.
	orders := []map[string]int{
		{"bookA": -110, "bookB": -105, "bookC": 120},
		{"bookA": 120, "bookB": -110, "bookC": -105},
		{"bookA": -105, "bookB": 120, "bookC": -110},
	}
	for _, quotes := range orders {
		best, ok := FindBestOdds(mlEvent(quotes), models.MarketMoneyline, "Home")
		if !ok {
			t.Fatal("expected a quote")
		}
		if best.Quote.Price != 120 {
			t.Errorf("best price = %d, want 120 (quotes %v)", best.Quote.Price, quotes)
		}
	}
}

func TestFindBestOddsTieBreak(t *testing.T) {
	// Equal prices: first book in sorted-key order wins.
	best, ok := FindBestOdds(mlEvent(map[string]int{"zeta": -110, "alpha": -110}), models.MarketMoneyline, "Home")
	if !ok {
		t.Fatal("expected a quote")
	}
	if best.Book != "alpha" {
		t.Errorf("tie went to %q, want alpha", best.Book)
	}
}

func TestFindBestOddsNotFound(t *testing.T) {
	if _, ok := FindBestOdds(mlEvent(map[string]int{"bookA": -110}), models.MarketMoneyline, "Nobody"); ok {
		t.Error("expected not found for unquoted outcome")
	}
	if _, ok := FindBestOdds(mlEvent(map[string]int{"bookA": -110}), models.MarketSpread, "Home"); ok {
		t.Error("expected not found for unquoted market")
	}
}

func TestFindBestOddsDefaultOutcome(t *testing.T) {
	// Empty label binds to the first outcome encountered.
	best, ok := FindBestOdds(mlEvent(map[string]int{"bookA": -110, "bookB": -104}), models.MarketMoneyline, "")
	if !ok {
		t.Fatal("expected a quote")
	}
	if best.Quote.Name != "Home" || best.Quote.Price != -104 {
		t.Errorf("got %s %d, want Home -104", best.Quote.Name, best.Quote.Price)
	}
}
