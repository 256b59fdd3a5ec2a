package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/hetulpatel/OddsEdge/internal/logging"
	"github.com/hetulpatel/OddsEdge/internal/models"
	"github.com/hetulpatel/OddsEdge/internal/movement"
)

func init() {
	logging.SetLevel(logging.LevelError)
}

type fakeFeed struct {
	slates map[string][]models.Event
	errors map[string]error
	calls  map[string]int
}

func (f *fakeFeed) FetchOdds(_ context.Context, sport string, _ []models.MarketType) ([]models.Event, error) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[sport]++
	if err := f.errors[sport]; err != nil {
		return nil, err
	}
	return f.slates[sport], nil
}

type fakeCache struct {
	entries map[string][]models.Event
}

func (c *fakeCache) cacheKey(sport string, markets []models.MarketType) string {
	return fmt.Sprintf("%s:%d", sport, len(markets))
}

func (c *fakeCache) Get(_ context.Context, sport string, markets []models.MarketType) ([]models.Event, bool, error) {
	events, ok := c.entries[c.cacheKey(sport, markets)]
	return events, ok, nil
}

func (c *fakeCache) Set(_ context.Context, sport string, markets []models.MarketType, events []models.Event) error {
	if c.entries == nil {
		c.entries = make(map[string][]models.Event)
	}
	c.entries[c.cacheKey(sport, markets)] = events
	return nil
}

func (c *fakeCache) Close() error { return nil }

func mlEvent(id string, prices map[string]int) models.Event {
	ev := models.Event{EventID: id, Sport: "basketball_nba", HomeTeam: "Home", AwayTeam: "Away"}
	for book, price := range prices {
		away := -price
		if price == -110 {
			away = -110
		}
		ev.Bookmakers = append(ev.Bookmakers, models.Bookmaker{
			Key: book,
			Markets: []models.Market{{
				Key: models.MarketMoneyline,
				Outcomes: []models.Quote{
					{Name: "Home", Price: price},
					{Name: "Away", Price: away},
				},
			}},
		})
	}
	return ev
}

func spreadEvent(id string, point float64, books []string) models.Event {
	ev := models.Event{EventID: id, Sport: "basketball_nba", HomeTeam: "Home", AwayTeam: "Away"}
	homePoint := point
	awayPoint := -point
	for _, book := range books {
		ev.Bookmakers = append(ev.Bookmakers, models.Bookmaker{
			Key: book,
			Markets: []models.Market{{
				Key: models.MarketSpread,
				Outcomes: []models.Quote{
					{Name: "Home", Price: -110, Point: &homePoint},
					{Name: "Away", Price: -110, Point: &awayPoint},
				},
			}},
		})
	}
	return ev
}

func TestRefreshPartialFailure(t *testing.T) {
	feed := &fakeFeed{
		slates: map[string][]models.Event{
			"basketball_nba": {mlEvent("evt1", map[string]int{"bookA": -110, "bookB": -110, "bookC": -110})},
		},
		errors: map[string]error{"icehockey_nhl": errors.New("timeout")},
	}
	p := New(feed, nil, nil, movement.NewDetector(0, 0), Config{
		Sports: []string{"basketball_nba", "icehockey_nhl"},
	})

	res, err := p.Refresh(context.Background())
	if err != nil {
		t.Fatalf("partial failure must not abort the batch: %v", err)
	}
	if len(res.FailedSports) != 1 || res.FailedSports[0] != "icehockey_nhl" {
		t.Errorf("FailedSports = %v", res.FailedSports)
	}
	if res.Consensus["evt1"] == nil || res.Consensus["evt1"][models.MarketMoneyline] == nil {
		t.Error("surviving sport must still produce consensus overlays")
	}
}

func TestRefreshTotalFailure(t *testing.T) {
	feed := &fakeFeed{errors: map[string]error{
		"basketball_nba": errors.New("unreachable"),
		"icehockey_nhl":  errors.New("unreachable"),
	}}
	p := New(feed, nil, nil, movement.NewDetector(0, 0), Config{
		Sports: []string{"basketball_nba", "icehockey_nhl"},
	})

	if _, err := p.Refresh(context.Background()); !errors.Is(err, ErrAllSportsFailed) {
		t.Errorf("error = %v, want ErrAllSportsFailed", err)
	}
}

func TestRefreshUsesCache(t *testing.T) {
	slate := []models.Event{mlEvent("evt1", map[string]int{"bookA": -110, "bookB": -110, "bookC": -110})}
	feed := &fakeFeed{slates: map[string][]models.Event{"basketball_nba": slate}}
	qc := &fakeCache{}
	p := New(feed, nil, qc, movement.NewDetector(0, 0), Config{Sports: []string{"basketball_nba"}})

	if _, err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if _, err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if feed.calls["basketball_nba"] != 1 {
		t.Errorf("feed called %d times, want 1 (second cycle served from cache)", feed.calls["basketball_nba"])
	}
}

func TestRefreshConsensusNormalized(t *testing.T) {
	slate := []models.Event{mlEvent("evt1", map[string]int{"bookA": -110, "bookB": -112, "bookC": -108})}
	feed := &fakeFeed{slates: map[string][]models.Event{"basketball_nba": slate}}
	p := New(feed, nil, nil, movement.NewDetector(0, 0), Config{Sports: []string{"basketball_nba"}})

	res, err := p.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	cp := res.Consensus["evt1"][models.MarketMoneyline]
	if cp == nil {
		t.Fatal("missing consensus overlay")
	}
	var sum float64
	for _, oc := range cp.Outcomes {
		sum += oc.FairProb
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("fair probabilities sum to %.12f", sum)
	}
}

func TestRefreshTracksMovement(t *testing.T) {
	feed := &fakeFeed{slates: map[string][]models.Event{
		"basketball_nba": {mlEvent("evt1", map[string]int{"bookA": -110, "bookB": -110, "bookC": -110})},
	}}
	p := New(feed, nil, nil, movement.NewDetector(0, 0), Config{Sports: []string{"basketball_nba"}})

	res, err := p.Refresh(context.Background())
	if err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if len(res.Movements) != 0 {
		t.Errorf("first cycle emitted %d movements, want 0", len(res.Movements))
	}

	// Best price jumps from -110 to +105: significant for a moneyline.
	feed.slates["basketball_nba"] = []models.Event{mlEvent("evt1", map[string]int{"bookA": -110, "bookB": -110, "bookC": 105})}
	res, err = p.Refresh(context.Background())
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	found := false
	for _, m := range res.Movements {
		if m.OutcomeKey == "Home" && m.Old == -110 && m.New == 105 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a Home -110 -> +105 movement, got %+v", res.Movements)
	}
}

func TestRefreshTracksSpreadPointMove(t *testing.T) {
	books := []string{"bookA", "bookB", "bookC"}
	feed := &fakeFeed{slates: map[string][]models.Event{
		"basketball_nba": {spreadEvent("evt1", -3.0, books)},
	}}
	p := New(feed, nil, nil, movement.NewDetector(0, 0), Config{Sports: []string{"basketball_nba"}})

	res, err := p.Refresh(context.Background())
	if err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if len(res.Movements) != 0 {
		t.Errorf("first cycle emitted %d movements, want 0", len(res.Movements))
	}

	// The line moves a point and a half. The side keeps its identity across
	// the point change, so this diffs against -3.0 instead of registering as
	// a first sample.
	feed.slates["basketball_nba"] = []models.Event{spreadEvent("evt1", -4.5, books)}
	res, err = p.Refresh(context.Background())
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	found := false
	for _, m := range res.Movements {
		if m.Market == models.MarketSpread && m.OutcomeKey == "Home" && m.Old == -3.0 && m.New == -4.5 {
			found = true
			if m.Direction != models.MoveDown {
				t.Errorf("direction = %s, want down", m.Direction)
			}
		}
	}
	if !found {
		t.Errorf("expected a Home spread -3.0 -> -4.5 movement, got %+v", res.Movements)
	}
}

func TestRefreshEdgesSorted(t *testing.T) {
	feed := &fakeFeed{slates: map[string][]models.Event{
		"basketball_nba": {
			mlEvent("evt1", map[string]int{"bookA": -250, "bookB": -240, "bookC": -110}),
			mlEvent("evt2", map[string]int{"bookA": -250, "bookB": -240, "bookC": -105}),
		},
	}}
	p := New(feed, nil, nil, movement.NewDetector(0, 0), Config{Sports: []string{"basketball_nba"}})

	res, err := p.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(res.Edges) < 2 {
		t.Fatalf("got %d edges, want at least 2", len(res.Edges))
	}
	for i := 1; i < len(res.Edges); i++ {
		if res.Edges[i].EV > res.Edges[i-1].EV {
			t.Errorf("edges not sorted descending by EV at %d: %f > %f", i, res.Edges[i].EV, res.Edges[i-1].EV)
		}
	}
}
