// Package pipeline runs the per-refresh cycle: fetch quotes for every
// configured sport, detect edges, build consensus overlays, and feed the
// line-movement detector. It has no threads of its own beyond the fan-out of
// per-sport fetches inside a single Refresh call.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hetulpatel/OddsEdge/internal/cache"
	"github.com/hetulpatel/OddsEdge/internal/consensus"
	"github.com/hetulpatel/OddsEdge/internal/edge"
	"github.com/hetulpatel/OddsEdge/internal/feeds/injuries"
	"github.com/hetulpatel/OddsEdge/internal/logging"
	"github.com/hetulpatel/OddsEdge/internal/models"
	"github.com/hetulpatel/OddsEdge/internal/movement"
)

// ErrAllSportsFailed distinguishes "the data pipeline is broken" from an
// empty-but-successful refresh with no edges.
var ErrAllSportsFailed = errors.New("all sport fetches failed")

// QuoteFeed is the upstream quote source.
type QuoteFeed interface {
	FetchOdds(ctx context.Context, sport string, markets []models.MarketType) ([]models.Event, error)
}

// InjuryFeed is the optional injury source; nil disables it.
type InjuryFeed interface {
	FetchReports(ctx context.Context, sport string) ([]injuries.Report, error)
}

// Config controls one pipeline instance. Zero values take defaults.
type Config struct {
	Sports       []string
	Markets      []models.MarketType
	FetchTimeout time.Duration
	Detector     edge.Config
}

func (c Config) withDefaults() Config {
	if len(c.Markets) == 0 {
		c.Markets = models.AllMarkets
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
	// The detector scans exactly what the pipeline fetches.
	c.Detector.Markets = c.Markets
	return c
}

// Result is one refresh cycle's output. Edges are sorted descending by EV
// across all sports; Consensus is keyed by event then market type.
type Result struct {
	Edges        []models.Edge
	Consensus    map[string]map[models.MarketType]*models.ConsensusPrice
	Movements    []models.MovementEvent
	InjuryCounts map[string]int
	FailedSports []string
	RefreshedAt  time.Time
}

// Pipeline wires the feeds, the cache, and the movement detector together.
type Pipeline struct {
	feed     QuoteFeed
	injuries InjuryFeed
	quotes   cache.QuoteCache
	tracker  *movement.Detector
	cfg      Config
}

// New builds a pipeline. quotes and injuryFeed may be nil (uncached, no
// injury counts); feed and tracker are required.
func New(feed QuoteFeed, injuryFeed InjuryFeed, quotes cache.QuoteCache, tracker *movement.Detector, cfg Config) *Pipeline {
	return &Pipeline{
		feed:     feed,
		injuries: injuryFeed,
		quotes:   quotes,
		tracker:  tracker,
		cfg:      cfg.withDefaults(),
	}
}

// Refresh runs one full cycle. Per-sport fetches run concurrently, each under
// its own timeout; a failed sport is logged and skipped so the rest of the
// slate still produces output. Only when every sport fails does Refresh
// return an error.
func (p *Pipeline) Refresh(ctx context.Context) (*Result, error) {
	now := time.Now().UTC()

	type sportSlate struct {
		events []models.Event
		err    error
	}
	slates := make(map[string]sportSlate, len(p.cfg.Sports))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, sport := range p.cfg.Sports {
		wg.Add(1)
		go func(sport string) {
			defer wg.Done()
			events, err := p.fetchSport(ctx, sport)
			mu.Lock()
			slates[sport] = sportSlate{events: events, err: err}
			mu.Unlock()
		}(sport)
	}
	wg.Wait()

	res := &Result{
		Consensus:   make(map[string]map[models.MarketType]*models.ConsensusPrice),
		RefreshedAt: now,
	}

	var snapshots []models.LineSnapshot
	failed := 0
	for _, sport := range p.cfg.Sports {
		slate := slates[sport]
		if slate.err != nil {
			logging.Errorf("[pipeline] %s fetch failed: %v", sport, slate.err)
			res.FailedSports = append(res.FailedSports, sport)
			failed++
			continue
		}
		logging.Debugf("[pipeline] %s: %d events", sport, len(slate.events))

		res.Edges = append(res.Edges, edge.Detect(sport, slate.events, p.cfg.Detector, now)...)

		for _, ev := range slate.events {
			for _, market := range p.cfg.Markets {
				groups, _ := edge.GroupQuotes(ev, market)
				if len(groups) == 0 {
					continue
				}

				cp, err := consensus.Devig(market, groups)
				if err == nil {
					if res.Consensus[ev.EventID] == nil {
						res.Consensus[ev.EventID] = make(map[models.MarketType]*models.ConsensusPrice)
					}
					res.Consensus[ev.EventID][market] = cp
				} else if !errors.Is(err, consensus.ErrInsufficientData) {
					logging.Errorf("[pipeline] devig %s/%s: %v", ev.EventID, market, err)
				}

				// Movement snapshots are keyed by side, not by point: a
				// spread moving -3.0 -> -4.5 must diff against the old line,
				// not register as a brand-new outcome. The point rides along
				// as payload.
				nameGroups, nameOrder := edge.GroupQuotesByName(ev, market)
				for _, name := range nameOrder {
					best, ok := edge.BestInGroup(nameGroups[name])
					if !ok {
						continue
					}
					snapshots = append(snapshots, models.LineSnapshot{
						EventID:    ev.EventID,
						Market:     market,
						OutcomeKey: name,
						Book:       best.Book,
						Price:      best.Quote.Price,
						Point:      best.Quote.Point,
						CapturedAt: now,
					})
				}
			}
		}
	}

	if len(p.cfg.Sports) > 0 && failed == len(p.cfg.Sports) {
		return nil, fmt.Errorf("refresh: %w", ErrAllSportsFailed)
	}

	edge.SortByEV(res.Edges)
	if p.tracker != nil {
		res.Movements = p.tracker.Observe(snapshots)
	}
	res.InjuryCounts = p.fetchInjuries(ctx)
	return res, nil
}

// fetchSport serves one sport's slate from cache when fresh, otherwise from
// the live feed. A miss followed by a failed fetch propagates the failure:
// there is no stale-on-error fallback.
func (p *Pipeline) fetchSport(ctx context.Context, sport string) ([]models.Event, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.cfg.FetchTimeout)
	defer cancel()

	if p.quotes != nil {
		events, hit, err := p.quotes.Get(fetchCtx, sport, p.cfg.Markets)
		if err != nil {
			logging.Errorf("[pipeline] cache get %s: %v", sport, err)
		} else if hit {
			logging.Debugf("[pipeline] cache hit for %s", sport)
			return events, nil
		}
	}

	events, err := p.feed.FetchOdds(fetchCtx, sport, p.cfg.Markets)
	if err != nil {
		return nil, err
	}
	if p.quotes != nil {
		if err := p.quotes.Set(fetchCtx, sport, p.cfg.Markets, events); err != nil {
			logging.Errorf("[pipeline] cache set %s: %v", sport, err)
		}
	}
	return events, nil
}

func (p *Pipeline) fetchInjuries(ctx context.Context) map[string]int {
	if p.injuries == nil {
		return nil
	}
	counts := make(map[string]int, len(p.cfg.Sports))
	for _, sport := range p.cfg.Sports {
		fetchCtx, cancel := context.WithTimeout(ctx, p.cfg.FetchTimeout)
		reports, err := p.injuries.FetchReports(fetchCtx, sport)
		cancel()
		if err != nil {
			logging.Errorf("[pipeline] injuries %s: %v", sport, err)
			continue
		}
		counts[sport] = len(reports)
	}
	return counts
}
