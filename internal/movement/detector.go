// Package movement tracks each game/market/outcome's best line across
// refresh cycles and emits events when a line moves significantly.
package movement

import (
	"fmt"
	"sync"

	"github.com/hetulpatel/OddsEdge/internal/models"
)

const (
	defaultHistoryCap = 20
	defaultEventCap   = 50
)

// Detector is the only long-lived mutable state in the engine: a snapshot of
// record plus a bounded history per (event, market, outcome) key, and a
// capped, prepended ring of recent movement events. All methods are safe for
// concurrent use; compare-and-store per key happens under one lock so a
// snapshot is never diffed against itself.
type Detector struct {
	mu         sync.Mutex
	current    map[string]models.LineSnapshot
	history    map[string][]models.LineSnapshot
	recent     []models.MovementEvent
	historyCap int
	eventCap   int
}

// NewDetector builds a detector with the given history and event caps.
// Non-positive caps take the defaults (20 and 50).
func NewDetector(historyCap, eventCap int) *Detector {
	if historyCap <= 0 {
		historyCap = defaultHistoryCap
	}
	if eventCap <= 0 {
		eventCap = defaultEventCap
	}
	return &Detector{
		current:    make(map[string]models.LineSnapshot),
		history:    make(map[string][]models.LineSnapshot),
		historyCap: historyCap,
		eventCap:   eventCap,
	}
}

func snapKey(s models.LineSnapshot) string {
	return fmt.Sprintf("%s|%s|%s", s.EventID, s.Market, s.OutcomeKey)
}

// Observe records the latest best-line snapshots for one refresh pass and
// returns the movement events they produced. A key seen for the first time
// stores its snapshot and emits nothing: a movement requires two samples.
func (d *Detector) Observe(snapshots []models.LineSnapshot) []models.MovementEvent {
	d.mu.Lock()
	defer d.mu.Unlock()

	var moves []models.MovementEvent
	for _, cur := range snapshots {
		key := snapKey(cur)
		prev, seen := d.current[key]

		d.current[key] = cur
		d.history[key] = append(d.history[key], cur)
		if over := len(d.history[key]) - d.historyCap; over > 0 {
			d.history[key] = d.history[key][over:]
		}

		if !seen {
			continue
		}
		oldVal, newVal, ok := significant(cur.Market, prev, cur)
		if !ok || oldVal == newVal {
			continue
		}
		dir := models.MoveUp
		if newVal < oldVal {
			dir = models.MoveDown
		}
		move := models.MovementEvent{
			EventID:    cur.EventID,
			Market:     cur.Market,
			OutcomeKey: cur.OutcomeKey,
			Old:        oldVal,
			New:        newVal,
			Direction:  dir,
			Favorable:  favorable(cur.Market, prev, cur),
			MovedAt:    cur.CapturedAt,
		}
		moves = append(moves, move)

		// Prepend so the newest move displays first; cap the ring.
		d.recent = append([]models.MovementEvent{move}, d.recent...)
		if len(d.recent) > d.eventCap {
			d.recent = d.recent[:d.eventCap]
		}
	}
	return moves
}

// History returns the bounded snapshot history for a key, oldest first.
func (d *Detector) History(eventID string, market models.MarketType, outcomeKey string) []models.LineSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.history[fmt.Sprintf("%s|%s|%s", eventID, market, outcomeKey)]
	out := make([]models.LineSnapshot, len(h))
	copy(out, h)
	return out
}

// Recent returns the capped movement ring, newest first.
func (d *Detector) Recent() []models.MovementEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.MovementEvent, len(d.recent))
	copy(out, d.recent)
	return out
}
