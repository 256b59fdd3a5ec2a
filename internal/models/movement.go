package models

import "time"

// LineSnapshot is one observation of a game/market/outcome's best available
// price and point. OutcomeKey is the side's name alone; the point travels as
// payload so the same side is compared across point changes.
type LineSnapshot struct {
	EventID    string     `json:"event_id"`
	Market     MarketType `json:"market"`
	OutcomeKey string     `json:"outcome_key"`
	Book       string     `json:"book"`
	Price      int        `json:"price"`
	Point      *float64   `json:"point,omitempty"`
	CapturedAt time.Time  `json:"captured_at"`
}

// MoveDirection says which way a line moved.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// MovementEvent is emitted when a line moves past the per-market significance
// threshold. Old/New carry the price for moneylines and the point for spreads
// and totals. Never mutated after creation.
type MovementEvent struct {
	EventID    string        `json:"event_id"`
	Market     MarketType    `json:"market"`
	OutcomeKey string        `json:"outcome_key"`
	Old        float64       `json:"old"`
	New        float64       `json:"new"`
	Direction  MoveDirection `json:"direction"`
	Favorable  bool          `json:"favorable"`
	MovedAt    time.Time     `json:"moved_at"`
}
