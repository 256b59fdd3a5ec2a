package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/hetulpatel/OddsEdge/internal/models"
)

// PublishEdges writes one keyed message per detected edge. A nil writer is a
// no-op so callers can run without the queue wired up.
func PublishEdges(ctx context.Context, writer *kafka.Writer, edges []models.Edge) error {
	if writer == nil || len(edges) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(edges))
	for _, e := range edges {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal edge %s: %w", e.ID, err)
		}
		key := fmt.Sprintf("%s-%s-%s", e.Sport, e.EventID, e.ID)
		msgs = append(msgs, kafka.Message{Key: []byte(key), Value: payload})
	}
	return writer.WriteMessages(ctx, msgs...)
}

// PublishMovements writes one keyed message per significant line move.
func PublishMovements(ctx context.Context, writer *kafka.Writer, moves []models.MovementEvent) error {
	if writer == nil || len(moves) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(moves))
	for _, m := range moves {
		payload, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("marshal movement %s/%s: %w", m.EventID, m.OutcomeKey, err)
		}
		key := fmt.Sprintf("%s-%s-%s-%d", m.EventID, m.Market, m.OutcomeKey, m.MovedAt.UnixNano())
		msgs = append(msgs, kafka.Message{Key: []byte(key), Value: payload})
	}
	return writer.WriteMessages(ctx, msgs...)
}
