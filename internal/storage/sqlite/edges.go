package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/hetulpatel/OddsEdge/internal/models"
)

// InsertEdges appends a detection batch to the audit log. Edges are keyed by
// their generated ID, so replays of the same batch are rejected by the table.
func (s *Store) InsertEdges(ctx context.Context, edges []models.Edge) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialized")
	}
	if len(edges) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO edges (
	id, sport, event_id, market, description, ev, book, confidence, detected_at, stored_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	storedAt := time.Now().UTC().Format(time.RFC3339Nano)
	for _, e := range edges {
		_, err := stmt.ExecContext(
			ctx,
			e.ID,
			e.Sport,
			e.EventID,
			string(e.Market),
			e.Description,
			e.EV,
			e.Book,
			string(e.Confidence),
			e.DetectedAt.UTC().Format(time.RFC3339Nano),
			storedAt,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert edge %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// InsertMovements appends significant line moves to the audit log.
func (s *Store) InsertMovements(ctx context.Context, moves []models.MovementEvent) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialized")
	}
	if len(moves) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO movements (
	event_id, market, outcome_key, old_value, new_value, direction, favorable, moved_at, stored_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	storedAt := time.Now().UTC().Format(time.RFC3339Nano)
	for _, m := range moves {
		favorable := 0
		if m.Favorable {
			favorable = 1
		}
		_, err := stmt.ExecContext(
			ctx,
			m.EventID,
			string(m.Market),
			m.OutcomeKey,
			m.Old,
			m.New,
			string(m.Direction),
			favorable,
			m.MovedAt.UTC().Format(time.RFC3339Nano),
			storedAt,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert movement %s/%s: %w", m.EventID, m.OutcomeKey, err)
		}
	}
	return tx.Commit()
}
