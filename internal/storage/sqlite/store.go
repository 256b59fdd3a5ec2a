package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	defaultPath = "data/edges.db"
)

// Store wraps a SQLite DB connection.
type Store struct {
	path string
	db   *sql.DB
}

// Open creates (if needed) and opens the SQLite database.
func Open(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := ensureWAL(db); err != nil {
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	return &Store{path: path, db: db}, nil
}

func ensureWAL(db *sql.DB) error {
	const (
		maxAttempts = 5
		delay       = 200 * time.Millisecond
	)
	for i := 0; i < maxAttempts; i++ {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			if strings.Contains(err.Error(), "database is locked") {
				time.Sleep(delay)
				continue
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("database is locked after retries")
}

// Path returns the path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateTables ensures the edge and movement audit tables exist.
func (s *Store) CreateTables(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schemaSQL)
	return err
}

// DropTables removes the audit tables.
func (s *Store) DropTables(ctx context.Context) error {
	stmts := []string{
		`DROP TABLE IF EXISTS edges;`,
		`DROP TABLE IF EXISTS movements;`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ClearTables truncates the audit tables.
func (s *Store) ClearTables(ctx context.Context) error {
	stmts := []string{
		`DELETE FROM edges;`,
		`DELETE FROM movements;`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS edges (
	id TEXT PRIMARY KEY,
	sport TEXT NOT NULL,
	event_id TEXT NOT NULL,
	market TEXT NOT NULL,
	description TEXT,
	ev REAL NOT NULL,
	book TEXT NOT NULL,
	confidence TEXT NOT NULL,
	detected_at TEXT NOT NULL,
	stored_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS edges_event_idx ON edges(event_id);
CREATE INDEX IF NOT EXISTS edges_detected_idx ON edges(detected_at);

CREATE TABLE IF NOT EXISTS movements (
	event_id TEXT NOT NULL,
	market TEXT NOT NULL,
	outcome_key TEXT NOT NULL,
	old_value REAL NOT NULL,
	new_value REAL NOT NULL,
	direction TEXT NOT NULL,
	favorable INTEGER NOT NULL,
	moved_at TEXT NOT NULL,
	stored_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS movements_event_idx ON movements(event_id, market);
`
