// Package sqlite provides the durable implementation of the persistence
// repositories on top of modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations holds the ordered schema steps. The index of each entry plus one
// is the schema version recorded in PRAGMA user_version after it is applied.
var migrations = []string{
	`CREATE TABLE trainers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL CHECK (length(name) > 0),
		specialty  TEXT,
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE events (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		type         TEXT NOT NULL,
		start_time   TEXT NOT NULL,
		end_time     TEXT NOT NULL CHECK (end_time > start_time),
		trainer_id   TEXT NOT NULL REFERENCES trainers(id),
		trainer_name TEXT NOT NULL,
		client_id    TEXT,
		client_name  TEXT,
		status       TEXT NOT NULL,
		location     TEXT,
		created_by   TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL,
		completed_at TEXT
	)`,
	`CREATE INDEX idx_events_trainer_start ON events(trainer_id, start_time)`,
	`CREATE INDEX idx_events_status ON events(status)`,
}

// Store bundles the repositories backed by a single SQLite database.
type Store struct {
	pool     *ConnectionPool
	Events   *EventRepository
	Trainers *TrainerRepository
}

// Open connects to the database at the given DSN and wires the repositories.
func Open(dsn string) (*Store, error) {
	pool, err := NewConnectionPool(dsn)
	if err != nil {
		return nil, err
	}

	return &Store{
		pool:     pool,
		Events:   NewEventRepository(pool),
		Trainers: NewTrainerRepository(pool),
	}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.pool.Close()
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate brings the schema up to the current version. Applied steps are
// tracked via PRAGMA user_version so Migrate is safe to run on every start.
func (s *Store) Migrate(ctx context.Context) error {
	var version int
	if err := s.pool.DB().QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version >= len(migrations) {
		return nil
	}

	return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for step := version; step < len(migrations); step++ {
			if _, err := tx.Exec(migrations[step]); err != nil {
				return fmt.Errorf("migration step %d failed: %w", step+1, err)
			}
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", len(migrations))); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
		return nil
	})
}
