package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect import

	"github.com/example/club-scheduler/internal/persistence"
)

const sqliteDialect = "sqlite3"

// Timestamps are stored in UTC with a fixed-width fractional part so lexical
// comparison matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// EventRepository implements persistence.EventRepository using SQLite.
type EventRepository struct {
	pool *ConnectionPool
}

// NewEventRepository creates a new SQLite event repository.
func NewEventRepository(pool *ConnectionPool) *EventRepository {
	return &EventRepository{pool: pool}
}

// CreateEvent inserts a new event into the database.
func (r *EventRepository) CreateEvent(ctx context.Context, event persistence.Event) error {
	if event.ID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO events (id, title, type, start_time, end_time, trainer_id, trainer_name,
			client_id, client_name, status, location, created_by, created_at, updated_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.pool.DB().ExecContext(ctx, query,
		event.ID,
		event.Title,
		event.Type,
		formatTime(event.Start),
		formatTime(event.End),
		event.TrainerID,
		event.TrainerName,
		nullString(event.ClientID),
		nullString(event.ClientName),
		event.Status,
		nullString(event.Location),
		event.CreatedBy,
		formatTime(event.CreatedAt),
		formatTime(event.UpdatedAt),
		nullTime(event.CompletedAt),
	)
	if err != nil {
		return mapSQLiteError(err)
	}

	return nil
}

// UpdateEvent replaces the mutable columns of an existing event.
func (r *EventRepository) UpdateEvent(ctx context.Context, event persistence.Event) error {
	if event.ID == "" {
		return persistence.ErrNotFound
	}

	query := `
		UPDATE events
		SET title = ?, type = ?, start_time = ?, end_time = ?, trainer_id = ?, trainer_name = ?,
			client_id = ?, client_name = ?, status = ?, location = ?, updated_at = ?, completed_at = ?
		WHERE id = ?
	`

	result, err := r.pool.DB().ExecContext(ctx, query,
		event.Title,
		event.Type,
		formatTime(event.Start),
		formatTime(event.End),
		event.TrainerID,
		event.TrainerName,
		nullString(event.ClientID),
		nullString(event.ClientName),
		event.Status,
		nullString(event.Location),
		formatTime(event.UpdatedAt),
		nullTime(event.CompletedAt),
		event.ID,
	)
	if err != nil {
		return mapSQLiteError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}

	return nil
}

// GetEvent retrieves an event by ID.
func (r *EventRepository) GetEvent(ctx context.Context, id string) (persistence.Event, error) {
	if id == "" {
		return persistence.Event{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, title, type, start_time, end_time, trainer_id, trainer_name,
			client_id, client_name, status, location, created_by, created_at, updated_at, completed_at
		FROM events
		WHERE id = ?
	`

	event, err := scanEvent(r.pool.DB().QueryRowContext(ctx, query, id))
	if err != nil {
		return persistence.Event{}, mapSQLiteError(err)
	}

	return event, nil
}

// ListEvents returns the events matching the filter ordered by start time then
// ID. The statement is assembled with goqu because every predicate is optional.
func (r *EventRepository) ListEvents(ctx context.Context, filter persistence.EventFilter) ([]persistence.Event, error) {
	stmt := goqu.Dialect(sqliteDialect).
		From("events").
		Select("id", "title", "type", "start_time", "end_time", "trainer_id", "trainer_name",
			"client_id", "client_name", "status", "location", "created_by", "created_at", "updated_at", "completed_at").
		Order(goqu.I("start_time").Asc(), goqu.I("id").Asc())

	if filter.TrainerID != "" {
		stmt = stmt.Where(goqu.C("trainer_id").Eq(filter.TrainerID))
	}
	if len(filter.Statuses) > 0 {
		stmt = stmt.Where(goqu.C("status").In(filter.Statuses))
	}
	if len(filter.Types) > 0 {
		stmt = stmt.Where(goqu.C("type").In(filter.Types))
	}
	if filter.StartsAfter != nil {
		stmt = stmt.Where(goqu.C("start_time").Gte(formatTime(*filter.StartsAfter)))
	}
	if filter.StartsBefore != nil {
		stmt = stmt.Where(goqu.C("start_time").Lte(formatTime(*filter.StartsBefore)))
	}

	query, args, err := stmt.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.pool.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer func() { _ = rows.Close() }()

	events := make([]persistence.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, mapSQLiteError(err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}

	return events, nil
}

// DeleteEvent removes an event by ID.
func (r *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	result, err := r.pool.DB().ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return mapSQLiteError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (persistence.Event, error) {
	var event persistence.Event
	var start, end, createdAt, updatedAt string
	var clientID, clientName, location, completedAt sql.NullString

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Type,
		&start,
		&end,
		&event.TrainerID,
		&event.TrainerName,
		&clientID,
		&clientName,
		&event.Status,
		&location,
		&event.CreatedBy,
		&createdAt,
		&updatedAt,
		&completedAt,
	)
	if err != nil {
		return persistence.Event{}, err
	}

	if event.Start, err = parseTime(start); err != nil {
		return persistence.Event{}, err
	}
	if event.End, err = parseTime(end); err != nil {
		return persistence.Event{}, err
	}
	if event.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Event{}, err
	}
	if event.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Event{}, err
	}

	event.ClientID = fromNullString(clientID)
	event.ClientName = fromNullString(clientName)
	event.Location = fromNullString(location)

	if completedAt.Valid {
		parsed, err := parseTime(completedAt.String)
		if err != nil {
			return persistence.Event{}, err
		}
		event.CompletedAt = &parsed
	}

	return event, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored timestamp %q: %w", value, err)
	}
	return t, nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullTime(value *time.Time) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*value), Valid: true}
}

func fromNullString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	out := value.String
	return &out
}
