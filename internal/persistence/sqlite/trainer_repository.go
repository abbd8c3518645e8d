package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/club-scheduler/internal/persistence"
)

// TrainerRepository implements persistence.TrainerRepository using SQLite.
type TrainerRepository struct {
	pool *ConnectionPool
}

// NewTrainerRepository creates a new SQLite trainer repository.
func NewTrainerRepository(pool *ConnectionPool) *TrainerRepository {
	return &TrainerRepository{pool: pool}
}

// CreateTrainer inserts a new trainer into the database.
func (r *TrainerRepository) CreateTrainer(ctx context.Context, trainer persistence.Trainer) error {
	if trainer.ID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO trainers (id, name, specialty, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.pool.DB().ExecContext(ctx, query,
		trainer.ID,
		trainer.Name,
		nullString(trainer.Specialty),
		boolToInt(trainer.Active),
		formatTime(trainer.CreatedAt),
		formatTime(trainer.UpdatedAt),
	)
	if err != nil {
		return mapSQLiteError(err)
	}

	return nil
}

// UpdateTrainer replaces the mutable columns of an existing trainer.
func (r *TrainerRepository) UpdateTrainer(ctx context.Context, trainer persistence.Trainer) error {
	query := `
		UPDATE trainers
		SET name = ?, specialty = ?, active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.pool.DB().ExecContext(ctx, query,
		trainer.Name,
		nullString(trainer.Specialty),
		boolToInt(trainer.Active),
		formatTime(trainer.UpdatedAt),
		trainer.ID,
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

// GetTrainer retrieves a trainer by ID.
func (r *TrainerRepository) GetTrainer(ctx context.Context, id string) (persistence.Trainer, error) {
	if id == "" {
		return persistence.Trainer{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, name, specialty, active, created_at, updated_at
		FROM trainers
		WHERE id = ?
	`

	trainer, err := scanTrainer(r.pool.DB().QueryRowContext(ctx, query, id))
	if err != nil {
		return persistence.Trainer{}, mapSQLiteError(err)
	}

	return trainer, nil
}

// ListTrainers returns all trainers ordered by name then ID.
func (r *TrainerRepository) ListTrainers(ctx context.Context) ([]persistence.Trainer, error) {
	query := `
		SELECT id, name, specialty, active, created_at, updated_at
		FROM trainers
		ORDER BY name, id
	`

	rows, err := r.pool.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer func() { _ = rows.Close() }()

	trainers := make([]persistence.Trainer, 0)
	for rows.Next() {
		trainer, err := scanTrainer(rows)
		if err != nil {
			return nil, mapSQLiteError(err)
		}
		trainers = append(trainers, trainer)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}

	return trainers, nil
}

// DeleteTrainer removes a trainer by ID. The foreign key from events blocks
// deletion while bookings still reference the trainer.
func (r *TrainerRepository) DeleteTrainer(ctx context.Context, id string) error {
	result, err := r.pool.DB().ExecContext(ctx, "DELETE FROM trainers WHERE id = ?", id)
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

func scanTrainer(row rowScanner) (persistence.Trainer, error) {
	var trainer persistence.Trainer
	var specialty sql.NullString
	var active int
	var createdAt, updatedAt string

	err := row.Scan(&trainer.ID, &trainer.Name, &specialty, &active, &createdAt, &updatedAt)
	if err != nil {
		return persistence.Trainer{}, err
	}

	if trainer.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Trainer{}, err
	}
	if trainer.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Trainer{}, err
	}

	trainer.Specialty = fromNullString(specialty)
	trainer.Active = active != 0

	return trainer, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
