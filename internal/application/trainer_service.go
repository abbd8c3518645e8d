package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/club-scheduler/internal/persistence"
)

// TrainerRepository captures the persistence operations needed by the service.
type TrainerRepository interface {
	CreateTrainer(ctx context.Context, trainer Trainer) (Trainer, error)
	GetTrainer(ctx context.Context, id string) (Trainer, error)
	UpdateTrainer(ctx context.Context, trainer Trainer) (Trainer, error)
	DeleteTrainer(ctx context.Context, id string) error
	ListTrainers(ctx context.Context) ([]Trainer, error)
}

// TrainerService orchestrates validation, authorization, and persistence for
// the staff directory.
type TrainerService struct {
	trainers    TrainerRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewTrainerService constructs a trainer service with the provided dependencies.
func NewTrainerService(trainers TrainerRepository, idGenerator func() string, now func() time.Time) *TrainerService {
	return NewTrainerServiceWithLogger(trainers, idGenerator, now, nil)
}

// NewTrainerServiceWithLogger constructs a trainer service with a specified logger.
func NewTrainerServiceWithLogger(trainers TrainerRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *TrainerService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &TrainerService{trainers: trainers, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *TrainerService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "TrainerService", operation, attrs...)
}

// CreateTrainer validates input and persists a new trainer for administrators.
func (s *TrainerService) CreateTrainer(ctx context.Context, params CreateTrainerParams) (trainer Trainer, err error) {
	if s == nil {
		err = fmt.Errorf("TrainerService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateTrainer",
		"principal_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create trainer", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("trainer_id", trainer.ID).InfoContext(ctx, "trainer created")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	vErr := validateTrainerInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	trainer = Trainer{
		ID:        s.idGenerator(),
		Name:      strings.TrimSpace(params.Input.Name),
		Specialty: normalizeOptionalString(params.Input.Specialty),
		Active:    params.Input.Active,
		CreatedAt: s.now(),
	}
	trainer.UpdatedAt = trainer.CreatedAt

	if s.trainers == nil {
		return
	}

	var persisted Trainer
	persisted, err = s.trainers.CreateTrainer(ctx, trainer)
	if err != nil {
		err = mapTrainerRepoError(err)
		return
	}

	trainer = persisted
	return
}

// UpdateTrainer validates input and updates an existing trainer for administrators.
func (s *TrainerService) UpdateTrainer(ctx context.Context, params UpdateTrainerParams) (trainer Trainer, err error) {
	if s == nil {
		err = fmt.Errorf("TrainerService is nil")
		return
	}
	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}
	if s.trainers == nil {
		err = fmt.Errorf("trainer repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateTrainer",
		"principal_id", params.Principal.UserID,
		"trainer_id", params.TrainerID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update trainer", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "trainer updated")
	}()

	var existing Trainer
	existing, err = s.trainers.GetTrainer(ctx, params.TrainerID)
	if err != nil {
		err = mapTrainerRepoError(err)
		return
	}

	vErr := validateTrainerInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(params.Input.Name)
	updated.Specialty = normalizeOptionalString(params.Input.Specialty)
	updated.Active = params.Input.Active
	updated.UpdatedAt = s.now()

	trainer, err = s.trainers.UpdateTrainer(ctx, updated)
	if err != nil {
		err = mapTrainerRepoError(err)
		return
	}

	return
}

// DeleteTrainer removes a trainer when requested by an administrator. A
// trainer with bookings cannot be removed; deactivate instead.
func (s *TrainerService) DeleteTrainer(ctx context.Context, principal Principal, trainerID string) error {
	if s == nil {
		return fmt.Errorf("TrainerService is nil")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}
	if s.trainers == nil {
		return fmt.Errorf("trainer repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteTrainer",
		"principal_id", principal.UserID,
		"trainer_id", trainerID,
	)

	if err := s.trainers.DeleteTrainer(ctx, trainerID); err != nil {
		err = mapTrainerRepoError(err)
		logger.ErrorContext(ctx, "failed to delete trainer", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "trainer deleted")
	return nil
}

// GetTrainer returns a single trainer by ID.
func (s *TrainerService) GetTrainer(ctx context.Context, principal Principal, trainerID string) (Trainer, error) {
	if s == nil || s.trainers == nil {
		return Trainer{}, fmt.Errorf("trainer repository not configured")
	}

	trainer, err := s.trainers.GetTrainer(ctx, trainerID)
	if err != nil {
		return Trainer{}, mapTrainerRepoError(err)
	}
	return trainer, nil
}

// ListTrainers returns the staff directory for any authenticated user.
func (s *TrainerService) ListTrainers(ctx context.Context, principal Principal) ([]Trainer, error) {
	if s == nil || s.trainers == nil {
		return nil, nil
	}

	trainers, err := s.trainers.ListTrainers(ctx)
	if err != nil {
		return nil, mapTrainerRepoError(err)
	}
	return trainers, nil
}

func validateTrainerInput(input TrainerInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	return vErr
}

func mapTrainerRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		vErr := &ValidationError{}
		vErr.add("id", "trainer already exists")
		return vErr
	}
	if errors.Is(err, persistence.ErrForeignKeyViolation) {
		vErr := &ValidationError{}
		vErr.add("trainer_id", "trainer still has bookings; deactivate instead")
		return vErr
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("name", "name is required")
		return vErr
	}
	return err
}
