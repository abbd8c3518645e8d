package testfixtures

import (
	"context"
	"testing"

	"github.com/example/club-scheduler/internal/application"
)

type capturingTrainerRepo struct {
	created application.Trainer
}

func (c *capturingTrainerRepo) CreateTrainer(ctx context.Context, trainer application.Trainer) (application.Trainer, error) {
	c.created = trainer
	return trainer, nil
}

func (c *capturingTrainerRepo) GetTrainer(ctx context.Context, id string) (application.Trainer, error) {
	return application.Trainer{}, application.ErrNotFound
}

func (c *capturingTrainerRepo) UpdateTrainer(ctx context.Context, trainer application.Trainer) (application.Trainer, error) {
	return trainer, nil
}

func (c *capturingTrainerRepo) DeleteTrainer(ctx context.Context, id string) error {
	return nil
}

func (c *capturingTrainerRepo) ListTrainers(ctx context.Context) ([]application.Trainer, error) {
	return nil, nil
}

func TestServiceFactoryNewTrainerService(t *testing.T) {
	factory := NewServiceFactory()
	repo := &capturingTrainerRepo{}

	svc := factory.NewTrainerService(TrainerServiceDeps{Trainers: repo})
	principal := application.Principal{UserID: "admin", IsAdmin: true}
	input := application.TrainerInput{Name: "Aiko Tanaka", Active: true}

	trainer, err := svc.CreateTrainer(context.Background(), application.CreateTrainerParams{Principal: principal, Input: input})
	if err != nil {
		t.Fatalf("CreateTrainer returned error: %v", err)
	}

	if trainer.ID != "id-1" {
		t.Fatalf("expected generated ID id-1, got %q", trainer.ID)
	}
	if repo.created.ID != trainer.ID {
		t.Fatalf("repository received unexpected ID: %q", repo.created.ID)
	}
	if !trainer.CreatedAt.Equal(factory.Clock.Now()) {
		t.Fatalf("expected timestamp %v, got %v", factory.Clock.Now(), trainer.CreatedAt)
	}
}
