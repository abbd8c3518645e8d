package persistence

import (
	"context"
	"time"
)

// EventFilter narrows event queries issued to the repository. The time
// bounds are inclusive and both apply to the event's start time.
type EventFilter struct {
	TrainerID    string
	Statuses     []string
	Types        []string
	StartsAfter  *time.Time
	StartsBefore *time.Time
}

// EventRepository stores booked time slots.
type EventRepository interface {
	CreateEvent(ctx context.Context, event Event) error
	UpdateEvent(ctx context.Context, event Event) error
	GetEvent(ctx context.Context, id string) (Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// TrainerRepository stores staff directory entries.
type TrainerRepository interface {
	CreateTrainer(ctx context.Context, trainer Trainer) error
	UpdateTrainer(ctx context.Context, trainer Trainer) error
	GetTrainer(ctx context.Context, id string) (Trainer, error)
	ListTrainers(ctx context.Context) ([]Trainer, error)
	DeleteTrainer(ctx context.Context, id string) error
}
