// Package memory provides a mutex-guarded, map-backed implementation of the
// persistence repositories. It backs tests and DSN-less deployments.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/example/club-scheduler/internal/persistence"
)

// Store keeps events and trainers in process memory.
type Store struct {
	mu       sync.RWMutex
	events   map[string]persistence.Event
	trainers map[string]persistence.Trainer
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		events:   make(map[string]persistence.Event),
		trainers: make(map[string]persistence.Trainer),
	}
}

// Close releases resources held by the store. No-op for the in-memory implementation.
func (s *Store) Close() error {
	return nil
}

// Migrate initialises the store. No-op for the in-memory implementation.
func (s *Store) Migrate(context.Context) error {
	return nil
}

// --- EventRepository implementation ---

// CreateEvent stores a new event.
func (s *Store) CreateEvent(ctx context.Context, event persistence.Event) error {
	if event.ID == "" || !event.End.After(event.Start) {
		return persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[event.ID]; ok {
		return persistence.ErrDuplicate
	}

	s.events[event.ID] = cloneEvent(event)
	return nil
}

// UpdateEvent replaces an existing event.
func (s *Store) UpdateEvent(ctx context.Context, event persistence.Event) error {
	if !event.End.After(event.Start) {
		return persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[event.ID]; !ok {
		return persistence.ErrNotFound
	}

	s.events[event.ID] = cloneEvent(event)
	return nil
}

// GetEvent retrieves an event by ID.
func (s *Store) GetEvent(ctx context.Context, id string) (persistence.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return persistence.Event{}, persistence.ErrNotFound
	}

	return cloneEvent(event), nil
}

// ListEvents returns the events matching the filter, ordered by start time
// then ID for deterministic pagination.
func (s *Store) ListEvents(ctx context.Context, filter persistence.EventFilter) ([]persistence.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]persistence.Event, 0, len(s.events))
	for _, event := range s.events {
		if !matchesFilter(event, filter) {
			continue
		}
		out = append(out, cloneEvent(event))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].ID < out[j].ID
		}
		return out[i].Start.Before(out[j].Start)
	})

	return out, nil
}

// DeleteEvent removes an event by ID.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return persistence.ErrNotFound
	}

	delete(s.events, id)
	return nil
}

// --- TrainerRepository implementation ---

// CreateTrainer stores a new trainer.
func (s *Store) CreateTrainer(ctx context.Context, trainer persistence.Trainer) error {
	if trainer.ID == "" || trainer.Name == "" {
		return persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trainers[trainer.ID]; ok {
		return persistence.ErrDuplicate
	}

	s.trainers[trainer.ID] = cloneTrainer(trainer)
	return nil
}

// UpdateTrainer replaces an existing trainer.
func (s *Store) UpdateTrainer(ctx context.Context, trainer persistence.Trainer) error {
	if trainer.Name == "" {
		return persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trainers[trainer.ID]; !ok {
		return persistence.ErrNotFound
	}

	s.trainers[trainer.ID] = cloneTrainer(trainer)
	return nil
}

// GetTrainer retrieves a trainer by ID.
func (s *Store) GetTrainer(ctx context.Context, id string) (persistence.Trainer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trainer, ok := s.trainers[id]
	if !ok {
		return persistence.Trainer{}, persistence.ErrNotFound
	}

	return cloneTrainer(trainer), nil
}

// ListTrainers returns all trainers ordered by name then ID.
func (s *Store) ListTrainers(ctx context.Context) ([]persistence.Trainer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]persistence.Trainer, 0, len(s.trainers))
	for _, trainer := range s.trainers {
		out = append(out, cloneTrainer(trainer))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})

	return out, nil
}

// DeleteTrainer removes a trainer by ID. Events referencing the trainer block
// the delete, mirroring the foreign key the durable store enforces.
func (s *Store) DeleteTrainer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trainers[id]; !ok {
		return persistence.ErrNotFound
	}

	for _, event := range s.events {
		if event.TrainerID == id {
			return persistence.ErrForeignKeyViolation
		}
	}

	delete(s.trainers, id)
	return nil
}

func matchesFilter(event persistence.Event, filter persistence.EventFilter) bool {
	if filter.TrainerID != "" && event.TrainerID != filter.TrainerID {
		return false
	}
	if len(filter.Statuses) > 0 && !containsString(filter.Statuses, event.Status) {
		return false
	}
	if len(filter.Types) > 0 && !containsString(filter.Types, event.Type) {
		return false
	}
	if filter.StartsAfter != nil && event.Start.Before(*filter.StartsAfter) {
		return false
	}
	if filter.StartsBefore != nil && event.Start.After(*filter.StartsBefore) {
		return false
	}
	return true
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

func cloneEvent(event persistence.Event) persistence.Event {
	out := event
	out.ClientID = cloneStringPtr(event.ClientID)
	out.ClientName = cloneStringPtr(event.ClientName)
	out.Location = cloneStringPtr(event.Location)
	if event.CompletedAt != nil {
		completedAt := *event.CompletedAt
		out.CompletedAt = &completedAt
	}
	return out
}

func cloneTrainer(trainer persistence.Trainer) persistence.Trainer {
	out := trainer
	out.Specialty = cloneStringPtr(trainer.Specialty)
	return out
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}
