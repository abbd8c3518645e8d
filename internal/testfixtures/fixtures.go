package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/club-scheduler/internal/application"
	"github.com/example/club-scheduler/internal/persistence"
	"github.com/example/club-scheduler/internal/scheduler"
)

var (
	eventCounter   uint64
	trainerCounter uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- Trainer fixtures -----------------------------

// TrainerFixture represents a deterministic trainer record that can be
// materialised for application or persistence tests.
type TrainerFixture struct {
	ID        string
	Name      string
	Specialty *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TrainerOption configures the generated trainer fixture.
type TrainerOption func(*TrainerFixture)

// NewTrainerFixture returns a deterministic trainer fixture with optional overrides.
func NewTrainerFixture(opts ...TrainerOption) TrainerFixture {
	idx := atomic.AddUint64(&trainerCounter, 1)
	id := fmt.Sprintf("trainer-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := TrainerFixture{
		ID:        id,
		Name:      fmt.Sprintf("Trainer %03d", idx),
		Active:    true,
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithTrainerID overrides the generated trainer ID.
func WithTrainerID(id string) TrainerOption {
	return func(f *TrainerFixture) {
		f.ID = id
	}
}

// WithTrainerName overrides the generated name.
func WithTrainerName(name string) TrainerOption {
	return func(f *TrainerFixture) {
		f.Name = name
	}
}

// WithTrainerSpecialty sets the specialty on the generated fixture.
func WithTrainerSpecialty(specialty string) TrainerOption {
	return func(f *TrainerFixture) {
		value := specialty
		f.Specialty = &value
	}
}

// WithTrainerActive sets the active flag on the generated fixture.
func WithTrainerActive(active bool) TrainerOption {
	return func(f *TrainerFixture) {
		f.Active = active
	}
}

// WithTrainerTimestamps sets both created and updated timestamps on the fixture.
func WithTrainerTimestamps(created, updated time.Time) TrainerOption {
	return func(f *TrainerFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Application returns the fixture as an application.Trainer value.
func (f TrainerFixture) Application() application.Trainer {
	return application.Trainer{
		ID:        f.ID,
		Name:      f.Name,
		Specialty: f.Specialty,
		Active:    f.Active,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.Trainer value.
func (f TrainerFixture) Persistence() persistence.Trainer {
	return persistence.Trainer{
		ID:        f.ID,
		Name:      f.Name,
		Specialty: f.Specialty,
		Active:    f.Active,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Input returns the fixture as an application.TrainerInput value.
func (f TrainerFixture) Input() application.TrainerInput {
	return application.TrainerInput{
		Name:      f.Name,
		Specialty: f.Specialty,
		Active:    f.Active,
	}
}

// ----------------------------- Event fixtures -----------------------------

// EventFixture represents a deterministic event record that can be
// materialised for application, persistence, or core tests.
type EventFixture struct {
	ID          string
	Title       string
	Type        scheduler.EventType
	Start       time.Time
	End         time.Time
	TrainerID   string
	TrainerName string
	ClientID    *string
	ClientName  *string
	Status      scheduler.Status
	Location    *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// EventOption configures the generated event fixture.
type EventOption func(*EventFixture)

// NewEventFixture returns a deterministic event fixture with optional
// overrides. Consecutive fixtures occupy consecutive hour slots so default
// fixtures never conflict with each other.
func NewEventFixture(opts ...EventOption) EventFixture {
	idx := atomic.AddUint64(&eventCounter, 1)
	id := fmt.Sprintf("event-%03d", idx)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := EventFixture{
		ID:          id,
		Title:       fmt.Sprintf("Session %03d", idx),
		Type:        scheduler.EventTypeTraining,
		Start:       start,
		End:         start.Add(time.Hour),
		TrainerID:   "trainer-001",
		TrainerName: "Trainer 001",
		Status:      scheduler.StatusScheduled,
		CreatedBy:   "user-001",
		CreatedAt:   referenceTime,
		UpdatedAt:   referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEventID overrides the generated event ID.
func WithEventID(id string) EventOption {
	return func(f *EventFixture) {
		f.ID = id
	}
}

// WithEventTitle overrides the generated title.
func WithEventTitle(title string) EventOption {
	return func(f *EventFixture) {
		f.Title = title
	}
}

// WithEventType sets the event type.
func WithEventType(eventType scheduler.EventType) EventOption {
	return func(f *EventFixture) {
		f.Type = eventType
	}
}

// WithEventInterval sets the start and end of the slot.
func WithEventInterval(start, end time.Time) EventOption {
	return func(f *EventFixture) {
		f.Start = start
		f.End = end
	}
}

// WithEventTrainer sets the trainer carrying the slot.
func WithEventTrainer(trainerID, trainerName string) EventOption {
	return func(f *EventFixture) {
		f.TrainerID = trainerID
		f.TrainerName = trainerName
	}
}

// WithEventClient sets the attending client.
func WithEventClient(clientID, clientName string) EventOption {
	return func(f *EventFixture) {
		f.ClientID = &clientID
		f.ClientName = &clientName
	}
}

// WithEventStatus sets the lifecycle status.
func WithEventStatus(status scheduler.Status) EventOption {
	return func(f *EventFixture) {
		f.Status = status
	}
}

// WithEventLocation sets the location on the generated fixture.
func WithEventLocation(location string) EventOption {
	return func(f *EventFixture) {
		f.Location = &location
	}
}

// WithEventCreator sets the creating user.
func WithEventCreator(userID string) EventOption {
	return func(f *EventFixture) {
		f.CreatedBy = userID
	}
}

// WithEventTimestamps sets both created and updated timestamps on the fixture.
func WithEventTimestamps(created, updated time.Time) EventOption {
	return func(f *EventFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// WithEventCompletedAt sets the completion timestamp.
func WithEventCompletedAt(t time.Time) EventOption {
	return func(f *EventFixture) {
		f.CompletedAt = &t
	}
}

// Application returns the fixture as an application.Event value.
func (f EventFixture) Application() application.Event {
	return application.Event{
		ID:          f.ID,
		Title:       f.Title,
		Type:        f.Type,
		Start:       f.Start,
		End:         f.End,
		TrainerID:   f.TrainerID,
		TrainerName: f.TrainerName,
		ClientID:    f.ClientID,
		ClientName:  f.ClientName,
		Status:      f.Status,
		Location:    f.Location,
		CreatedBy:   f.CreatedBy,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
		CompletedAt: f.CompletedAt,
	}
}

// Persistence returns the fixture as a persistence.Event value.
func (f EventFixture) Persistence() persistence.Event {
	return persistence.Event{
		ID:          f.ID,
		Title:       f.Title,
		Type:        string(f.Type),
		Start:       f.Start,
		End:         f.End,
		TrainerID:   f.TrainerID,
		TrainerName: f.TrainerName,
		ClientID:    f.ClientID,
		ClientName:  f.ClientName,
		Status:      string(f.Status),
		Location:    f.Location,
		CreatedBy:   f.CreatedBy,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
		CompletedAt: f.CompletedAt,
	}
}

// Scheduler returns the fixture as a scheduler.Event snapshot value.
func (f EventFixture) Scheduler() scheduler.Event {
	event := scheduler.Event{
		ID:          f.ID,
		Title:       f.Title,
		Type:        f.Type,
		Start:       f.Start,
		End:         f.End,
		TrainerID:   f.TrainerID,
		TrainerName: f.TrainerName,
		Status:      f.Status,
	}
	if f.ClientID != nil {
		event.ClientID = *f.ClientID
	}
	if f.ClientName != nil {
		event.ClientName = *f.ClientName
	}
	if f.Location != nil {
		event.Location = *f.Location
	}
	return event
}

// Input returns the fixture as an application.EventInput value.
func (f EventFixture) Input() application.EventInput {
	return application.EventInput{
		Title:      f.Title,
		Type:       f.Type,
		Start:      f.Start,
		End:        f.End,
		TrainerID:  f.TrainerID,
		ClientID:   f.ClientID,
		ClientName: f.ClientName,
		Location:   f.Location,
	}
}
