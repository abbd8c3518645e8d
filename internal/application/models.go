package application

import (
	"time"

	"github.com/example/club-scheduler/internal/scheduler"
)

// Principal represents the authenticated staff member invoking a service method.
type Principal struct {
	UserID  string
	IsAdmin bool
}

// EventInput captures caller provided event fields.
type EventInput struct {
	Title      string
	Type       scheduler.EventType
	Start      time.Time
	End        time.Time
	TrainerID  string
	ClientID   *string
	ClientName *string
	Location   *string
}

// Event represents a persisted booking slot.
type Event struct {
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

// CreateEventParams wraps the data required to create an event.
type CreateEventParams struct {
	Principal Principal
	Input     EventInput
}

// RecurrencePattern describes how a repeating booking recurs.
type RecurrencePattern string

const (
	// RecurrenceDaily repeats the slot each day until the series ends.
	RecurrenceDaily RecurrencePattern = "daily"
	// RecurrenceWeekly repeats the slot on the selected weekdays.
	RecurrenceWeekly RecurrencePattern = "weekly"
)

// CreateRecurringEventsParams wraps the data required to expand a repeating
// slot template into individual bookings. The template interval in Input
// fixes the time of day and duration; Until bounds the series inclusively.
type CreateRecurringEventsParams struct {
	Principal     Principal
	Input         EventInput
	Pattern       RecurrencePattern
	Weekdays      []time.Weekday
	Until         time.Time
	SkipConflicts bool
}

// UpdateEventParams wraps the data required to update an existing event.
// AllowPast lets administrators correct historical records that would
// otherwise fail the booking-ahead-only rule.
type UpdateEventParams struct {
	Principal Principal
	EventID   string
	Input     EventInput
	AllowPast bool
}

// ChangeEventStatusParams wraps the data required for a status transition.
// Override lets administrators correct a terminal status outside the normal
// state machine.
type ChangeEventStatusParams struct {
	Principal Principal
	EventID   string
	Status    scheduler.Status
	Override  bool
}

// ListPeriod identifies the range preset requested for event listings.
type ListPeriod string

const (
	// ListPeriodNone indicates no preset; caller supplied explicit bounds.
	ListPeriodNone ListPeriod = ""
	// ListPeriodDay constrains results to a single business day.
	ListPeriodDay ListPeriod = "day"
	// ListPeriodWeek constrains results to the Monday-start week containing the reference time.
	ListPeriodWeek ListPeriod = "week"
	// ListPeriodMonth constrains results to the month containing the reference time.
	ListPeriodMonth ListPeriod = "month"
)

// ListEventsParams wraps the data required to list events.
type ListEventsParams struct {
	Principal       Principal
	TrainerID       string
	Status          scheduler.Status
	Type            scheduler.EventType
	StartsAfter     *time.Time
	StartsBefore    *time.Time
	Period          ListPeriod
	PeriodReference time.Time
	UpcomingOnly    bool
	Limit           int
}

// AvailabilityParams wraps the data required for a read-side conflict check.
type AvailabilityParams struct {
	TrainerID      string
	Start          time.Time
	End            time.Time
	ExcludeEventID string
}

// AnalyticsParams narrows the snapshot handed to the analytics computation.
type AnalyticsParams struct {
	TrainerID       string
	Period          ListPeriod
	PeriodReference time.Time
}

// TrainerInput captures caller provided trainer fields.
type TrainerInput struct {
	Name      string
	Specialty *string
	Active    bool
}

// Trainer represents a staff directory entry exposed by the application services.
type Trainer struct {
	ID        string
	Name      string
	Specialty *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateTrainerParams wraps the data required to create a trainer.
type CreateTrainerParams struct {
	Principal Principal
	Input     TrainerInput
}

// UpdateTrainerParams wraps the data required to update a trainer.
type UpdateTrainerParams struct {
	Principal Principal
	TrainerID string
	Input     TrainerInput
}
