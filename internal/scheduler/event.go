package scheduler

import "time"

// EventType categorizes a booked slot for reporting purposes.
type EventType string

const (
	// EventTypeTraining is a one-on-one training session.
	EventTypeTraining EventType = "training"
	// EventTypeConsultation is an intake or programme consultation.
	EventTypeConsultation EventType = "consultation"
	// EventTypeGroupClass is an open group class slot.
	EventTypeGroupClass EventType = "group-class"
)

// EventTypes lists the closed set of recognized event types.
func EventTypes() []EventType {
	return []EventType{EventTypeTraining, EventTypeConsultation, EventTypeGroupClass}
}

// IsValid reports whether the type belongs to the closed set.
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeTraining, EventTypeConsultation, EventTypeGroupClass:
		return true
	}
	return false
}

// Status tracks the lifecycle of a booked slot.
type Status string

const (
	// StatusScheduled is the initial state of a freshly created event.
	StatusScheduled Status = "scheduled"
	// StatusConfirmed indicates the booking was acknowledged by staff.
	StatusConfirmed Status = "confirmed"
	// StatusCompleted indicates the session took place.
	StatusCompleted Status = "completed"
	// StatusCancelled indicates the slot was released before it ran.
	StatusCancelled Status = "cancelled"
	// StatusNoShow indicates the client did not attend a confirmed slot.
	StatusNoShow Status = "no-show"
)

// Statuses lists the closed set of recognized statuses.
func Statuses() []Status {
	return []Status{StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow}
}

// IsValid reports whether the status belongs to the closed set.
func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is accepted from the status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CanTransition reports whether the status machine permits moving from one
// status to another. Cancellation timing is the caller's concern; this only
// encodes reachability.
func CanTransition(from, to Status) bool {
	if from == to {
		return false
	}
	switch from {
	case StatusScheduled:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusNoShow || to == StatusCancelled
	}
	return false
}

// Event represents a scheduled time slot in the club booking domain.
type Event struct {
	ID          string
	Title       string
	Type        EventType
	Start       time.Time
	End         time.Time
	TrainerID   string
	TrainerName string
	ClientID    string
	ClientName  string
	Status      Status
	Location    string
}

// Duration returns the booked span of the event.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}
