package persistence

import "time"

// Event represents a booked time slot stored in persistence.
type Event struct {
	ID          string
	Title       string
	Type        string
	Start       time.Time
	End         time.Time
	TrainerID   string
	TrainerName string
	ClientID    *string
	ClientName  *string
	Status      string
	Location    *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// Trainer represents a staff directory entry.
type Trainer struct {
	ID        string
	Name      string
	Specialty *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
