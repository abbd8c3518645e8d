package scheduler

import (
	"errors"
	"time"
)

var (
	// ErrInvalidInterval is returned when an interval does not end after it starts.
	ErrInvalidInterval = errors.New("scheduler: end must be after start")
	// ErrPastScheduling is returned when an interval starts before the reference time.
	ErrPastScheduling = errors.New("scheduler: start must not be in the past")
)

// ConflictResult reports the outcome of a conflict check. Conflicts carries
// every overlapping event so callers can present the full picture, not just
// the first collision.
type ConflictResult struct {
	Conflicts []Event
}

// HasConflict reports whether any overlapping event was found.
func (r ConflictResult) HasConflict() bool {
	return len(r.Conflicts) > 0
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. A boundary touch (one ending exactly when the other starts) is
// not an overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// CheckConflict decides whether the proposed [start,end) interval for a
// trainer collides with existing bookings. Cancelled events never block a
// slot, and excludeID omits an event from the candidate set so updates do not
// conflict with themselves. The check is pure over the supplied snapshot.
func CheckConflict(existing []Event, trainerID string, start, end time.Time, excludeID string) ConflictResult {
	var conflicts []Event
	for _, event := range existing {
		if event.TrainerID != trainerID {
			continue
		}
		if excludeID != "" && event.ID == excludeID {
			continue
		}
		if event.Status == StatusCancelled {
			continue
		}
		if Overlaps(event.Start, event.End, start, end) {
			conflicts = append(conflicts, event)
		}
	}
	return ConflictResult{Conflicts: conflicts}
}

// ValidateInterval checks the basic temporal rules for a proposed slot:
// the interval must be non-empty and must not start before now.
func ValidateInterval(start, end, now time.Time) error {
	if !end.After(start) {
		return ErrInvalidInterval
	}
	if start.Before(now) {
		return ErrPastScheduling
	}
	return nil
}
