package scheduler

import (
	"sort"
	"time"
)

// FilterByStatus returns the events carrying the given status.
func FilterByStatus(events []Event, status Status) []Event {
	return filter(events, func(e Event) bool { return e.Status == status })
}

// FilterByType returns the events of the given type.
func FilterByType(events []Event, eventType EventType) []Event {
	return filter(events, func(e Event) bool { return e.Type == eventType })
}

// FilterByTrainer returns the events owned by the given trainer.
func FilterByTrainer(events []Event, trainerID string) []Event {
	return filter(events, func(e Event) bool { return e.TrainerID == trainerID })
}

// FilterByDateRange returns the events whose start falls within [from, to],
// bounds inclusive.
func FilterByDateRange(events []Event, from, to time.Time) []Event {
	return filter(events, func(e Event) bool {
		return !e.Start.Before(from) && !e.Start.After(to)
	})
}

// SortByDate returns a copy of the events stably ordered by start time.
func SortByDate(events []Event, ascending bool) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].Start.After(out[j].Start)
	})
	return out
}

// Upcoming returns future, non-cancelled events ascending by start time. A
// limit of zero or less returns the full set.
func Upcoming(events []Event, now time.Time, limit int) []Event {
	upcoming := filter(events, func(e Event) bool {
		return e.Start.After(now) && e.Status != StatusCancelled
	})
	upcoming = SortByDate(upcoming, true)
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// Today returns the events whose start falls on the same calendar day as now.
// Day boundaries are computed in the supplied business location so that staff
// and clients in different zones agree on what "today" means.
func Today(events []Event, now time.Time, loc *time.Location) []Event {
	if loc == nil {
		loc = time.UTC
	}
	reference := now.In(loc)
	return filter(events, func(e Event) bool {
		start := e.Start.In(loc)
		return start.Year() == reference.Year() && start.YearDay() == reference.YearDay()
	})
}

// Overdue returns confirmed events that already ended, i.e. slots that should
// have been marked completed or no-show but were not.
func Overdue(events []Event, now time.Time) []Event {
	return filter(events, func(e Event) bool {
		return e.End.Before(now) && e.Status == StatusConfirmed
	})
}

func filter(events []Event, keep func(Event) bool) []Event {
	out := make([]Event, 0, len(events))
	for _, event := range events {
		if keep(event) {
			out = append(out, event)
		}
	}
	return out
}
