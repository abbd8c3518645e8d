package scheduler

import (
	"sort"
	"time"
)

// OperatingHours bounds the busy-hour histogram to the club's opening times.
// Open and Close are hours of day, both inclusive.
type OperatingHours struct {
	Open  int
	Close int
}

// DefaultOperatingHours covers the 08:00 to 19:00 slots most clubs run.
func DefaultOperatingHours() OperatingHours {
	return OperatingHours{Open: 8, Close: 19}
}

// TrainerLoad aggregates the event count carried by a single trainer. The
// name is taken from the first event encountered for the trainer and is a
// display convenience only.
type TrainerLoad struct {
	TrainerID   string
	TrainerName string
	EventCount  int
}

// HourBucket counts events starting within a single hour of the day.
type HourBucket struct {
	Hour  int
	Count int
}

// Analytics is a deterministic aggregate view over an event snapshot,
// consumed by staff dashboards.
type Analytics struct {
	Total                  int
	TodayCount             int
	UpcomingCount          int
	CompletedCount         int
	CancelledCount         int
	ByType                 map[EventType]int
	ByStatus               map[Status]int
	ByTrainer              []TrainerLoad
	BusyHours              []HourBucket
	AverageDurationMinutes float64
}

// ComputeAnalytics derives dashboard statistics from a snapshot of events.
// The computation is pure: calling it twice over the same snapshot yields
// identical results. Day boundaries and hour buckets are evaluated in the
// business location.
func ComputeAnalytics(events []Event, now time.Time, loc *time.Location, hours OperatingHours) Analytics {
	if loc == nil {
		loc = time.UTC
	}
	if hours.Close < hours.Open {
		hours = DefaultOperatingHours()
	}

	snapshot := Analytics{
		Total:          len(events),
		TodayCount:     len(Today(events, now, loc)),
		UpcomingCount:  len(Upcoming(events, now, 0)),
		CompletedCount: len(FilterByStatus(events, StatusCompleted)),
		CancelledCount: len(FilterByStatus(events, StatusCancelled)),
		ByType:         make(map[EventType]int),
		ByStatus:       make(map[Status]int),
	}

	loads := make(map[string]*TrainerLoad)
	order := make([]string, 0)
	var totalDuration time.Duration

	for _, event := range events {
		snapshot.ByType[event.Type]++
		snapshot.ByStatus[event.Status]++
		totalDuration += event.Duration()

		load, ok := loads[event.TrainerID]
		if !ok {
			load = &TrainerLoad{TrainerID: event.TrainerID, TrainerName: event.TrainerName}
			loads[event.TrainerID] = load
			order = append(order, event.TrainerID)
		}
		load.EventCount++
	}

	snapshot.ByTrainer = make([]TrainerLoad, 0, len(order))
	for _, trainerID := range order {
		snapshot.ByTrainer = append(snapshot.ByTrainer, *loads[trainerID])
	}
	sort.SliceStable(snapshot.ByTrainer, func(i, j int) bool {
		if snapshot.ByTrainer[i].EventCount == snapshot.ByTrainer[j].EventCount {
			return snapshot.ByTrainer[i].TrainerID < snapshot.ByTrainer[j].TrainerID
		}
		return snapshot.ByTrainer[i].EventCount > snapshot.ByTrainer[j].EventCount
	})

	snapshot.BusyHours = busyHours(events, loc, hours)

	if len(events) > 0 {
		snapshot.AverageDurationMinutes = totalDuration.Minutes() / float64(len(events))
	}

	return snapshot
}

func busyHours(events []Event, loc *time.Location, hours OperatingHours) []HourBucket {
	buckets := make([]HourBucket, 0, hours.Close-hours.Open+1)
	counts := make(map[int]int)
	for _, event := range events {
		counts[event.Start.In(loc).Hour()]++
	}
	for hour := hours.Open; hour <= hours.Close; hour++ {
		buckets = append(buckets, HourBucket{Hour: hour, Count: counts[hour]})
	}
	return buckets
}
