package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyticsFixture() ([]Event, time.Time) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	day := func(hour int) time.Time {
		return time.Date(2024, time.June, 1, hour, 0, 0, 0, time.UTC)
	}
	events := []Event{
		{ID: "a1", Type: EventTypeTraining, Status: StatusCompleted, TrainerID: "t1", TrainerName: "Mia", Start: day(9), End: day(10)},
		{ID: "a2", Type: EventTypeTraining, Status: StatusConfirmed, TrainerID: "t1", TrainerName: "Mia", Start: day(14), End: day(15)},
		{ID: "a3", Type: EventTypeGroupClass, Status: StatusScheduled, TrainerID: "t2", TrainerName: "Noah", Start: day(18), End: day(19).Add(30 * time.Minute)},
		{ID: "a4", Type: EventTypeConsultation, Status: StatusCancelled, TrainerID: "t1", TrainerName: "Mia", Start: day(9).AddDate(0, 0, 1), End: day(9).AddDate(0, 0, 1).Add(30 * time.Minute)},
	}
	return events, now
}

func TestComputeAnalyticsCounts(t *testing.T) {
	t.Parallel()

	events, now := analyticsFixture()
	snapshot := ComputeAnalytics(events, now, time.UTC, DefaultOperatingHours())

	assert.Equal(t, 4, snapshot.Total)
	assert.Equal(t, 3, snapshot.TodayCount)
	assert.Equal(t, 2, snapshot.UpcomingCount)
	assert.Equal(t, 1, snapshot.CompletedCount)
	assert.Equal(t, 1, snapshot.CancelledCount)

	assert.Equal(t, map[EventType]int{
		EventTypeTraining:     2,
		EventTypeGroupClass:   1,
		EventTypeConsultation: 1,
	}, snapshot.ByType)
	assert.Equal(t, map[Status]int{
		StatusCompleted: 1,
		StatusConfirmed: 1,
		StatusScheduled: 1,
		StatusCancelled: 1,
	}, snapshot.ByStatus)
}

func TestComputeAnalyticsSumInvariant(t *testing.T) {
	t.Parallel()

	events, now := analyticsFixture()
	snapshot := ComputeAnalytics(events, now, time.UTC, DefaultOperatingHours())

	byType := 0
	for _, count := range snapshot.ByType {
		byType += count
	}
	byStatus := 0
	for _, count := range snapshot.ByStatus {
		byStatus += count
	}
	assert.Equal(t, snapshot.Total, byType)
	assert.Equal(t, snapshot.Total, byStatus)
}

func TestComputeAnalyticsByTrainer(t *testing.T) {
	t.Parallel()

	events, now := analyticsFixture()
	snapshot := ComputeAnalytics(events, now, time.UTC, DefaultOperatingHours())

	require.Len(t, snapshot.ByTrainer, 2)
	assert.Equal(t, TrainerLoad{TrainerID: "t1", TrainerName: "Mia", EventCount: 3}, snapshot.ByTrainer[0])
	assert.Equal(t, TrainerLoad{TrainerID: "t2", TrainerName: "Noah", EventCount: 1}, snapshot.ByTrainer[1])
}

func TestComputeAnalyticsBusyHours(t *testing.T) {
	t.Parallel()

	events, now := analyticsFixture()
	snapshot := ComputeAnalytics(events, now, time.UTC, DefaultOperatingHours())

	require.Len(t, snapshot.BusyHours, 12)
	counts := make(map[int]int)
	for _, bucket := range snapshot.BusyHours {
		counts[bucket.Hour] = bucket.Count
	}
	assert.Equal(t, 2, counts[9])
	assert.Equal(t, 1, counts[14])
	assert.Equal(t, 1, counts[18])
	assert.Equal(t, 0, counts[11])
}

func TestComputeAnalyticsAverageDuration(t *testing.T) {
	t.Parallel()

	events, now := analyticsFixture()
	snapshot := ComputeAnalytics(events, now, time.UTC, DefaultOperatingHours())

	// durations: 60 + 60 + 90 + 30 minutes over four events
	assert.InDelta(t, 60.0, snapshot.AverageDurationMinutes, 0.001)
}

func TestComputeAnalyticsEmptySnapshot(t *testing.T) {
	t.Parallel()

	snapshot := ComputeAnalytics(nil, time.Now(), time.UTC, DefaultOperatingHours())

	assert.Zero(t, snapshot.Total)
	assert.Zero(t, snapshot.AverageDurationMinutes)
	assert.Empty(t, snapshot.ByTrainer)
	assert.Len(t, snapshot.BusyHours, 12)
}

func TestComputeAnalyticsIsDeterministic(t *testing.T) {
	t.Parallel()

	events, now := analyticsFixture()
	first := ComputeAnalytics(events, now, time.UTC, DefaultOperatingHours())
	second := ComputeAnalytics(events, now, time.UTC, DefaultOperatingHours())

	assert.Equal(t, first, second)
}
