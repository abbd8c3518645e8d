package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusScheduled, StatusNoShow, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusScheduled, false},
		{StatusCompleted, StatusScheduled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusNoShow, StatusConfirmed, false},
		{StatusScheduled, StatusScheduled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusTerminality(t *testing.T) {
	t.Parallel()

	for _, status := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.True(t, status.IsTerminal(), "%s", status)
	}
	for _, status := range []Status{StatusScheduled, StatusConfirmed} {
		assert.False(t, status.IsTerminal(), "%s", status)
	}
}

func TestClosedSets(t *testing.T) {
	t.Parallel()

	for _, status := range Statuses() {
		assert.True(t, status.IsValid())
	}
	assert.False(t, Status("archived").IsValid())

	for _, eventType := range EventTypes() {
		assert.True(t, eventType.IsValid())
	}
	assert.False(t, EventType("spa").IsValid())
}
