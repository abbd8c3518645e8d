package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var conflictBase = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

func slotEvent(id, trainerID string, start, end time.Time, status Status) Event {
	return Event{
		ID:        id,
		Title:     "session " + id,
		Type:      EventTypeTraining,
		Start:     start,
		End:       end,
		TrainerID: trainerID,
		Status:    status,
	}
}

func TestCheckConflict(t *testing.T) {
	t.Parallel()

	existing := []Event{
		slotEvent("evt-1", "t1", conflictBase, conflictBase.Add(time.Hour), StatusScheduled),
	}

	t.Run("overlapping interval conflicts", func(t *testing.T) {
		result := CheckConflict(existing, "t1", conflictBase.Add(30*time.Minute), conflictBase.Add(90*time.Minute), "")
		require.True(t, result.HasConflict())
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, "evt-1", result.Conflicts[0].ID)
	})

	t.Run("boundary touch is not a conflict", func(t *testing.T) {
		result := CheckConflict(existing, "t1", conflictBase.Add(time.Hour), conflictBase.Add(2*time.Hour), "")
		assert.False(t, result.HasConflict())
	})

	t.Run("other trainer never conflicts", func(t *testing.T) {
		result := CheckConflict(existing, "t2", conflictBase, conflictBase.Add(time.Hour), "")
		assert.False(t, result.HasConflict())
	})

	t.Run("cancelled events never conflict", func(t *testing.T) {
		cancelled := []Event{
			slotEvent("evt-2", "t1", conflictBase.Add(-time.Hour), conflictBase, StatusCancelled),
		}
		result := CheckConflict(cancelled, "t1", conflictBase.Add(-time.Hour), conflictBase, "")
		assert.False(t, result.HasConflict())
	})

	t.Run("exclude id omits the event itself", func(t *testing.T) {
		result := CheckConflict(existing, "t1", conflictBase, conflictBase.Add(time.Hour), "evt-1")
		assert.False(t, result.HasConflict())
	})

	t.Run("all overlapping events are reported", func(t *testing.T) {
		crowded := []Event{
			slotEvent("evt-1", "t1", conflictBase, conflictBase.Add(time.Hour), StatusScheduled),
			slotEvent("evt-2", "t1", conflictBase.Add(45*time.Minute), conflictBase.Add(2*time.Hour), StatusConfirmed),
			slotEvent("evt-3", "t1", conflictBase.Add(3*time.Hour), conflictBase.Add(4*time.Hour), StatusScheduled),
		}
		result := CheckConflict(crowded, "t1", conflictBase.Add(30*time.Minute), conflictBase.Add(time.Hour+30*time.Minute), "")
		require.Len(t, result.Conflicts, 2)
		assert.Equal(t, "evt-1", result.Conflicts[0].ID)
		assert.Equal(t, "evt-2", result.Conflicts[1].ID)
	})
}

func TestOverlapsIsSymmetric(t *testing.T) {
	t.Parallel()

	intervals := []struct {
		s, e time.Time
	}{
		{conflictBase, conflictBase.Add(time.Hour)},
		{conflictBase.Add(30 * time.Minute), conflictBase.Add(90 * time.Minute)},
		{conflictBase.Add(time.Hour), conflictBase.Add(2 * time.Hour)},
		{conflictBase.Add(-time.Hour), conflictBase.Add(15 * time.Minute)},
	}

	for i, a := range intervals {
		for j, b := range intervals {
			forward := Overlaps(a.s, a.e, b.s, b.e)
			backward := Overlaps(b.s, b.e, a.s, a.e)
			assert.Equal(t, forward, backward, "intervals %d and %d", i, j)
		}
	}
}

func TestValidateInterval(t *testing.T) {
	t.Parallel()

	now := conflictBase

	t.Run("valid future interval", func(t *testing.T) {
		err := ValidateInterval(now.Add(time.Hour), now.Add(2*time.Hour), now)
		assert.NoError(t, err)
	})

	t.Run("end before start", func(t *testing.T) {
		err := ValidateInterval(now.Add(2*time.Hour), now.Add(time.Hour), now)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("zero length interval", func(t *testing.T) {
		err := ValidateInterval(now.Add(time.Hour), now.Add(time.Hour), now)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("start in the past", func(t *testing.T) {
		err := ValidateInterval(now.Add(-time.Minute), now.Add(time.Hour), now)
		assert.ErrorIs(t, err, ErrPastScheduling)
	})

	t.Run("start exactly now is accepted", func(t *testing.T) {
		err := ValidateInterval(now, now.Add(time.Hour), now)
		assert.NoError(t, err)
	})
}
