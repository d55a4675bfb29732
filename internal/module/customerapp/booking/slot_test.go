package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSlotStart(t *testing.T, day, hhmm string) time.Time {
	t.Helper()
	start, err := SlotStart(day, hhmm)
	require.NoError(t, err)
	return start
}

func TestSlotKey(t *testing.T) {
	assert.Equal(t, "2026-09-10|09:00|Cape Town CBD", SlotKey("2026-09-10", "09:00", "Cape Town CBD"))
}

func TestSlotStartRejectsGarbage(t *testing.T) {
	_, err := SlotStart("next tuesday", "09:00")
	assert.Error(t, err)
}

func TestBuildSlotsAllFreeAllFuture(t *testing.T) {
	now := time.Date(2026, 9, 9, 8, 0, 0, 0, time.UTC)

	slots, err := BuildSlots("2026-09-10", nil, now)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	for _, s := range slots {
		assert.False(t, s.Taken, s.Time)
		assert.False(t, s.Past, s.Time)
	}
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "16:30", slots[5].Time)
}

func TestBuildSlotsMarksTaken(t *testing.T) {
	now := time.Date(2026, 9, 9, 8, 0, 0, 0, time.UTC)
	existing := []Booking{
		{Status: StatusConfirmed, StartAt: mustSlotStart(t, "2026-09-10", "10:30")},
	}

	slots, err := BuildSlots("2026-09-10", existing, now)
	require.NoError(t, err)

	assert.False(t, slots[0].Taken)
	assert.True(t, slots[1].Taken)
}

func TestBuildSlotsCancelledBookingFreesSlot(t *testing.T) {
	now := time.Date(2026, 9, 9, 8, 0, 0, 0, time.UTC)
	existing := []Booking{
		{Status: StatusCancelled, StartAt: mustSlotStart(t, "2026-09-10", "10:30")},
	}

	slots, err := BuildSlots("2026-09-10", existing, now)
	require.NoError(t, err)

	assert.False(t, slots[1].Taken)
}

func TestBuildSlotsPastDay(t *testing.T) {
	now := time.Date(2026, 9, 11, 8, 0, 0, 0, time.UTC)

	slots, err := BuildSlots("2026-09-10", nil, now)
	require.NoError(t, err)

	for _, s := range slots {
		assert.True(t, s.Past, s.Time)
	}
}

func TestBuildSlotsToday(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	slots, err := BuildSlots("2026-09-10", nil, now)
	require.NoError(t, err)

	// 09:00, 10:30 and the 12:00 slot itself have passed at noon
	assert.True(t, slots[0].Past)
	assert.True(t, slots[1].Past)
	assert.True(t, slots[2].Past)
	assert.False(t, slots[3].Past)
	assert.False(t, slots[4].Past)
	assert.False(t, slots[5].Past)
}

func TestCancelable(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	future := Booking{Status: StatusConfirmed, StartAt: now.Add(time.Hour)}
	assert.True(t, future.Cancelable(now))

	started := Booking{Status: StatusConfirmed, StartAt: now}
	assert.False(t, started.Cancelable(now))

	past := Booking{Status: StatusConfirmed, StartAt: now.Add(-time.Hour)}
	assert.False(t, past.Cancelable(now))

	cancelled := Booking{Status: StatusCancelled, StartAt: now.Add(time.Hour)}
	assert.False(t, cancelled.Cancelable(now))
}
