package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var window = Window{StartHour: 9, EndHour: 21, BufferHours: 3, SlotHours: DefaultSlotHours}

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 17, hour, minute, 0, 0, time.UTC)
}

func starts(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestSlotsPartitionWindow(t *testing.T) {
	slots := Slots(window)
	require.Len(t, slots, 6)

	assert.Equal(t, window.StartHour, slots[0].StartHour)
	assert.Equal(t, window.EndHour, slots[len(slots)-1].EndHour)
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].EndHour, slots[i].StartHour, "slot %d must start where the previous ends", i)
	}
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "11:00", slots[0].End)
	assert.Equal(t, "09:00 AM - 11:00 AM", slots[0].Label)
}

func TestSlotsShortLastSlot(t *testing.T) {
	slots := Slots(Window{StartHour: 8, EndHour: 13, SlotHours: 2})
	require.Len(t, slots, 3)
	last := slots[2]
	assert.Equal(t, 12, last.StartHour)
	assert.Equal(t, 13, last.EndHour)
}

func TestInvalidWindowYieldsNothing(t *testing.T) {
	bad := Window{StartHour: 20, EndHour: 9, SlotHours: 2}
	assert.Empty(t, Slots(bad))
	assert.Empty(t, AvailableDates(at(10, 0), bad, 7))
	assert.Empty(t, AvailableTimes(at(10, 0), at(10, 0), bad))
}

func TestAvailableTimesBeforeCutoff(t *testing.T) {
	// cutoff is 18:00; the 17:00 slot starts in the current hour and is excluded
	now := at(17, 0)
	assert.Equal(t, []string{"19:00"}, starts(AvailableTimes(now, now, window)))

	dates := AvailableDates(now, window, 7)
	require.NotEmpty(t, dates)
	assert.Equal(t, "2026-10-17", dates[0].Value)
	assert.Equal(t, "Today", dates[0].Label)
}

func TestAvailableTimesAfterCutoff(t *testing.T) {
	now := at(19, 30)

	dates := AvailableDates(now, window, 7)
	require.Len(t, dates, 7)
	assert.Equal(t, "2026-10-18", dates[0].Value)
	assert.Equal(t, "Tomorrow", dates[0].Label)
	assert.Equal(t, "2026-10-24", dates[6].Value)

	assert.Empty(t, AvailableTimes(now, now, window))
}

func TestAvailableDatesLabels(t *testing.T) {
	dates := AvailableDates(at(8, 0), window, 3)
	require.Len(t, dates, 3)
	assert.Equal(t, "Today", dates[0].Label)
	assert.Equal(t, "Tomorrow", dates[1].Label)
	assert.Equal(t, "Mon, Oct 19", dates[2].Label)
}

func TestAvailableTimesFutureAndPastDates(t *testing.T) {
	now := at(20, 0)
	assert.Len(t, AvailableTimes(now.AddDate(0, 0, 1), now, window), 6)
	assert.Empty(t, AvailableTimes(now.AddDate(0, 0, -1), now, window))
}

func TestAvailableTimesEarlyMorningKeepsEverySlot(t *testing.T) {
	now := at(6, 45)
	assert.Len(t, AvailableTimes(now, now, window), 6)
}

func TestTodayEmptyExactlyFromCutoffHour(t *testing.T) {
	for h := 0; h < 24; h++ {
		now := at(h, 30)
		empty := len(AvailableTimes(now, now, window)) == 0
		assert.Equal(t, h >= window.CutoffHour(), empty, "hour %d", h)
	}
}

func TestFirstDateNeverTodayPastCutoff(t *testing.T) {
	for m := 0; m < 24*60; m += 15 {
		now := at(0, 0).Add(time.Duration(m) * time.Minute)
		dates := AvailableDates(now, window, 7)
		require.NotEmpty(t, dates)
		if now.Hour() >= window.CutoffHour() && now.After(at(window.CutoffHour(), 0)) {
			assert.Equal(t, "2026-10-18", dates[0].Value, "at %s", now.Format(TimeLayout))
		}
	}
}

func TestIsBookable(t *testing.T) {
	now := at(17, 0)
	assert.True(t, IsBookable("2026-10-17", "19:00", now, window, 7))
	assert.False(t, IsBookable("2026-10-17", "17:00", now, window, 7))
	assert.True(t, IsBookable("2026-10-18", "09:00", now, window, 7))
	assert.False(t, IsBookable("2026-10-18", "10:00", now, window, 7))
	assert.False(t, IsBookable("2026-11-30", "09:00", now, window, 7), "outside the horizon")
	assert.False(t, IsBookable("17/10/2026", "19:00", now, window, 7))

	// the same selection goes stale once the clock passes the cutoff
	assert.False(t, IsBookable("2026-10-17", "19:00", at(18, 5), window, 7))
}
