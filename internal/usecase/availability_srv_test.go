package usecase

import (
	"context"
	"testing"
	"time"

	"service-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityDates(t *testing.T) {
	h := newHarness(t)

	dates, err := h.svc.Availability.GetDates(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, entity.DomainHomeServices, dates.Domain)
	require.Len(t, dates.Dates, 7)
	assert.Equal(t, "2026-10-17", dates.Dates[0].Date)
	assert.Equal(t, "Today", dates.Dates[0].Label)

	h.now = time.Date(2026, 10, 17, 19, 30, 0, 0, time.UTC)
	dates, err = h.svc.Availability.GetDates(context.Background(), "appliance-repairs")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", dates.Dates[0].Date)
	assert.Equal(t, "Tomorrow", dates.Dates[0].Label)
}

func TestAvailabilityTimes(t *testing.T) {
	h := newHarness(t)
	h.now = time.Date(2026, 10, 17, 17, 0, 0, 0, time.UTC)

	times, err := h.svc.Availability.GetTimes(context.Background(), "", "2026-10-17")
	require.NoError(t, err)
	require.Len(t, times.Slots, 1)
	assert.Equal(t, "19:00", times.Slots[0].Start)

	times, err = h.svc.Availability.GetTimes(context.Background(), "", "2026-10-18")
	require.NoError(t, err)
	assert.Len(t, times.Slots, 6)
}

func TestAvailabilityRejectsBadInput(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Availability.GetTimes(context.Background(), "", "17-10-2026")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)

	_, err = h.svc.Availability.GetDates(context.Background(), "pet-care")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "domain", verr.Field)
}
