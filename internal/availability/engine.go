// Package availability computes which dates and time slots can be booked at a
// given instant, for a fixed daily service window and a same-day cutoff buffer.
//
// Every function is a pure function of its arguments. Callers pass the current
// time explicitly and must re-evaluate at the moment of each user action: a slot
// that was bookable when a page rendered can stop being bookable before submit.
package availability

import (
	"fmt"
	"time"
)

const (
	DefaultSlotHours   = 2
	DefaultHorizonDays = 7

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Window is the daily service-hours configuration, in the client's timezone.
type Window struct {
	StartHour   int
	EndHour     int
	BufferHours int
	SlotHours   int
}

// Valid reports whether the window can be partitioned into slots.
func (w Window) Valid() bool {
	return w.StartHour >= 0 && w.EndHour <= 24 && w.StartHour < w.EndHour &&
		w.BufferHours >= 0 && w.SlotHours > 0
}

// CutoffHour is the hour of the day from which same-day booking is closed.
func (w Window) CutoffHour() int {
	return w.EndHour - w.BufferHours
}

// DateOption is one selectable booking date.
type DateOption struct {
	Date  time.Time
	Value string
	Label string
}

// Slot is a fixed-width window inside [StartHour, EndHour).
type Slot struct {
	StartHour int
	EndHour   int
	Start     string
	End       string
	Label     string
}

// Slots partitions the service window into consecutive non-overlapping slots.
// The last slot is shortened when the window is not a multiple of SlotHours.
func Slots(w Window) []Slot {
	if !w.Valid() {
		return nil
	}

	slots := make([]Slot, 0, (w.EndHour-w.StartHour+w.SlotHours-1)/w.SlotHours)
	for h := w.StartHour; h < w.EndHour; h += w.SlotHours {
		end := min(h+w.SlotHours, w.EndHour)
		slots = append(slots, Slot{
			StartHour: h,
			EndHour:   end,
			Start:     clock(h),
			End:       clock(end),
			Label:     fmt.Sprintf("%s - %s", clock12(h), clock12(end)),
		})
	}
	return slots
}

// AvailableDates returns horizonDays consecutive dates, starting today or, once
// now is past today's cutoff, tomorrow. Labels follow the calendar, not the
// position: when the horizon is pushed, the first date is labelled "Tomorrow".
func AvailableDates(now time.Time, w Window, horizonDays int) []DateOption {
	if !w.Valid() || horizonDays <= 0 {
		return nil
	}

	today := midnight(now)
	tomorrow := today.AddDate(0, 0, 1)
	cutoff := today.Add(time.Duration(w.CutoffHour()) * time.Hour)

	start := today
	if now.After(cutoff) {
		start = tomorrow
	}

	dates := make([]DateOption, 0, horizonDays)
	for i := 0; i < horizonDays; i++ {
		d := start.AddDate(0, 0, i)

		label := d.Format("Mon, Jan 2")
		switch {
		case sameDay(d, today):
			label = "Today"
		case sameDay(d, tomorrow):
			label = "Tomorrow"
		}

		dates = append(dates, DateOption{
			Date:  d,
			Value: d.Format(DateLayout),
			Label: label,
		})
	}
	return dates
}

// AvailableTimes returns the slots that can still be booked on date.
// Future dates get every slot; today gets nothing once the cutoff hour is
// reached and otherwise only slots starting after the current hour; past
// dates get nothing. An empty result is not an error.
func AvailableTimes(date, now time.Time, w Window) []Slot {
	all := Slots(w)
	if len(all) == 0 {
		return nil
	}

	day := midnight(date.In(now.Location()))
	today := midnight(now)

	switch {
	case day.Before(today):
		return nil
	case day.After(today):
		return all
	}

	if now.Hour() >= w.CutoffHour() {
		return nil
	}

	open := make([]Slot, 0, len(all))
	for _, s := range all {
		if s.StartHour > now.Hour() {
			open = append(open, s)
		}
	}
	return open
}

// IsBookable re-evaluates the engine for now and reports whether the given
// date ("2006-01-02") and slot start ("15:04") are currently offered.
func IsBookable(date, start string, now time.Time, w Window, horizonDays int) bool {
	d, err := ParseDate(date, now.Location())
	if err != nil {
		return false
	}

	offered := false
	for _, opt := range AvailableDates(now, w, horizonDays) {
		if sameDay(opt.Date, d) {
			offered = true
			break
		}
	}
	if !offered {
		return false
	}

	for _, s := range AvailableTimes(d, now, w) {
		if s.Start == start {
			return true
		}
	}
	return false
}

// ParseDate parses an ISO date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func clock(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

func clock12(h int) string {
	return time.Date(2000, 1, 1, h, 0, 0, 0, time.UTC).Format("03:04 PM")
}
