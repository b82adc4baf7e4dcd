package booking

import (
	"time"

	"github.com/barberflow/booking-api/internal/schedule"
	"github.com/barberflow/booking-api/internal/timezone"
)

// Generator enumerates the slot grid for a master and date. Output depends
// only on the registry, the slot duration and the injected clock, so it is
// deterministic under test.
type Generator struct {
	Registry     *schedule.Registry
	SlotDuration time.Duration
	Now          func() time.Time
}

func NewGenerator(reg *schedule.Registry, slotDuration time.Duration, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		Registry:     reg,
		SlotDuration: slotDuration,
		Now:          now,
	}
}

// SlotsFor returns every candidate "HH:MM" start time for the master on the
// given date, in ascending order. Unknown master or an inactive weekday
// yields nil. The window is half-open: start times run from the window start
// while strictly before the window end. When date is today, slot starts at or
// before the current time-of-day are dropped; there is no grace window.
func (g *Generator) SlotsFor(master string, date time.Time) []string {
	m, ok := g.Registry.Get(master)
	if !ok {
		return nil
	}
	if !m.WorksOn(schedule.WeekdayIndex(date)) {
		return nil
	}

	loc := date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	windowStart := parseHM(m.Start)
	windowEnd := parseHM(m.End)

	now := g.Now().In(loc)
	isToday := timezone.SameDay(date, now)

	var slots []string
	for cur := windowStart; cur.Before(windowEnd); cur = cur.Add(g.SlotDuration) {
		if isToday && !cur.After(now) {
			continue
		}
		slots = append(slots, cur.Format("15:04"))
	}

	return slots
}

// IsValidSlot reports whether the "HH:MM" start time is one of the currently
// bookable candidates for the master and date. The reservation flow accepts
// each selection as an independent call, so the requested time is re-checked
// against the grid instead of trusting the client's earlier listing.
func (g *Generator) IsValidSlot(master string, date time.Time, timeOfDay string) bool {
	for _, s := range g.SlotsFor(master, date) {
		if s == timeOfDay {
			return true
		}
	}
	return false
}
