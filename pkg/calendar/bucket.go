package calendar

import (
	"time"

	"tableflip.dev/contentcal/pkg/entry"
)

// Day is one calendar bucket. Days are built fresh on every render and are
// never mutated after they are returned.
type Day struct {
	Date           entry.Date     `json:"date"`
	Events         []*entry.Entry `json:"events"`
	IsCurrentMonth bool           `json:"is_current_month"`
	IsToday        bool           `json:"is_today"`
	IsPast         bool           `json:"is_past"`
	HasConflicts   bool           `json:"has_conflicts"`
	ConflictCount  int            `json:"conflict_count"`
}

// BuildBuckets creates one Day per date in rng and places every entry whose
// calendar date matches it. Entries outside the range are ignored. The
// month flag compares against reference; pass a zero reference for views
// where every day counts as current.
func BuildBuckets(rng Range, reference time.Time, entries []*entry.Entry, today time.Time) []Day {
	todayDate := entry.DateOf(today)
	byDay := make(map[string][]*entry.Entry, rng.DayCount)
	for _, e := range entries {
		if e == nil || !rng.Contains(e.CalendarDate) {
			continue
		}
		key := e.CalendarDate.String()
		byDay[key] = append(byDay[key], e.Clone())
	}

	days := make([]Day, 0, rng.DayCount)
	for _, date := range rng.Days() {
		events := byDay[date.String()]
		entry.Sort(events)
		if events == nil {
			events = []*entry.Entry{}
		}
		days = append(days, Day{
			Date:           date,
			Events:         events,
			IsCurrentMonth: reference.IsZero() || date.SameMonth(reference),
			IsToday:        date.Equal(todayDate),
			IsPast:         date.Before(todayDate),
		})
	}
	return days
}

// Len returns the number of events in the day.
func (d Day) Len() int {
	return len(d.Events)
}
