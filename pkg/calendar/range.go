package calendar

import (
	"time"

	"tableflip.dev/contentcal/pkg/entry"
)

// Range is an inclusive span of calendar days.
type Range struct {
	Start    entry.Date `json:"start"`
	End      entry.Date `json:"end"`
	DayCount int        `json:"day_count"`
}

// ResolveRange computes the days covered by mode around reference.
//
// Month ranges start on the Monday on or before the 1st and end on the
// Sunday on or after the last day, so the grid is always whole weeks. Week
// ranges are the ISO week (Monday-first) holding reference.
func ResolveRange(reference time.Time, mode ViewMode) (Range, error) {
	ref := entry.DateOf(reference)
	if ref.IsZero() {
		ref = entry.DateOf(time.Now())
	}
	var start, end entry.Date
	switch mode {
	case ModeMonth:
		first := entry.NewDate(ref.Year(), ref.Month(), 1)
		last := entry.DateOf(first.AddDate(0, 1, -1))
		start = mondayOnOrBefore(first)
		end = sundayOnOrAfter(last)
	case ModeWeek:
		start = mondayOnOrBefore(ref)
		end = start.AddDays(6)
	case ModeDay:
		start, end = ref, ref
	case ModeAgenda:
		start = ref
		end = ref.AddDays(agendaDays - 1)
	default:
		return Range{}, &InvalidViewModeError{Mode: string(mode)}
	}
	return newRange(start, end), nil
}

func newRange(start, end entry.Date) Range {
	// Dates are UTC midnights, so every day is exactly 24h.
	days := int(end.Sub(start.Time)/(24*time.Hour)) + 1
	return Range{Start: start, End: end, DayCount: days}
}

// Days lists every date in the range.
func (r Range) Days() []entry.Date {
	if r.DayCount <= 0 {
		return nil
	}
	out := make([]entry.Date, 0, r.DayCount)
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// Contains reports whether d falls inside the range.
func (r Range) Contains(d entry.Date) bool {
	return !d.IsZero() && !d.Before(r.Start) && !d.After(r.End)
}

func mondayOnOrBefore(d entry.Date) entry.Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

func sundayOnOrAfter(d entry.Date) entry.Date {
	offset := (7 - int(d.Weekday())) % 7
	return d.AddDays(offset)
}
