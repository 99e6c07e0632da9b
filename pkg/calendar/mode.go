// Package calendar turns a flat list of scheduled entries into calendar
// day buckets with conflict annotations and aggregate metrics. Everything in
// this package is a pure function of its inputs.
package calendar

import (
	"fmt"
	"strings"
)

// ViewMode is the calendar granularity being rendered.
type ViewMode string

const (
	// ModeMonth covers whole Monday-first weeks around one month.
	ModeMonth ViewMode = "month"
	// ModeWeek covers the ISO week of the reference date.
	ModeWeek ViewMode = "week"
	// ModeDay covers the reference date only.
	ModeDay ViewMode = "day"
	// ModeAgenda covers the next two weeks, listing only busy days.
	ModeAgenda ViewMode = "agenda"
)

// agendaDays is the length of the agenda window.
const agendaDays = 14

// AllModes returns the list of supported view modes.
func AllModes() []ViewMode {
	return []ViewMode{ModeMonth, ModeWeek, ModeDay, ModeAgenda}
}

// InvalidViewModeError is returned for view modes the resolver does not know.
type InvalidViewModeError struct {
	Mode string
}

func (e *InvalidViewModeError) Error() string {
	return fmt.Sprintf("calendar: unsupported view mode %q", e.Mode)
}

// ParseViewMode converts a string to a ViewMode. An empty string is month.
func ParseViewMode(raw string) (ViewMode, error) {
	m := ViewMode(strings.ToLower(strings.TrimSpace(raw)))
	if m == "" {
		return ModeMonth, nil
	}
	for _, candidate := range AllModes() {
		if candidate == m {
			return candidate, nil
		}
	}
	return "", &InvalidViewModeError{Mode: raw}
}

// Valid reports whether m is a supported mode.
func (m ViewMode) Valid() bool {
	_, err := ParseViewMode(string(m))
	return err == nil && m != ""
}
