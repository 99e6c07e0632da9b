package entry

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LayoutISO is the wire and storage layout for calendar dates.
const LayoutISO = "2006-01-02"

// Date is a calendar day with no time-of-day component. The zero Date means
// "unset".
type Date struct {
	time.Time
}

// DateOf truncates t to midnight UTC of its own calendar day.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// NewDate builds a Date from its parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(v string) (Date, error) {
	t, err := time.Parse(LayoutISO, strings.TrimSpace(v))
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// MustDate parses v and panics on error. Intended for tests.
func MustDate(v string) Date {
	d, err := ParseDate(v)
	if err != nil {
		panic(err)
	}
	return d
}

// SameDay reports whether then falls on this date, ignoring time of day.
func (d Date) SameDay(then time.Time) bool {
	return d.Year() == then.Year() && d.Month() == then.Month() && d.Day() == then.Day()
}

// SameMonth reports whether then falls in this date's month.
func (d Date) SameMonth(then time.Time) bool {
	return d.Month() == then.Month() && d.Year() == then.Year()
}

// Equal compares two dates at day granularity.
func (d Date) Equal(o Date) bool {
	return d.SameDay(o.Time)
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time) && !d.Equal(o)
}

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool {
	return d.Time.After(o.Time) && !d.Equal(o)
}

// AddDays moves the date using calendar arithmetic.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(LayoutISO)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		*d = Date{}
		return nil
	}
	// Accept full timestamps from older exports and keep only the day.
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		*d = DateOf(t)
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
