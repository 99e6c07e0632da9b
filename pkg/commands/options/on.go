// Package options defines shared flag helpers for CLI commands.
package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/entry"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions selects a calendar day.
type OnOptions struct {
	OnString string
	// Now defaults to time.Now.
	Now func() time.Time
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions, usage string) {
	cmd.Flags().StringVar(&o.OnString, "on", "", usage+
		` Example: --on="2024-6-10" or --on="6/10".`)
}

// GetOn parses --on. An empty value yields the zero Date.
func (o *OnOptions) GetOn() (entry.Date, error) {
	return ParseDay(o.OnString, o.now())
}

// GetOnOrToday is GetOn falling back to today.
func (o *OnOptions) GetOnOrToday() (entry.Date, error) {
	d, err := o.GetOn()
	if err == nil && d.IsZero() {
		d = entry.DateOf(o.now())
	}
	return d, err
}

func (o *OnOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// ParseDay accepts "2024-6-10" or "6/10". A short date takes the year of now,
// or the next year when that day has already passed.
func ParseDay(raw string, now time.Time) (entry.Date, error) {
	if raw == "" {
		return entry.Date{}, nil
	}
	t, err := time.Parse(layoutISO, raw)
	if err == nil {
		return entry.DateOf(t), nil
	}
	t, err = time.Parse(layoutISOShort, raw)
	if err != nil {
		return entry.Date{}, err
	}
	d := entry.NewDate(now.Year(), t.Month(), t.Day())
	if d.Before(entry.DateOf(now)) {
		d = entry.DateOf(d.AddDate(1, 0, 0))
	}
	return d, nil
}
