package calendar

import (
	"time"

	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/store"
)

// ViewRequest is the serialisable description of what to render.
type ViewRequest struct {
	Reference time.Time    `json:"reference"`
	Mode      ViewMode     `json:"mode"`
	Filters   store.Filter `json:"filters"`
}

// View is the renderable calendar: day buckets plus metrics.
type View struct {
	Request ViewRequest `json:"request"`
	Range   Range       `json:"range"`
	Days    []Day       `json:"days"`
	Metrics Metrics     `json:"metrics"`
	// Conflicts counts entries flagged in any day of the view.
	Conflicts int `json:"conflicts"`
	// ConflictsOnly is set when days without conflicts were dropped, so Days
	// no longer forms whole weeks.
	ConflictsOnly bool `json:"conflicts_only,omitempty"`
}

// Option customises Build behaviour.
type Option func(*buildOptions)

type buildOptions struct {
	successWindow time.Duration
	conflictsOnly bool
}

// WithSuccessWindow bounds the success-rate metric to the trailing window.
func WithSuccessWindow(d time.Duration) Option {
	return func(opts *buildOptions) {
		opts.successWindow = d
	}
}

// WithConflictsOnly drops days that have no conflicts.
func WithConflictsOnly() Option {
	return func(opts *buildOptions) {
		opts.conflictsOnly = true
	}
}

// Build runs the full pipeline: resolve the range, filter, bucket, annotate
// conflicts and aggregate metrics over the filtered entries.
func Build(req ViewRequest, entries []*entry.Entry, today time.Time, opts ...Option) (View, error) {
	config := &buildOptions{}
	for _, opt := range opts {
		opt(config)
	}
	if req.Mode == "" {
		req.Mode = ModeMonth
	}
	if req.Reference.IsZero() {
		req.Reference = today
	}

	rng, err := ResolveRange(req.Reference, req.Mode)
	if err != nil {
		return View{}, err
	}

	filtered := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if req.Filters.Matches(e) {
			filtered = append(filtered, e)
		}
	}

	reference := req.Reference
	if req.Mode != ModeMonth {
		reference = time.Time{}
	}
	buckets := BuildBuckets(rng, reference, filtered, today)

	days := make([]Day, 0, len(buckets))
	conflicts := 0
	for _, b := range buckets {
		day := AnnotateConflicts(b)
		conflicts += day.ConflictCount
		if config.conflictsOnly && !day.HasConflicts {
			continue
		}
		if req.Mode == ModeAgenda && day.Len() == 0 {
			continue
		}
		days = append(days, day)
	}

	return View{
		Request:       req,
		Range:         rng,
		Days:          days,
		Metrics:       BuildMetrics(filtered, today, config.successWindow),
		Conflicts:     conflicts,
		ConflictsOnly: config.conflictsOnly,
	}, nil
}

// Day returns the bucket for date, if it is part of the view.
func (v View) Day(date entry.Date) (Day, bool) {
	for _, d := range v.Days {
		if d.Date.Equal(date) {
			return d, true
		}
	}
	return Day{}, false
}

// Weeks splits the days into rows of seven, as used by month grids. A
// conflicts-only view has no week rows.
func (v View) Weeks() [][]Day {
	if v.ConflictsOnly {
		return nil
	}
	var weeks [][]Day
	for i := 0; i < len(v.Days); i += 7 {
		end := i + 7
		if end > len(v.Days) {
			end = len(v.Days)
		}
		weeks = append(weeks, v.Days[i:end])
	}
	return weeks
}
