// Package watch keeps a calendar view on screen and redraws it when entries
// change on disk or the refresh interval elapses.
package watch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/logging"
	"tableflip.dev/contentcal/pkg/printers"
	"tableflip.dev/contentcal/pkg/refresh"
)

const clearScreen = "\033[H\033[2J"

// Watch redraws Request until the context is cancelled.
type Watch struct {
	Service  *app.Service
	Request  calendar.ViewRequest
	Interval time.Duration
	ShowID   bool
	Out      io.Writer

	// Scheduler overrides the ticker built from Interval.
	Scheduler refresh.Scheduler
	// NoClear keeps earlier frames on screen.
	NoClear bool
}

// Do blocks until ctx is done.
func (w *Watch) Do(ctx context.Context) error {
	log := logging.For("watch")
	out := w.Out
	if out == nil {
		out = color.Output
	}
	sched := w.Scheduler
	if sched == nil {
		if w.Interval <= 0 {
			return fmt.Errorf("watch: refresh interval must be positive, got %s", w.Interval)
		}
		sched = refresh.NewTicker(w.Interval)
	}

	events, err := w.Service.Watch(ctx)
	if err != nil {
		log.WithError(err).Debug("storage watch unavailable; polling only")
		events = nil
	}

	pp := &printers.PrettyPrint{ShowID: w.ShowID, Out: out}
	p := &refresh.Poller{
		Reload: w.Service.Reload,
		OnRefresh: func(ctx context.Context, reason refresh.Reason) error {
			v, err := w.Service.View(ctx, w.Request)
			if err != nil {
				return err
			}
			if !w.NoClear {
				_, _ = fmt.Fprint(out, clearScreen)
			}
			pp.View(v)
			_, _ = color.New(color.Faint).Fprintf(out, "refreshed %s (%s)\n", time.Now().Format("15:04:05"), reason)
			return nil
		},
		Scheduler: sched,
		Events:    events,
		Log:       log,
	}
	return p.Run(ctx)
}
