// Package refresh keeps a calendar view current by reloading the entry
// snapshot on a schedule the host controls and whenever storage changes.
package refresh

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"tableflip.dev/contentcal/pkg/logging"
	"tableflip.dev/contentcal/pkg/store"
)

// Scheduler delivers refresh ticks.
type Scheduler interface {
	C() <-chan time.Time
	Stop()
}

type ticker struct {
	t *time.Ticker
}

// NewTicker returns a Scheduler that ticks every d.
func NewTicker(d time.Duration) Scheduler {
	return &ticker{t: time.NewTicker(d)}
}

func (t *ticker) C() <-chan time.Time { return t.t.C }

func (t *ticker) Stop() { t.t.Stop() }

// Reason says why a refresh ran.
type Reason string

const (
	ReasonStart   Reason = "start"
	ReasonTick    Reason = "tick"
	ReasonStorage Reason = "storage"
)

// Poller runs Reload then OnRefresh once at start, on every scheduler tick
// and on every storage event, until the context is cancelled.
type Poller struct {
	// Reload replaces the snapshot. Required.
	Reload func(ctx context.Context) error
	// OnRefresh recomputes and renders. Optional.
	OnRefresh func(ctx context.Context, reason Reason) error
	// Scheduler is required; Events may be nil.
	Scheduler Scheduler
	Events    <-chan store.Event

	Log *logrus.Entry
}

// Run blocks until ctx is done. Reload and render failures are logged and
// the loop carries on; the next tick retries.
func (p *Poller) Run(ctx context.Context) error {
	if p.Reload == nil {
		return errors.New("refresh: reload func required")
	}
	if p.Scheduler == nil {
		return errors.New("refresh: scheduler required")
	}
	if p.Log == nil {
		p.Log = logging.For("refresh")
	}
	defer p.Scheduler.Stop()

	p.refresh(ctx, ReasonStart)
	events := p.Events
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.Scheduler.C():
			p.refresh(ctx, ReasonTick)
		case ev, ok := <-events:
			if !ok {
				// Storage watch ended; keep polling on the schedule.
				events = nil
				continue
			}
			p.Log.WithField("date", ev.Date).Debug("storage changed")
			p.refresh(ctx, ReasonStorage)
		}
	}
}

func (p *Poller) refresh(ctx context.Context, reason Reason) {
	if err := p.Reload(ctx); err != nil {
		p.Log.WithError(err).WithField("reason", reason).Warn("reload failed")
		return
	}
	if p.OnRefresh == nil {
		return
	}
	if err := p.OnRefresh(ctx, reason); err != nil {
		p.Log.WithError(err).WithField("reason", reason).Warn("refresh failed")
	}
}
