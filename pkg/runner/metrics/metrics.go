// Package metrics prints the summary numbers of a calendar view.
package metrics

import (
	"context"
	"io"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/printers"
)

// Metrics prints the counters of the filtered calendar.
type Metrics struct {
	Service *app.Service
	Request calendar.ViewRequest
	JSON    bool
	Out     io.Writer
}

// Do computes the metrics.
func (m *Metrics) Do(ctx context.Context) error {
	v, err := m.Service.View(ctx, m.Request)
	if err != nil {
		return err
	}
	pp := &printers.PrettyPrint{Out: m.Out}
	if m.JSON {
		return pp.JSON(v.Metrics)
	}
	pp.Metrics(v.Metrics)
	return nil
}
