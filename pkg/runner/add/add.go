// Package add schedules new content.
package add

import (
	"context"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/printers"
)

// Add creates one entry and warns when its slot is already taken.
type Add struct {
	Service *app.Service
	Entry   app.NewEntry
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

// Do creates the entry.
func (a *Add) Do(ctx context.Context) error {
	e, err := a.Service.Create(ctx, a.Entry)
	if err != nil {
		return err
	}
	hits, err := a.Service.CheckSlot(ctx, e.CalendarDate, e.TimeSlot, e.TargetPlatforms)
	if err != nil {
		return err
	}
	clashes := make([]*entry.Entry, 0, len(hits))
	for _, h := range hits {
		if h.ID != e.ID {
			clashes = append(clashes, h)
		}
	}

	pp := &printers.PrettyPrint{ShowID: a.ShowID, Out: a.Out}
	if a.JSON {
		return pp.JSON(struct {
			Entry     *entry.Entry   `json:"entry"`
			Conflicts []*entry.Entry `json:"conflicts"`
		}{e, clashes})
	}
	pp.Entries(e)
	if len(clashes) > 0 {
		w := a.Out
		if w == nil {
			w = color.Output
		}
		_, _ = color.New(color.FgRed).Fprintf(w, "%s shares %s with %d other entries\n",
			e.CalendarDate, e.TimeSlot, len(clashes))
		pp.Entries(clashes...)
	}
	return nil
}
