// Package conflicts answers whether a slot is free before scheduling into it.
package conflicts

import (
	"context"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/printers"
)

// Conflicts lists the entries a new entry at Date/Slot would collide with.
type Conflicts struct {
	Service   *app.Service
	Date      entry.Date
	Slot      string
	Platforms []string
	ShowID    bool
	JSON      bool
	Out       io.Writer
}

// Do checks the slot.
func (c *Conflicts) Do(ctx context.Context) error {
	hits, err := c.Service.CheckSlot(ctx, c.Date, c.Slot, c.Platforms)
	if err != nil {
		return err
	}
	pp := &printers.PrettyPrint{ShowID: c.ShowID, Out: c.Out}
	if c.JSON {
		return pp.JSON(hits)
	}
	w := c.Out
	if w == nil {
		w = color.Output
	}
	if len(hits) == 0 {
		_, _ = color.New(color.FgGreen).Fprintf(w, "%s %s is free\n", c.Date, c.Slot)
		return nil
	}
	_, _ = color.New(color.FgRed).Fprintf(w, "%s %s is taken by %d entries\n", c.Date, c.Slot, len(hits))
	pp.Entries(hits...)
	return nil
}

