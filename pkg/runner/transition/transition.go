// Package transition moves a single entry along its publishing lifecycle.
package transition

import (
	"context"
	"io"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/printers"
)

// Transition applies one lifecycle step.
type Transition struct {
	Service *app.Service
	ID      string
	Status  string
	Version int
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

// Do applies the transition and prints the updated entry.
func (t *Transition) Do(ctx context.Context) error {
	e, err := t.Service.Transition(ctx, t.ID, t.Status, t.Version)
	if err != nil {
		return err
	}
	pp := &printers.PrettyPrint{ShowID: t.ShowID, Out: t.Out}
	if t.JSON {
		return pp.JSON(e)
	}
	pp.Entries(e)
	return nil
}
