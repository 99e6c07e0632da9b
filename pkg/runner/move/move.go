// Package move reschedules an entry onto another day.
package move

import (
	"context"
	"io"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/printers"
)

// Move dispatches a move command. Version zero skips the concurrency check.
type Move struct {
	Service *app.Service
	ID      string
	To      entry.Date
	Version int
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

// Do applies the move and prints the entry as it now stands.
func (m *Move) Do(ctx context.Context) error {
	e, err := m.Service.Dispatch(ctx, app.MoveCommand{EntryID: m.ID, TargetDate: m.To, Version: m.Version})
	if err != nil {
		return err
	}
	pp := &printers.PrettyPrint{ShowID: m.ShowID, Out: m.Out}
	if m.JSON {
		return pp.JSON(e)
	}
	pp.Entries(e)
	return nil
}
