// Package view prints a calendar view: a month grid, a week, a day or the
// agenda.
package view

import (
	"context"
	"io"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/printers"
)

// View renders one view of the calendar.
type View struct {
	Service       *app.Service
	Request       calendar.ViewRequest
	ConflictsOnly bool
	ShowID        bool
	JSON          bool
	Out           io.Writer
}

// Do builds the view and prints it.
func (v *View) Do(ctx context.Context) error {
	var opts []calendar.Option
	if v.ConflictsOnly {
		opts = append(opts, calendar.WithConflictsOnly())
	}
	cv, err := v.Service.View(ctx, v.Request, opts...)
	if err != nil {
		return err
	}
	pp := &printers.PrettyPrint{ShowID: v.ShowID, Out: v.Out}
	if v.JSON {
		return pp.JSON(cv)
	}
	pp.View(cv)
	return nil
}
