// Package remove deletes entries from the calendar.
package remove

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/contentcal/pkg/app"
)

// Remove deletes one entry by id.
type Remove struct {
	Service *app.Service
	ID      string
	Out     io.Writer
}

// Do deletes the entry.
func (r *Remove) Do(ctx context.Context) error {
	e, err := r.Service.Get(ctx, r.ID)
	if err != nil {
		return err
	}
	if err := r.Service.Delete(ctx, r.ID); err != nil {
		return err
	}
	w := r.Out
	if w == nil {
		w = color.Output
	}
	_, _ = fmt.Fprintf(w, "removed %q from %s\n", e.Title, e.CalendarDate)
	return nil
}
