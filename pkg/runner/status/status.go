// Package status sets the status of many entries at once.
package status

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/printers"
)

// Status applies a bulk status update.
type Status struct {
	Service *app.Service
	IDs     []string
	Status  string
	JSON    bool
	Out     io.Writer
}

// Do runs the update and prints what was updated and what was skipped.
func (s *Status) Do(ctx context.Context) error {
	res, err := s.Service.BulkUpdateStatus(ctx, s.IDs, s.Status)
	if err != nil {
		return err
	}
	pp := &printers.PrettyPrint{Out: s.Out}
	if s.JSON {
		return pp.JSON(res)
	}
	w := s.Out
	if w == nil {
		w = color.Output
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range res.Updated {
		tbl.AddRow(color.GreenString("updated"), e.ID, e.Title)
	}
	for _, id := range res.Skipped {
		reason := res.Errors[id]
		if reason == "" {
			reason = "not found"
		}
		tbl.AddRow(color.YellowString("skipped"), id, reason)
	}
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintf(w, "%d updated to %s, %d skipped\n", len(res.Updated), s.Status, len(res.Skipped))
	if len(res.Errors) > 0 {
		ids := make([]string, 0, len(res.Errors))
		for id := range res.Errors {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return fmt.Errorf("failed to persist %d entries: %v", len(ids), ids)
	}
	return nil
}
