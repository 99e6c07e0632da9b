// Package report prints what was published or failed in a time window.
package report

import (
	"context"
	"io"
	"time"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/printers"
)

// Report covers [Since, Until].
type Report struct {
	Service *app.Service
	Since   time.Time
	Until   time.Time
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

// Do builds and prints the report.
func (r *Report) Do(ctx context.Context) error {
	res, err := r.Service.Report(ctx, r.Since, r.Until)
	if err != nil {
		return err
	}
	pp := &printers.PrettyPrint{ShowID: r.ShowID, Out: r.Out}
	if r.JSON {
		return pp.JSON(res)
	}
	pp.Report(res)
	return nil
}
