// Package key provides CLI helpers to display the calendar legend.
package key

import (
	"context"
	"io"

	"tableflip.dev/contentcal/pkg/printers"
)

// Key prints the glyph legend for statuses, priorities and content types.
type Key struct {
	Out io.Writer
}

// Do renders the legend.
func (k *Key) Do(_ context.Context) error {
	pp := &printers.PrettyPrint{Out: k.Out}
	pp.NewLine()
	pp.Legend()
	return nil
}
