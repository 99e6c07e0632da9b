// Package ui launches the interactive calendar.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/tui"
)

// UI runs the bubbletea calendar over the shared service.
type UI struct {
	Service *app.Service
	Request calendar.ViewRequest
}

// Do blocks until the user quits.
func (u *UI) Do(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("ui: stdout is not a terminal")
	}
	m := tui.New(ctx, u.Service.View, u.Service.Dispatch, u.Request)
	return tui.Run(m)
}
