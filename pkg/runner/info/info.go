// Package info reports the resolved configuration and storage location.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/store"
)

// Info prints where entries live and how the CLI is configured.
type Info struct {
	Config  store.Config
	Service *app.Service
	Out     io.Writer
}

// Do prints the configuration table and the entry count.
func (n *Info) Do(ctx context.Context) error {
	w := n.Out
	if w == nil {
		w = color.Output
	}

	if override := os.Getenv("CONTENTCAL_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(w, "CONTENTCAL_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(w, "CONTENTCAL_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("path", n.Config.BasePath())
	tbl.AddRow("default_platform", n.Config.DefaultPlatform())
	tbl.AddRow("refresh", n.Config.Refresh())
	tbl.AddRow("success_window", n.Config.SuccessWindow())
	tbl.AddRow("log_level", n.Config.LogLevel())
	_, _ = fmt.Fprintln(w, tbl)

	if n.Service == nil {
		return fmt.Errorf("failed to create calendar service")
	}
	all := n.Service.Entries(ctx, store.Filter{})
	_, _ = fmt.Fprintf(w, "\n%d entries stored\n", len(all))
	return nil
}
