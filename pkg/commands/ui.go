package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive calendar",
		Long: `Open the interactive month calendar.

Move with h/j/k/l, page months with n/p, press enter on an entry to pick it
up and enter again on another day to move it there.`,
		Example: `
contentcal ui
contentcal ui --on 2024-7-1 --platform instagram
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			day, err := on.GetOn()
			if err != nil {
				return err
			}
			svc, err := loadService(cmd.Context())
			if err != nil {
				return err
			}
			s := ui.UI{
				Service: svc,
				Request: calendar.ViewRequest{Reference: day.Time, Mode: calendar.ModeMonth, Filters: fo.Filter()},
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddOnArgs(cmd, on, "Month to open on.")
	options.AddFilterArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}
