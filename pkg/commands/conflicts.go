package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/runner/conflicts"
)

func addConflicts(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	var (
		slot      string
		platforms []string
	)

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Check whether a slot is free before scheduling into it",
		Example: `
contentcal conflicts --on 2024-6-10 --slot 09:00 -p facebook
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			day, err := on.GetOnOrToday()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := loadService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			s := conflicts.Conflicts{
				Service:   svc,
				Date:      day,
				Slot:      slot,
				Platforms: platforms,
				ShowID:    io.ShowID,
				JSON:      oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on, "Day to check, defaults to today.")
	cmd.Flags().StringVarP(&slot, "slot", "t", entry.DefaultTimeSlot, "Time slot as HH:MM.")
	cmd.Flags().StringSliceVarP(&platforms, "platform", "p", nil, "Platforms to check. Defaults to the configured platform.")
	options.AddShowIDArgs(cmd, io)
	addOutputArg(cmd)

	topLevel.AddCommand(cmd)
}
