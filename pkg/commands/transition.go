package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/runner/transition"
)

func addTransition(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "transition <id> <status>",
		Short: "Move one entry to the next lifecycle status",
		Long: `Move one entry to the next lifecycle status.

Entries go forward through planned, in_progress, ready and scheduled to
published. Any open entry may be cancelled or marked failed. Published,
cancelled and failed entries are final.`,
		Example: `
contentcal transition 3f2c9a1e scheduled
contentcal transition 3f2c9a1e published --expect-version 5
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := loadService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			s := transition.Transition{
				Service: svc,
				ID:      args[0],
				Status:  args[1],
				Version: io.Version,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddVersionArg(cmd, io)
	options.AddShowIDArgs(cmd, io)
	addOutputArg(cmd)

	topLevel.AddCommand(cmd)
}
