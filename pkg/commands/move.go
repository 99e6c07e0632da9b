package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/runner/move"
)

func addMove(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "move <id> --on <day>",
		Short: "Reschedule an entry to another day",
		Example: `
contentcal move 3f2c9a1e --on 2024-6-12
contentcal move 3f2c9a1e --on 6/12 --expect-version 4
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			day, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			if day.IsZero() {
				return oo.HandleError(errors.New("--on is required"))
			}
			svc, err := loadService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			s := move.Move{
				Service: svc,
				ID:      args[0],
				To:      day,
				Version: io.Version,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on, "Day to move the entry to.")
	options.AddVersionArg(cmd, io)
	options.AddShowIDArgs(cmd, io)
	addOutputArg(cmd)

	topLevel.AddCommand(cmd)
}
