package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete an entry",
		Example: `
contentcal rm 3f2c9a1e
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := loadService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			s := remove.Remove{Service: svc, ID: args[0]}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	addOutputArg(cmd)
	topLevel.AddCommand(cmd)
}
