package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	eo := &options.EntryOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Schedule new content",
		Example: `
contentcal add --on 2024-6-10 Summer launch teaser
contentcal add --on 6/12 --slot 14:30 --type video -p youtube -p instagram Behind the scenes
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			day, err := on.GetOnOrToday()
			if err != nil {
				return oo.HandleError(err)
			}
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return oo.HandleError(errors.New("title is required"))
			}
			svc, err := loadService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			s := add.Add{
				Service: svc,
				Entry:   eo.NewEntry(title, day),
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on, "Day to schedule on, defaults to today.")
	options.AddEntryArgs(cmd, eo)
	options.AddShowIDArgs(cmd, io)
	addOutputArg(cmd)

	topLevel.AddCommand(cmd)
}
