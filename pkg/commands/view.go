package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/runner/view"
)

func addView(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	fo := &options.FilterOptions{}
	mo := &options.ModeOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "view",
		Aliases: []string{"get", "show"},
		Short:   "Show the calendar",
		Example: `
contentcal view
contentcal view --mode week --on 2024-6-10
contentcal view --mode agenda --platform instagram
contentcal view --conflicts
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			req, err := viewRequest(on, fo, mo)
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := loadService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			s := view.View{
				Service:       svc,
				Request:       req,
				ConflictsOnly: mo.ConflictsOnly,
				ShowID:        io.ShowID,
				JSON:          oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on, "Reference day of the view.")
	options.AddFilterArgs(cmd, fo)
	options.AddModeArgs(cmd, mo)
	options.AddConflictsOnlyArg(cmd, mo)
	options.AddShowIDArgs(cmd, io)
	addOutputArg(cmd)

	topLevel.AddCommand(cmd)
}

func viewRequest(on *options.OnOptions, fo *options.FilterOptions, mo *options.ModeOptions) (calendar.ViewRequest, error) {
	day, err := on.GetOn()
	if err != nil {
		return calendar.ViewRequest{}, err
	}
	mode, err := mo.ViewMode()
	if err != nil {
		return calendar.ViewRequest{}, err
	}
	return calendar.ViewRequest{Reference: day.Time, Mode: mode, Filters: fo.Filter()}, nil
}
