package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	fo := &options.FilterOptions{}
	mo := &options.ModeOptions{}
	io := &options.IDOptions{}
	var every string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep a view on screen, redrawing it as entries change",
		Example: `
contentcal watch --mode week
contentcal watch --every 5m --platform twitter
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			req, err := viewRequest(on, fo, mo)
			if err != nil {
				return err
			}
			interval, err := refreshInterval(every)
			if err != nil {
				return err
			}
			svc, err := loadService(cmd.Context())
			if err != nil {
				return err
			}
			s := watch.Watch{
				Service:  svc,
				Request:  req,
				Interval: interval,
				ShowID:   io.ShowID,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddOnArgs(cmd, on, "Reference day of the view.")
	options.AddFilterArgs(cmd, fo)
	options.AddModeArgs(cmd, mo)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().StringVar(&every, "every", "", "Refresh interval, for example 30s or 1h. Defaults to the configured refresh.")

	topLevel.AddCommand(cmd)
}
