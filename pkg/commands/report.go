package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/runner/report"
	"tableflip.dev/contentcal/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var last string
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "List published and failed content grouped by platform",
		Long: `Report lists published and failed entries grouped by platform within the
specified time window.`,
		Example: `
contentcal report
contentcal report --last 3d
contentcal report --last 1w2d --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			duration, _, err := timeutil.ParseWindow(last)
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := loadService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			until := time.Now()
			s := report.Report{
				Service: svc,
				Since:   until.Add(-duration),
				Until:   until,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	options.AddShowIDArgs(cmd, io)
	addOutputArg(cmd)
	topLevel.AddCommand(cmd)
}
