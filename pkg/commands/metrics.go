package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/runner/metrics"
)

func addMetrics(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	fo := &options.FilterOptions{}
	mo := &options.ModeOptions{Mode: "month"}

	cmd := &cobra.Command{
		Use:     "metrics",
		Aliases: []string{"stats"},
		Short:   "Summarise the filtered calendar",
		Long: `Summarise the filtered calendar: scheduled totals, today's load, the
success rate over the configured window, and counts per platform, type and
status.`,
		Example: `
contentcal metrics
contentcal metrics --platform instagram --json
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
			s := metrics.Metrics{Service: svc, Request: req, JSON: oo.JSON}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on, "Reference day.")
	options.AddFilterArgs(cmd, fo)
	addOutputArg(cmd)

	topLevel.AddCommand(cmd)
}
