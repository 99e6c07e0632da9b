package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where entries are stored.",
		Example: `
contentcal info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := loadService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			s := info.Info{
				Config:  config,
				Service: svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
