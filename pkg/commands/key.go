package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show the legend of status, priority and content symbols.",
		Example: `
contentcal key
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := key.Key{}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
