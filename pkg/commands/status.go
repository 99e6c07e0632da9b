package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/runner/status"
)

func addStatus(topLevel *cobra.Command) {
	valid := make([]string, 0, len(entry.AllStatuses()))
	for _, s := range entry.AllStatuses() {
		valid = append(valid, string(s))
	}

	cmd := &cobra.Command{
		Use:   "status <status> <id>...",
		Short: "Set the status of several entries at once",
		Long: fmt.Sprintf(`Set the status of several entries at once.

Unknown ids are skipped. The lifecycle is not enforced here; use
"transition" for a checked single step.

Statuses: %s`, strings.Join(valid, ", ")),
		Example: `
contentcal status ready 3f2c9a1e 9b0d44c2
`,
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: valid,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := loadService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			s := status.Status{
				Service: svc,
				Status:  args[0],
				IDs:     args[1:],
				JSON:    oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	addOutputArg(cmd)
	topLevel.AddCommand(cmd)
}
