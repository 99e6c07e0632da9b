package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/calendar"
)

// ModeOptions picks the view layout.
type ModeOptions struct {
	Mode          string
	ConflictsOnly bool
}

func AddModeArgs(cmd *cobra.Command, o *ModeOptions) {
	modes := make([]string, 0, len(calendar.AllModes()))
	for _, m := range calendar.AllModes() {
		modes = append(modes, string(m))
	}
	cmd.Flags().StringVarP(&o.Mode, "mode", "m", string(calendar.ModeMonth),
		"View mode, one of "+strings.Join(modes, ", ")+".")
	_ = cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return modes, cobra.ShellCompDirectiveNoFileComp
	})
}

func AddConflictsOnlyArg(cmd *cobra.Command, o *ModeOptions) {
	cmd.Flags().BoolVar(&o.ConflictsOnly, "conflicts", false,
		"Only show days with scheduling conflicts.")
}

func (o *ModeOptions) ViewMode() (calendar.ViewMode, error) {
	return calendar.ParseViewMode(o.Mode)
}
