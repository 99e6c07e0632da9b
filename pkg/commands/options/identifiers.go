package options

import (
	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID  bool
	Version int
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each entry.")
}

func AddVersionArg(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().IntVar(&o.Version, "expect-version", 0,
		"Fail unless the entry is at this version. Zero skips the check.")
}
