package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/store"
)

// FilterOptions narrows the entries a command looks at.
type FilterOptions struct {
	Search   string
	Status   string
	Platform string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only entries whose title, description or preview contains this text.")
	cmd.Flags().StringVar(&o.Status, "status", store.All,
		"Only entries with this status.")
	cmd.Flags().StringVarP(&o.Platform, "platform", "p", store.All,
		"Only entries targeting this platform.")
}

func (o *FilterOptions) Filter() store.Filter {
	return store.Filter{SearchTerm: o.Search, Status: o.Status, Platform: o.Platform}
}
