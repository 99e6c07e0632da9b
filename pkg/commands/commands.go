package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/logging"
	"tableflip.dev/contentcal/pkg/metrics"
	"tableflip.dev/contentcal/pkg/store"
	"tableflip.dev/contentcal/pkg/timeutil"
)

var (
	oo       = &base.OutputOptions{}
	logLevel string
	config   store.Config
	recorder = metrics.NewRecorder()
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "contentcal",
		Short: base.Wrap80("Plan, schedule and track social content on the command line."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			config, err = store.LoadConfig()
			if err != nil {
				return err
			}
			level := config.LogLevel()
			if logLevel != "" {
				level = logLevel
			}
			logging.Configure(nil, level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		base.Wrap80("Log level (debug, info, warn, error). Overrides log_level from the config."))

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addView(topLevel)
	addAdd(topLevel)
	addMove(topLevel)
	addStatus(topLevel)
	addTransition(topLevel)
	addRemove(topLevel)
	addConflicts(topLevel)
	addMetrics(topLevel)
	addReport(topLevel)
	addWatch(topLevel)
	addUI(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// loadService opens the configured store and returns a service holding its
// current snapshot.
func loadService(ctx context.Context) (*app.Service, error) {
	if config == nil {
		var err error
		if config, err = store.LoadConfig(); err != nil {
			return nil, err
		}
	}
	p, err := store.Load(config)
	if err != nil {
		return nil, err
	}
	window, err := timeutil.ParseSuccessWindow(config.SuccessWindow())
	if err != nil {
		return nil, err
	}
	svc := &app.Service{
		Persistence:     p,
		DefaultPlatform: config.DefaultPlatform(),
		SuccessWindow:   window,
		Log:             logging.For("app"),
		Metrics:         recorder,
	}
	if err := svc.Reload(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// refreshInterval resolves an explicit flag value against the configured one.
func refreshInterval(flag string) (time.Duration, error) {
	raw := flag
	if raw == "" && config != nil {
		raw = config.Refresh()
	}
	fallback, _ := time.ParseDuration(store.DefaultRefresh)
	return timeutil.ParseInterval(raw, fallback)
}
