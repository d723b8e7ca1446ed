package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"garage/internal/backend"
)

// Version is set at build time.
var Version = "dev"

// NewRootCmd builds the garage command tree. Configuration is loaded from
// the environment before any subcommand runs.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{now: time.Now})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "garage",
		Short:         "Vehicle maintenance records over spreadsheets and SQLite",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			LoadEnvFile()
			cfg, err := LoadAndValidateConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = SetupLogger(cfg.LogLevel)
			a.factory = backend.NewFactory(a.logger)
			return nil
		},
	}

	root.AddCommand(
		newSheetCmd(a),
		newVehicleCmd(a),
		newRecordCmd(a),
		newUpcomingCmd(a),
		newImportCmd(a),
		newThemeCmd(a),
		newEventsCmd(a),
	)
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
