// Package cmd provides Cobra CLI commands for folio.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio/internal/cli"
	"github.com/foliolabs/folio/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "folio",
		Short: "A document viewer shell with remembered view positions",
		Long: `Folio - a document viewer shell.

Folio opens documents through a pluggable rendering engine, remembers
where you left off in each one, and restores the view on the next open.

Use the subcommands to inspect and manage the stored state, or to work
with the configuration.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
