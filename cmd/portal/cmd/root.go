// Package cmd holds the portal command line: serve, migrate and version.
package cmd

import (
	"fmt"
	"os"

	"github.com/deppfellow/campus-portal/internal/config"
	"github.com/spf13/cobra"
)

// logLevel overrides observability.logging.level when set.
var logLevel string

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "portal",
		Short: "Campus Portal API server",
		Long: `Campus Portal serves the university administration REST API:
accounts, contact messages, job offers, applications, document requests,
payments and events.

Configuration is read from PORTAL_* environment variables and .env.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newVersionCommand())

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Observability.Logging.Level = logLevel
	}
	return cfg, nil
}
