package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/campus-portal/internal/database"
	"github.com/deppfellow/campus-portal/internal/logger"
	"github.com/spf13/cobra"
)

const migrateTimeout = 2 * time.Minute

func newMigrateCommand() *cobra.Command {
	var target int32

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Long: `Apply the embedded SQL migrations.

Without --to the schema is moved to the latest version. --to 0 rolls every
migration back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}

			log := logger.NewLoggerWithService(cfg.Observability, nil)

			ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()

			return database.MigrateTo(ctx, &log, cfg.Database.DSN(), target)
		},
	}

	cmd.Flags().Int32Var(&target, "to", database.LatestVersion, "target schema version (default: latest)")

	return cmd
}
