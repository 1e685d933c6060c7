package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// versionTable records the applied migration version.
const versionTable = "schema_version"

// LatestVersion asks MigrateTo for every embedded migration.
const LatestVersion int32 = -1

// Migrate applies every pending embedded migration against dsn.
func Migrate(ctx context.Context, logger *zerolog.Logger, dsn string) error {
	return MigrateTo(ctx, logger, dsn, LatestVersion)
}

// MigrateTo moves the schema up or down to target. A negative target means
// the latest embedded version.
func MigrateTo(ctx context.Context, logger *zerolog.Logger, dsn string, target int32) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	latest := int32(len(m.Migrations))
	if target < 0 {
		target = latest
	}
	if target > latest {
		return fmt.Errorf("target version %d is beyond the latest migration %d", target, latest)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if from == target {
		logger.Info().Int32("version", from).Msg("database schema up to date")
		return nil
	}

	if err := m.MigrateTo(ctx, target); err != nil {
		return fmt.Errorf("migrating from %d to %d: %w", from, target, err)
	}

	logger.Info().Int32("from", from).Int32("to", target).Msg("migrated database schema")
	return nil
}
