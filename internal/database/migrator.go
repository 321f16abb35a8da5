package database

import (
	"context"
	"embed"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

const versionTable = "schema_version"

// MigrationStatus compares the applied schema version with the newest
// embedded migration.
type MigrationStatus struct {
	Current int32
	Latest  int32
}

func (s MigrationStatus) UpToDate() bool {
	return s.Current >= s.Latest
}

// withMigrator opens a dedicated connection (never the pool), loads the
// embedded migrations into a tern migrator and hands it to fn.
func withMigrator(ctx context.Context, databaseURL string, fn func(*tern.Migrator) error) error {
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connecting for migrations")
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return errors.Wrap(err, "constructing database migrator")
	}

	files, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "opening embedded migrations")
	}
	if err := m.LoadMigrations(files); err != nil {
		return errors.Wrap(err, "loading database migrations")
	}

	return fn(m)
}

func status(ctx context.Context, m *tern.Migrator) (MigrationStatus, error) {
	current, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return MigrationStatus{}, errors.Wrap(err, "reading schema version")
	}
	return MigrationStatus{Current: current, Latest: int32(len(m.Migrations))}, nil
}

// Migrate brings the schema at databaseURL to the newest embedded version.
func Migrate(ctx context.Context, logger *zerolog.Logger, databaseURL string) error {
	return withMigrator(ctx, databaseURL, func(m *tern.Migrator) error {
		before, err := status(ctx, m)
		if err != nil {
			return err
		}

		if before.UpToDate() {
			logger.Info().Int32("version", before.Current).Msg("database schema up to date")
			return nil
		}

		if err := m.Migrate(ctx); err != nil {
			return errors.Wrap(err, "migrating database")
		}

		logger.Info().
			Int32("from", before.Current).
			Int32("to", before.Latest).
			Msg("migrated database schema")
		return nil
	})
}

// Status reports the applied and newest schema versions without changing anything.
func Status(ctx context.Context, databaseURL string) (MigrationStatus, error) {
	var result MigrationStatus
	err := withMigrator(ctx, databaseURL, func(m *tern.Migrator) error {
		var err error
		result, err = status(ctx, m)
		return err
	})
	return result, err
}
