package main

import (
	"context"
	"time"

	"github.com/deppfellow/go-todos/internal/config"
	"github.com/deppfellow/go-todos/internal/database"
	"github.com/deppfellow/go-todos/internal/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	var (
		timeout    time.Duration
		statusOnly bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}

			log := logger.NewLogger(cfg.Observability)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if !statusOnly {
				return database.Migrate(ctx, &log, cfg.Database.URL)
			}

			status, err := database.Status(ctx, cfg.Database.URL)
			if err != nil {
				return err
			}

			log.Info().
				Int32("current", status.Current).
				Int32("latest", status.Latest).
				Bool("up_to_date", status.UpToDate()).
				Msg("database schema status")

			if !status.UpToDate() {
				return errors.Errorf("schema is at version %d of %d", status.Current, status.Latest)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "maximum time to spend migrating")
	cmd.Flags().BoolVar(&statusOnly, "status", false, "only report the schema version; exit non-zero when behind")

	return cmd
}
