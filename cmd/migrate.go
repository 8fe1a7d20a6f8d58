package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/bookit/internal/config"
	"github.com/m04kA/bookit/internal/infra/storage/migrations"
	"github.com/m04kA/bookit/pkg/txmanager"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the PostgreSQL schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer log.Close()

			if cfg.Storage.Driver != config.DriverPostgres {
				log.Info("Storage driver is %s, nothing to migrate", cfg.Storage.Driver)
				return nil
			}

			ctx := cmd.Context()
			db, stop, err := openPostgres(ctx, cfg, commandMetrics(cfg), log)
			if err != nil {
				return err
			}
			defer func() {
				close(stop)
				_ = db.Unwrap().Close()
			}()

			applied, err := migrations.Up(ctx, db, txmanager.NewTransactionManager(db), log)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			log.Info("Applied %d migrations", applied)
			return nil
		},
	}
}

