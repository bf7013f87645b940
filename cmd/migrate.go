package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-EstateBookingService/internal/config"
	"github.com/m04kA/SMC-EstateBookingService/internal/migrate"
	"github.com/m04kA/SMC-EstateBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-EstateBookingService/pkg/logger"
	"github.com/m04kA/SMC-EstateBookingService/pkg/txmanager"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.Database.Driver != config.DriverPostgres {
				return errors.New("migrations require database.driver = \"postgres\"")
			}

			log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer log.Close()

			db, err := openPostgres(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			m := migrate.New(db, txmanager.NewTransactionManager(dbmetrics.SqlTxWrapper{DB: db}), log)
			ctx := context.Background()

			if dryRun {
				pending, err := m.Pending(ctx)
				if err != nil {
					return err
				}
				for _, name := range pending {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			applied, err := m.Up(ctx)
			if err != nil {
				return err
			}
			log.Info("Migrations complete: applied=%d", applied)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only list pending migrations")
	return cmd
}
