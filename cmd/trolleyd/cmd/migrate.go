package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/trolley-nz/trolley/internal/state"
	"github.com/trolley-nz/trolley/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cobraCmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cobraCmd)
	if err != nil {
		return err
	}

	if cfg.Persistence.Backend != "postgres" {
		return fmt.Errorf("migrations require the postgres backend, config uses %q",
			cfg.Persistence.Backend)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	p, err := state.NewPostgresPersister(
		ctx,
		cfg.Persistence.Database.DSN(),
		cfg.Persistence.Database.PoolSize,
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer p.Close()

	log.Info("running migrations", "host", cfg.Persistence.Database.Host)

	if err := p.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	log.Info("migrations complete")
	return nil
}
