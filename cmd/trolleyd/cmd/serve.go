package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/trolley-nz/trolley/internal/api"
	"github.com/trolley-nz/trolley/internal/api/handlers"
	"github.com/trolley-nz/trolley/internal/catalog"
	"github.com/trolley-nz/trolley/internal/config"
	"github.com/trolley-nz/trolley/internal/engine"
	"github.com/trolley-nz/trolley/internal/scan"
	"github.com/trolley-nz/trolley/internal/state"
	"github.com/trolley-nz/trolley/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cobraCmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cobraCmd)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	cat, err := catalog.New()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	persister, pinger, closePersister, err := buildPersister(ctx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer closePersister()

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	st, err := state.NewStore(ctx, persister, cat, log)
	cancel()
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	scanner := scan.New(
		cat,
		cfg.Scan.RateLimit.PerSecond,
		cfg.Scan.RateLimit.Burst,
		log,
		scan.WithDelayBounds(cfg.Scan.MinDelay, cfg.Scan.MaxDelay),
	)

	eng := engine.New(cat, st, engine.WithLogger(log))
	sched, err := engine.NewScheduler(
		eng,
		cfg.Schedule.SnapshotInterval,
		cfg.Schedule.SpecialsSweepInterval,
		log,
	)
	if err != nil {
		return fmt.Errorf("building scheduler: %w", err)
	}
	sched.Start()

	e := api.New(api.Deps{
		Catalog: cat,
		State:   st,
		Scanner: scanner,
		Pinger:  pinger,
		Log:     log,
	})
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server",
		"addr", addr,
		"backend", cfg.Persistence.Backend,
		"products", len(cat.Products()),
	)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	// Wait for in-flight scheduled jobs to finish.
	select {
	case <-sched.Stop().Done():
	case <-ctx.Done():
		log.Warn("scheduler stop timed out")
	}

	// Flush state so nothing added since the last snapshot job is lost.
	if err := st.Save(ctx); err != nil {
		log.Error("final state flush failed", "error", err)
	}

	log.Info("server stopped")
	return nil
}

// loadConfig reads the config file named by --config. When the flag was left
// at its default and no such file exists, built-in defaults are used so the
// server can run with zero setup.
func loadConfig(cobraCmd *cobra.Command) (*config.Config, error) {
	if !cobraCmd.Flags().Changed("config") {
		if _, err := os.Stat(cfgFile); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// buildPersister constructs the state backend selected by the config. The
// returned pinger is nil for backends with nothing to probe.
func buildPersister(
	ctx context.Context,
	cfg *config.Config,
) (state.Persister, handlers.Pinger, func(), error) {
	switch cfg.Persistence.Backend {
	case "memory":
		return state.NewMemoryPersister(), nil, func() {}, nil
	case "file":
		return state.NewFilePersister(cfg.Persistence.File.Path), nil, func() {}, nil
	case "postgres":
		p, err := state.NewPostgresPersister(
			ctx,
			cfg.Persistence.Database.DSN(),
			cfg.Persistence.Database.PoolSize,
		)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := p.Migrate(ctx); err != nil {
			p.Close()
			return nil, nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		return p, p, p.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown persistence backend %q", cfg.Persistence.Backend)
	}
}
