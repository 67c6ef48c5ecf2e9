package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehr/backoffice/internal/config"
	"github.com/ehr/backoffice/internal/domain/catalog"
	"github.com/ehr/backoffice/internal/platform/db"
	"github.com/ehr/backoffice/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "backoffice-server",
		Short:        "Simulated healthcare back-office assistant",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(catalogCmd())
	rootCmd.AddCommand(simulateCmd())
	return rootCmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// loadConfig reads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger.Level(cfg.Level())
}

// openCatalog loads the catalogs from CATALOG_SOURCE. The returned pool is
// nil for the mock source; otherwise the caller closes it.
func openCatalog(ctx context.Context, cfg *config.Config) (*catalog.Store, *pgxpool.Pool, error) {
	if !cfg.UsesPostgres() {
		store, err := catalog.MockSource{}.Load(ctx)
		return store, nil, err
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, nil, err
	}
	store, err := catalog.NewPGSource(pool).Load(ctx)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	return store, pool, nil
}

func runServer(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, pool, err := openCatalog(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Str("source", cfg.CatalogSource).Msg("failed to load catalog")
		return err
	}
	var dbCheck db.Pinger
	if pool != nil {
		defer pool.Close()
		dbCheck = pool
		logger.Info().Msg("connected to database")
	}

	srv, err := server.New(cfg, logger, store, dbCheck)
	if err != nil {
		return err
	}
	return srv.Run(ctx, nil)
}
