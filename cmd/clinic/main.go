package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/CoderFake/healthcare-system/internal/adapters/database"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/clients/sqlite"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/migrations"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/observability"
	"github.com/CoderFake/healthcare-system/pkg/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "clinic",
		Short:         "Clinic management server and database tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(setupCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(schemaCmd())
	rootCmd.AddCommand(backupCmd())
	rootCmd.AddCommand(restoreCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app bundles the storage stack every command opens
type app struct {
	cfg      *config.Config
	client   *sqlite.Client
	store    *database.Store
	migrator *migrations.Migrator
	metrics  *observability.Metrics
	shutdown func(context.Context) error
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	observability.InitLogger(cfg.App.Name, cfg.App.Env, cfg.App.LogLevel)
	logger := observability.GetLogger()

	a := &app{cfg: cfg}

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			a.shutdown = shutdown
			logger.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		return nil, fmt.Errorf("initialize metrics: %w", err)
	}
	a.metrics = metrics

	client, err := sqlite.Open(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.Database.File, err)
	}
	client.SetMetrics(metrics)

	a.client = client
	a.store = database.NewStore(client)
	a.migrator = migrations.NewMigrator(client, cfg.Database.MigrationsDir)
	return a, nil
}

func (a *app) Close() {
	logger := observability.GetLogger()
	if err := a.client.Close(); err != nil {
		logger.Error().Err(err).Msg("error closing database")
	}
	if a.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
		}
	}
}

// withApp opens the storage stack around fn
func withApp(fn func(ctx context.Context, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(ctx, a)
	}
}
