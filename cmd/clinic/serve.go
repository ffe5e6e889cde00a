package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/CoderFake/healthcare-system/internal/api/handlers"
	"github.com/CoderFake/healthcare-system/internal/api/routes"
	"github.com/CoderFake/healthcare-system/internal/application/services"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/observability"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Prepare the database and start the local API server",
	}
	skipSetup := cmd.Flags().Bool("skip-setup", false, "Do not run setup before serving")

	cmd.RunE = withApp(func(ctx context.Context, a *app) error {
		logger := observability.GetLogger()

		if !*skipSetup {
			report, err := services.NewSetupService(a.migrator, a.store, a.cfg).Run(ctx)
			if err != nil {
				return fmt.Errorf("setup: %w", err)
			}
			logger.Info().
				Strs("migrations", report.Migrations).
				Strs("settings_seeded", report.SettingsSeeded).
				Bool("admin_created", report.AdminCreated).
				Msg("database ready")
		}

		auth := services.NewAuthService(a.store.Accounts(), a.cfg.Auth.JWTSecret, time.Duration(a.cfg.Auth.TokenTTLHours)*time.Hour)
		router := routes.NewRouter(routes.Handlers{
			Auth:        handlers.NewAuthHandler(auth),
			Patient:     handlers.NewPatientHandler(services.NewPatientService(a.store)),
			Doctor:      handlers.NewDoctorHandler(services.NewDoctorService(a.store)),
			Appointment: handlers.NewAppointmentHandler(services.NewAppointmentService(a.store, a.cfg.Schedule, a.metrics)),
			Record:      handlers.NewRecordHandler(services.NewMedicalRecordService(a.store)),
			Setting:     handlers.NewSettingHandler(services.NewSettingService(a.store.Settings())),
			Maintenance: handlers.NewMaintenanceHandler(
				services.NewMaintenanceService(a.client),
				services.NewDashboardService(a.store),
				services.NewExportService(a.store),
			),
		}, auth, a.cfg.Server.AllowedOrigins, a.metrics)

		serverAddr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
		server := &http.Server{
			Addr:         serverAddr,
			Handler:      router.SetupRoutes(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info().Str("addr", serverAddr).Msg("server starting")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
		case <-ctx.Done():
		}

		logger.Info().Msg("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("error during server shutdown")
		}
		logger.Info().Msg("server stopped")
		return nil
	})
	return cmd
}
