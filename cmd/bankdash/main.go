package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"bankdash/internal/backend"
	"bankdash/internal/cli"
	apphttp "bankdash/internal/http"
	"bankdash/internal/ledger"
	"bankdash/internal/log"
	"bankdash/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting bankdash", "backend", cfg.DataBackend, "port", cfg.Port)

	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(startupCtx, backendConfig)
	if err != nil {
		logger.Error("Failed to create backend", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	// Load the full snapshot into the in-memory ledger the API serves from.
	store := ledger.New()
	snapshot, err := services.LoadSnapshot(startupCtx, result.Backend)
	if err != nil {
		logger.Error("Failed to load snapshot from backend", log.FieldError, err)
		os.Exit(1)
	}
	store.Seed(snapshot)
	logger.Info("Snapshot loaded",
		"accounts", len(snapshot.Accounts),
		"transactions", len(snapshot.Transactions),
		"bills", len(snapshot.Bills))

	reconciler := ledger.NewReconciler(store)

	srv := apphttp.NewServer(":"+cfg.Port, store, reconciler, result.Backend, result.Backend)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	// Bill reminders fire hourly against the ledger store.
	reminders := services.NewReminderProcessor(store)
	go reminders.Run(runCtx, time.Hour)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		runCancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", log.FieldError, err)
			}
		}
	})

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
