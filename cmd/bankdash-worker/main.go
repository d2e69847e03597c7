package main

import (
	"context"
	"os"
	"time"

	"bankdash/internal/amqp"
	"bankdash/internal/cli"
	"bankdash/internal/log"
	"bankdash/internal/services"
	gsheet "bankdash/internal/sheets/google"
	"bankdash/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting bankdash-worker")

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// Sheets client is optional; without it the worker only reports the
	// backlog and exits.
	var sheetsClient *gsheet.Client
	if cfg.GoogleSpreadsheetID != "" {
		var err error
		sheetsClient, err = gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
		logger.Info("Nothing to sync against, exiting")
		return
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	syncWorker := worker.NewSyncWorker(repo, sheetsClient, sheetsClient, cfg.SyncBatchSize)

	// Recover anything that accumulated while the worker was down.
	logger.Info("Performing startup sync check...")
	if err := syncWorker.StartupSyncCheck(runCtx); err != nil {
		logger.Error("Startup sync check failed", log.FieldError, err)
		// Keep running; the periodic sweep retries
	}

	go func() {
		handler := func(msg *amqp.TransactionSyncMessage) error {
			return syncWorker.HandleSyncMessage(runCtx, msg)
		}
		if err := amqpClient.ConsumeTransactionSync(runCtx, handler); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", log.FieldError, err)
			}
			runCancel()
		}
	}()

	// Periodic sweep catches transactions whose AMQP message was lost.
	processorConfig := services.DefaultSyncProcessorConfig()
	processorConfig.PollInterval = cfg.SyncInterval
	processorConfig.BatchSize = cfg.SyncBatchSize
	processor := services.NewSyncProcessor(repo, sheetsClient, processorConfig)
	if err := processor.Start(runCtx); err != nil {
		logger.Error("Failed to start sync processor", log.FieldError, err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		if err := processor.Stop(stopCtx); err != nil {
			logger.Error("Sync processor shutdown failed", log.FieldError, err)
		}
		runCancel()
	})

	select {
	case <-ctx.Done():
		cli.WaitForShutdown(ctx, done)
	case <-runCtx.Done():
		logger.Info("Worker context cancelled")
	}
	logger.Info("Worker stopped gracefully")
}
