// Package worker pushes locally recorded transactions out to the
// spreadsheet. It handles AMQP messages for immediate sync and a startup
// sweep that drains whatever accumulated while the worker was down; the
// periodic catch-up sweep lives in services.SyncProcessor.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"bankdash/internal/amqp"
	"bankdash/internal/sheets"
	"bankdash/internal/storage"
)

// SyncWorker syncs pending transactions from the SQLite queue to the sheet
// backend and pushes the resulting account balances along with them.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	sheet     sheets.TransactionAppender
	balances  sheets.BalanceUpdater
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, sheet sheets.TransactionAppender, balances sheets.BalanceUpdater, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		sheet:     sheet,
		balances:  balances,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single transaction sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"queue_id", msg.QueueID,
		"transaction_id", msg.TransactionID)

	if err := w.syncToSheet(ctx, msg.QueueID, msg.TransactionID); err != nil {
		return fmt.Errorf("sync transaction to sheet: %w", err)
	}
	return nil
}

// StartupSyncCheck drains a larger backlog at worker startup so downtime
// never leaves the spreadsheet behind.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncTransactions(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending transactions on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0
	for _, item := range pending {
		if err := w.syncToSheet(ctx, item.ID, item.TransactionID); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction during startup",
				"queue_id", item.ID,
				"transaction_id", item.TransactionID,
				"error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)
	return nil
}

// syncToSheet appends one transaction to the sheet, pushes the post-apply
// balance, and records the outcome on the queue entry.
func (w *SyncWorker) syncToSheet(ctx context.Context, queueID int64, transactionID string) error {
	tx, err := w.storage.GetTransaction(ctx, transactionID)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, queueID, err); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "queue_id", queueID, "error", markErr)
		}
		return fmt.Errorf("get transaction: %w", err)
	}

	ref, err := w.sheet.AppendTransaction(ctx, tx)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, queueID, err); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "queue_id", queueID, "error", markErr)
		}
		return fmt.Errorf("append to sheet: %w", err)
	}

	if w.balances != nil && tx.Account != "" {
		if err := w.balances.UpdateBalance(ctx, tx.Account, tx.Balance); err != nil {
			// The transaction row made it across; the next sync corrects
			// the balance cell.
			slog.WarnContext(ctx, "Failed to update sheet balance",
				"account", tx.Account,
				"error", err)
		}
	}

	if err := w.storage.MarkSynced(ctx, queueID); err != nil {
		slog.ErrorContext(ctx, "Failed to mark as synced", "queue_id", queueID, "error", err)
		// The sheet write itself succeeded, so don't fail the message
	}

	slog.InfoContext(ctx, "Successfully synced transaction",
		"queue_id", queueID,
		"transaction_id", tx.ID,
		"sheets_ref", ref,
		"amount_paise", tx.Amount.Paise)
	return nil
}
