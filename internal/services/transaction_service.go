package services

import (
	"context"
	"fmt"
	"log/slog"

	"bankdash/internal/core"
	"bankdash/internal/storage"
)

// SyncPublisher publishes sync queue entries to the message broker.
// *amqp.Client satisfies this.
type SyncPublisher interface {
	PublishTransactionSync(ctx context.Context, queueID int64, transactionID string) error
	Close() error
}

// TransactionService orchestrates transaction writes across SQLite and AMQP.
type TransactionService struct {
	storage   *storage.SQLiteRepository
	publisher SyncPublisher
}

func NewTransactionService(storage *storage.SQLiteRepository, publisher SyncPublisher) *TransactionService {
	return &TransactionService{
		storage:   storage,
		publisher: publisher,
	}
}

// RecordTransaction saves a transaction locally and publishes a sync message.
// A publish failure does not fail the request, the poll worker picks the
// entry up from the queue anyway.
func (s *TransactionService) RecordTransaction(ctx context.Context, tx core.Transaction) (string, error) {
	queueID, err := s.storage.AppendTransactionForSync(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publishSyncMessage(ctx, queueID, tx.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"queue_id", queueID, "transaction_id", tx.ID, "error", err)
	}

	return tx.ID, nil
}

func (s *TransactionService) publishSyncMessage(ctx context.Context, queueID int64, transactionID string) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP publisher not available, skipping sync message")
		return nil
	}
	return s.publisher.PublishTransactionSync(ctx, queueID, transactionID)
}

// Close closes both storage and AMQP connections
func (s *TransactionService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close transaction service: %v", errs)
	}
	return nil
}
