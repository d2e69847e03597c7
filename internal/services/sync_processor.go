package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"bankdash/internal/sheets"
	"bankdash/internal/storage"
)

// SyncProcessorConfig holds configuration for the sync processor
type SyncProcessorConfig struct {
	// PollInterval is how often to check for pending items (default: 10s)
	PollInterval time.Duration

	// BatchSize is the max number of items to process per poll cycle (default: 10)
	BatchSize int

	// MaxRetries is the maximum retry attempts before abandoning an item (default: 3)
	MaxRetries int
}

// DefaultSyncProcessorConfig returns sensible defaults
func DefaultSyncProcessorConfig() SyncProcessorConfig {
	return SyncProcessorConfig{
		PollInterval: 10 * time.Second,
		BatchSize:    10,
		MaxRetries:   3,
	}
}

// SyncProcessor drains the SQLite sync queue into the spreadsheet.
type SyncProcessor struct {
	storage *storage.SQLiteRepository
	sheet   sheets.TransactionAppender
	config  SyncProcessorConfig

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewSyncProcessor creates a new sync processor
func NewSyncProcessor(storage *storage.SQLiteRepository, sheet sheets.TransactionAppender, config SyncProcessorConfig) *SyncProcessor {
	return &SyncProcessor{
		storage: storage,
		sheet:   sheet,
		config:  config,
	}
}

// Start begins the processing loop. Returns an error if already running.
func (p *SyncProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("sync processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	go p.runLoop(ctx)

	slog.InfoContext(ctx, "Sync processor started",
		"poll_interval", p.config.PollInterval,
		"batch_size", p.config.BatchSize)

	return nil
}

// Stop gracefully stops the processor and waits for completion.
func (p *SyncProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	close(p.stopCh)

	select {
	case <-p.doneCh:
		slog.InfoContext(ctx, "Sync processor stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Sync processor stop timed out")
		return ctx.Err()
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()

	return nil
}

// IsRunning returns whether the processor is currently running
func (p *SyncProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *SyncProcessor) runLoop(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	// Process immediately on startup
	p.ProcessBatch(ctx)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch processes a single batch of pending items. It is exported so
// the AMQP consumer can trigger a drain when a message arrives.
func (p *SyncProcessor) ProcessBatch(ctx context.Context) {
	items, err := p.storage.GetPendingSyncTransactions(ctx, p.config.BatchSize)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch pending sync transactions", "error", err)
		return
	}
	if len(items) == 0 {
		return
	}

	slog.DebugContext(ctx, "Processing sync batch", "count", len(items))

	for _, item := range items {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		if err := p.processItem(ctx, item); err != nil {
			p.handleFailure(ctx, item, err)
		} else if err := p.storage.MarkSynced(ctx, item.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to mark sync entry complete",
				"id", item.ID, "error", err)
		}
	}
}

// processItem pushes one queued transaction to the spreadsheet.
func (p *SyncProcessor) processItem(ctx context.Context, item storage.PendingSyncTransaction) error {
	tx, err := p.storage.GetTransaction(ctx, item.TransactionID)
	if err != nil {
		return fmt.Errorf("get transaction %s: %w", item.TransactionID, err)
	}

	ref, err := p.sheet.AppendTransaction(ctx, tx)
	if err != nil {
		return fmt.Errorf("append to sheet: %w", err)
	}

	slog.InfoContext(ctx, "Synced transaction to spreadsheet",
		"transaction_id", item.TransactionID,
		"sheets_ref", ref)
	return nil
}

// handleFailure records a failed attempt and abandons the entry once retries
// are exhausted.
func (p *SyncProcessor) handleFailure(ctx context.Context, item storage.PendingSyncTransaction, processErr error) {
	slog.WarnContext(ctx, "Sync processing failed",
		"id", item.ID,
		"transaction_id", item.TransactionID,
		"attempt", item.Attempts+1,
		"error", processErr)

	if item.Attempts+1 >= int64(p.config.MaxRetries) {
		if err := p.storage.MarkSyncAbandoned(ctx, item.ID, processErr); err != nil {
			slog.ErrorContext(ctx, "Failed to abandon sync entry",
				"id", item.ID, "error", err)
		}
		return
	}

	if err := p.storage.MarkSyncError(ctx, item.ID, processErr); err != nil {
		slog.ErrorContext(ctx, "Failed to record sync attempt",
			"id", item.ID, "error", err)
	}
}
