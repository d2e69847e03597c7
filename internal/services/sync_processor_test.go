package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bankdash/internal/core"
)

type fakeAppender struct {
	mu       sync.Mutex
	appended []core.Transaction
	failures int // fail this many calls before succeeding
}

func (f *fakeAppender) AppendTransaction(_ context.Context, tx core.Transaction) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return "", errors.New("sheet unavailable")
	}
	f.appended = append(f.appended, tx)
	return "Transactions!A2:I2", nil
}

func (f *fakeAppender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appended)
}

func TestProcessBatchSyncsPendingTransactions(t *testing.T) {
	repo := newTestStorage(t)
	defer repo.Close()
	ctx := context.Background()

	if _, err := repo.AppendTransactionForSync(ctx, testTransaction("tx-1")); err != nil {
		t.Fatalf("AppendTransactionForSync: %v", err)
	}

	sheet := &fakeAppender{}
	p := NewSyncProcessor(repo, sheet, DefaultSyncProcessorConfig())
	p.ProcessBatch(ctx)

	if sheet.count() != 1 {
		t.Fatalf("expected 1 appended transaction, got %d", sheet.count())
	}
	pending, _ := repo.GetPendingSyncTransactions(ctx, 10)
	if len(pending) != 0 {
		t.Fatalf("queue should be drained, got %+v", pending)
	}
}

func TestProcessBatchRetriesThenSucceeds(t *testing.T) {
	repo := newTestStorage(t)
	defer repo.Close()
	ctx := context.Background()

	if _, err := repo.AppendTransactionForSync(ctx, testTransaction("tx-1")); err != nil {
		t.Fatalf("AppendTransactionForSync: %v", err)
	}

	sheet := &fakeAppender{failures: 1}
	p := NewSyncProcessor(repo, sheet, DefaultSyncProcessorConfig())

	p.ProcessBatch(ctx) // fails, attempt recorded
	pending, _ := repo.GetPendingSyncTransactions(ctx, 10)
	if len(pending) != 1 || pending[0].Attempts != 1 {
		t.Fatalf("expected one pending entry with one attempt, got %+v", pending)
	}

	p.ProcessBatch(ctx) // succeeds
	if sheet.count() != 1 {
		t.Fatalf("expected transaction synced on retry, got %d", sheet.count())
	}
	pending, _ = repo.GetPendingSyncTransactions(ctx, 10)
	if len(pending) != 0 {
		t.Fatalf("queue should be drained after retry, got %+v", pending)
	}
}

func TestProcessBatchAbandonsAfterMaxRetries(t *testing.T) {
	repo := newTestStorage(t)
	defer repo.Close()
	ctx := context.Background()

	if _, err := repo.AppendTransactionForSync(ctx, testTransaction("tx-1")); err != nil {
		t.Fatalf("AppendTransactionForSync: %v", err)
	}

	sheet := &fakeAppender{failures: 100}
	cfg := DefaultSyncProcessorConfig()
	cfg.MaxRetries = 3
	p := NewSyncProcessor(repo, sheet, cfg)

	for i := 0; i < cfg.MaxRetries; i++ {
		p.ProcessBatch(ctx)
	}

	pending, _ := repo.GetPendingSyncTransactions(ctx, 10)
	if len(pending) != 0 {
		t.Fatalf("entry should be abandoned after max retries, got %+v", pending)
	}
	if sheet.count() != 0 {
		t.Fatal("nothing should have been appended")
	}
}

func TestSyncProcessorLifecycle(t *testing.T) {
	repo := newTestStorage(t)
	defer repo.Close()
	ctx := context.Background()

	cfg := DefaultSyncProcessorConfig()
	cfg.PollInterval = 10 * time.Millisecond
	p := NewSyncProcessor(repo, &fakeAppender{}, cfg)

	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !p.IsRunning() {
		t.Fatal("processor should be running after Start")
	}
	if err := p.Start(ctx); err == nil {
		t.Fatal("second Start should fail")
	}

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := p.Stop(stopCtx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if p.IsRunning() {
		t.Fatal("processor should not be running after Stop")
	}
	if err := p.Stop(stopCtx); err != nil {
		t.Fatalf("Stop on stopped processor: %v", err)
	}
}
