package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"bankdash/internal/core"
	"bankdash/internal/storage"
)

type fakePublisher struct {
	mu        sync.Mutex
	published []string
	fail      bool
	closed    bool
}

func (f *fakePublisher) PublishTransactionSync(_ context.Context, _ int64, transactionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.published = append(f.published, transactionID)
	return nil
}

func (f *fakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func newTestStorage(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "bankdash.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	return repo
}

func testTransaction(id string) core.Transaction {
	return core.Transaction{
		ID:          id,
		Date:        time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC),
		Description: "Salary Credit",
		Category:    "Salary",
		Type:        core.Income,
		Amount:      core.Money{Paise: 4500000},
		Account:     "****1234",
		Status:      core.StatusCompleted,
	}
}

func TestRecordTransactionPublishes(t *testing.T) {
	repo := newTestStorage(t)
	pub := &fakePublisher{}
	svc := NewTransactionService(repo, pub)
	defer svc.Close()

	ref, err := svc.RecordTransaction(context.Background(), testTransaction("tx-1"))
	if err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}
	if ref != "tx-1" {
		t.Fatalf("ref = %q, want tx-1", ref)
	}

	if len(pub.published) != 1 || pub.published[0] != "tx-1" {
		t.Fatalf("expected one published sync message for tx-1, got %v", pub.published)
	}

	got, err := repo.GetTransaction(context.Background(), "tx-1")
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if got.Description != "Salary Credit" {
		t.Fatalf("stored description = %q", got.Description)
	}
}

func TestRecordTransactionSurvivesPublishFailure(t *testing.T) {
	repo := newTestStorage(t)
	pub := &fakePublisher{fail: true}
	svc := NewTransactionService(repo, pub)
	defer svc.Close()

	if _, err := svc.RecordTransaction(context.Background(), testTransaction("tx-2")); err != nil {
		t.Fatalf("publish failure must not fail the request: %v", err)
	}

	// The entry stays in the queue for the poll worker.
	pending, err := repo.GetPendingSyncTransactions(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetPendingSyncTransactions: %v", err)
	}
	if len(pending) != 1 || pending[0].TransactionID != "tx-2" {
		t.Fatalf("expected tx-2 pending, got %+v", pending)
	}
}

func TestRecordTransactionWithoutPublisher(t *testing.T) {
	repo := newTestStorage(t)
	svc := NewTransactionService(repo, nil)
	defer svc.Close()

	if _, err := svc.RecordTransaction(context.Background(), testTransaction("tx-3")); err != nil {
		t.Fatalf("RecordTransaction without publisher: %v", err)
	}
}

func TestRecordTransactionInvalid(t *testing.T) {
	repo := newTestStorage(t)
	pub := &fakePublisher{}
	svc := NewTransactionService(repo, pub)
	defer svc.Close()

	_, err := svc.RecordTransaction(context.Background(), core.Transaction{ID: "bad"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(pub.published) != 0 {
		t.Fatal("nothing should be published for an invalid transaction")
	}
}

func TestCloseClosesPublisher(t *testing.T) {
	repo := newTestStorage(t)
	pub := &fakePublisher{}
	svc := NewTransactionService(repo, pub)

	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !pub.closed {
		t.Fatal("publisher should be closed")
	}
}
