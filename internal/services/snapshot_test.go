package services

import (
	"context"
	"testing"

	"bankdash/internal/sheets/memory"
)

func TestLoadSnapshotFromFixture(t *testing.T) {
	snap, err := LoadSnapshot(context.Background(), memory.NewFixture())
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if len(snap.Accounts) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(snap.Accounts))
	}
	if len(snap.Transactions) != 5 {
		t.Fatalf("expected 5 transactions, got %d", len(snap.Transactions))
	}
	// The store wants oldest first; the fixture serves newest first.
	if snap.Transactions[0].Description != "Transfer to John Doe" {
		t.Fatalf("expected oldest transaction first, got %q", snap.Transactions[0].Description)
	}
	if snap.Transactions[4].Description != "Salary Credit" {
		t.Fatalf("expected newest transaction last, got %q", snap.Transactions[4].Description)
	}

	if len(snap.Investments) != 4 {
		t.Fatalf("expected 4 investments, got %d", len(snap.Investments))
	}
	if len(snap.Cards) != 2 {
		t.Fatalf("expected fixture cards, got %d", len(snap.Cards))
	}
	if len(snap.Bills) != 4 {
		t.Fatalf("expected fixture bills, got %d", len(snap.Bills))
	}
	if snap.Settings.Currency == "" {
		t.Fatal("settings should default")
	}
}
