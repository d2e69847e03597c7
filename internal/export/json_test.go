package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"bankdash/internal/core"
	"bankdash/internal/ledger"
)

func testSnapshot() ledger.Snapshot {
	return ledger.Snapshot{
		Accounts: []core.Account{{
			Number: "****1234", Name: "Primary Savings Account", Type: core.Savings,
			Balance: core.Money{Paise: 12545000}, Currency: "INR", Status: core.AccountActive,
			OpenedDate: "2020-01-15",
		}},
		Transactions: []core.Transaction{{
			ID: "t1", Date: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
			Description: "Salary Credit", Category: "Salary", Type: core.Income,
			Amount: core.Money{Paise: 4500000}, Account: "****1234",
			Balance: core.Money{Paise: 12545000}, Status: core.StatusCompleted,
		}},
		Cards: []core.Card{{
			ID: "c1", Number: "4532 **** **** 1234", Type: core.CardDebit,
			BankName: "DHIndus Banks", HolderName: "John Doe", Expiry: "12/25", Status: "active",
		}},
		Investments: []core.Investment{{
			ID: "i1", Name: "Fixed Deposit", Type: "Fixed Deposit",
			Amount: core.Money{Paise: 50000000}, CurrentValue: core.Money{Paise: 52500000},
			Returns: core.Money{Paise: 2500000},
		}},
		Settings: core.DefaultSettings(),
	}
}

func TestSnapshotJSONStructure(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	out, err := SnapshotJSON(testSnapshot(), now)
	if err != nil {
		t.Fatalf("SnapshotJSON: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"accounts", "transactions", "cards", "investments", "settings", "exportDate"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing top-level key %q", key)
		}
	}

	var stamp string
	if err := json.Unmarshal(decoded["exportDate"], &stamp); err != nil {
		t.Fatalf("exportDate: %v", err)
	}
	if stamp != "2025-06-15T12:00:00Z" {
		t.Fatalf("exportDate = %q", stamp)
	}
}

func TestSnapshotJSONStableOrdering(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	first, err := SnapshotJSON(testSnapshot(), now)
	if err != nil {
		t.Fatalf("SnapshotJSON: %v", err)
	}
	second, err := SnapshotJSON(testSnapshot(), now)
	if err != nil {
		t.Fatalf("SnapshotJSON: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("repeated exports of identical state must be byte-identical")
	}
}

func TestSnapshotJSONEmptyCollections(t *testing.T) {
	out, err := SnapshotJSON(ledger.Snapshot{}, time.Now())
	if err != nil {
		t.Fatalf("SnapshotJSON: %v", err)
	}
	var backup struct {
		Accounts     []json.RawMessage `json:"accounts"`
		Transactions []json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(out, &backup); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if backup.Accounts == nil || backup.Transactions == nil {
		t.Fatalf("empty collections must serialize as [], not null")
	}
}
