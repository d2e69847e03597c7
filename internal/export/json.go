package export

import (
	"encoding/json"
	"fmt"
	"time"

	"bankdash/internal/core"
	"bankdash/internal/ledger"
)

// Backup is the JSON structure of a full data export. Field order is fixed by
// the struct so repeated exports of the same state are byte-identical apart
// from the timestamp.
type Backup struct {
	Accounts     []accountJSON     `json:"accounts"`
	Transactions []transactionJSON `json:"transactions"`
	Cards        []cardJSON        `json:"cards"`
	Investments  []investmentJSON  `json:"investments"`
	Settings     core.Settings     `json:"settings"`
	ExportDate   string            `json:"exportDate"`
}

type accountJSON struct {
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	AccountType   string `json:"accountType"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	OpenedDate    string `json:"openedDate"`
	Branch        string `json:"branch,omitempty"`
}

type transactionJSON struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
}

type cardJSON struct {
	ID            string `json:"id"`
	CardNumber    string `json:"cardNumber"`
	CardType      string `json:"cardType"`
	BankName      string `json:"bankName"`
	HolderName    string `json:"holderName"`
	ExpiryDate    string `json:"expiryDate"`
	Status        string `json:"status"`
	AccountNumber string `json:"accountNumber,omitempty"`
}

type investmentJSON struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Amount       string `json:"amount"`
	CurrentValue string `json:"currentValue"`
	Returns      string `json:"returns"`
	Date         string `json:"date,omitempty"`
	MaturityDate string `json:"maturityDate,omitempty"`
	Status       string `json:"status,omitempty"`
}

// SnapshotJSON serializes a full store snapshot, stamped with the export time.
func SnapshotJSON(snap ledger.Snapshot, now time.Time) ([]byte, error) {
	backup := Backup{
		Accounts:     make([]accountJSON, 0, len(snap.Accounts)),
		Transactions: make([]transactionJSON, 0, len(snap.Transactions)),
		Cards:        make([]cardJSON, 0, len(snap.Cards)),
		Investments:  make([]investmentJSON, 0, len(snap.Investments)),
		Settings:     snap.Settings,
		ExportDate:   now.UTC().Format(time.RFC3339),
	}
	for _, a := range snap.Accounts {
		backup.Accounts = append(backup.Accounts, accountJSON{
			AccountNumber: a.Number,
			AccountName:   a.Name,
			AccountType:   string(a.Type),
			Balance:       a.Balance.String(),
			Currency:      a.Currency,
			Status:        string(a.Status),
			OpenedDate:    a.OpenedDate,
			Branch:        a.Branch,
		})
	}
	for _, tx := range snap.Transactions {
		backup.Transactions = append(backup.Transactions, transactionJSON{
			ID:            tx.ID,
			Date:          tx.DateOnly(),
			Time:          tx.TimeOnly(),
			Description:   tx.Description,
			Category:      tx.Category,
			Type:          string(tx.Type),
			Amount:        tx.Amount.String(),
			AccountNumber: tx.Account,
			Balance:       tx.Balance.String(),
			Status:        string(tx.Status),
			Notes:         tx.Notes,
		})
	}
	for _, c := range snap.Cards {
		backup.Cards = append(backup.Cards, cardJSON{
			ID:            c.ID,
			CardNumber:    c.Number,
			CardType:      string(c.Type),
			BankName:      c.BankName,
			HolderName:    c.HolderName,
			ExpiryDate:    c.Expiry,
			Status:        c.Status,
			AccountNumber: c.AccountNumber,
		})
	}
	for _, inv := range snap.Investments {
		backup.Investments = append(backup.Investments, investmentJSON{
			ID:           inv.ID,
			Name:         inv.Name,
			Type:         inv.Type,
			Amount:       inv.Amount.String(),
			CurrentValue: inv.CurrentValue.String(),
			Returns:      inv.Returns.String(),
			Date:         inv.Date,
			MaturityDate: inv.MaturityDate,
			Status:       inv.Status,
		})
	}

	out, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return out, nil
}
