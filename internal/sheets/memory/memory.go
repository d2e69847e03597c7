// Package memory is the demo fixture backend: the static data set the
// dashboard falls back to when no spreadsheet is configured.
package memory

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"bankdash/internal/core"
)

type Store struct {
	mu           sync.Mutex
	accounts     []core.Account
	transactions []core.Transaction // newest first, like the sheet is read
	portfolio    core.PortfolioSummary
	cards        []core.Card
	bills        []core.Bill
}

// NewFixture builds a store seeded with the standard demo data set.
func NewFixture() *Store {
	now := time.Now()
	day := 24 * time.Hour

	s := &Store{
		accounts: []core.Account{
			{Number: "****1234", Name: "Primary Savings Account", Type: core.Savings, Balance: core.Money{Paise: 12545000}, Currency: core.DefaultCurrency, Status: core.AccountActive, OpenedDate: "2020-01-15", Branch: "Main Branch"},
			{Number: "****5678", Name: "Current Account", Type: core.Current, Balance: core.Money{Paise: 4500000}, Currency: core.DefaultCurrency, Status: core.AccountActive, OpenedDate: "2021-03-20", Branch: "Main Branch"},
			{Number: "FD-001234", Name: "Fixed Deposit Account", Type: core.FixedDeposit, Balance: core.Money{Paise: 50000000}, Currency: core.DefaultCurrency, Status: core.AccountActive, OpenedDate: "2024-01-15", Branch: "Main Branch"},
		},
		transactions: []core.Transaction{
			{ID: "demo-1", Date: now, Description: "Salary Credit", Category: "Salary", Type: core.Income, Amount: core.Money{Paise: 4500000}, Account: "****1234", Balance: core.Money{Paise: 12545000}, Status: core.StatusCompleted},
			{ID: "demo-2", Date: now.Add(-1 * day), Description: "Electricity Bill Payment", Category: "Utilities", Type: core.Expense, Amount: core.Money{Paise: 250000}, Account: "****1234", Balance: core.Money{Paise: 12295000}, Status: core.StatusCompleted},
			{ID: "demo-3", Date: now.Add(-2 * day), Description: "Online Purchase", Category: "Shopping", Type: core.Expense, Amount: core.Money{Paise: 125000}, Account: "****1234", Balance: core.Money{Paise: 12170000}, Status: core.StatusCompleted},
			{ID: "demo-4", Date: now.Add(-3 * day), Description: "Refund Received", Category: "Refund", Type: core.Income, Amount: core.Money{Paise: 85000}, Account: "****1234", Balance: core.Money{Paise: 12255000}, Status: core.StatusCompleted},
			{ID: "demo-5", Date: now.Add(-4 * day), Description: "Transfer to John Doe", Category: "Transfer", Type: core.Transfer, Amount: core.Money{Paise: 500000}, Account: "****1234", Balance: core.Money{Paise: 11755000}, Status: core.StatusCompleted},
		},
		cards: []core.Card{
			{ID: "card-1", Number: "4532 **** **** 1234", Type: core.CardDebit, BankName: "DHIndus Banks", HolderName: "John Doe", Expiry: "12/25", Status: "active", AccountNumber: "****1234"},
			{ID: "card-2", Number: "5500 **** **** 5678", Type: core.CardCredit, BankName: "DHIndus Banks", HolderName: "John Doe", Expiry: "08/26", Status: "active", CreditLimit: core.Money{Paise: 10000000}, AvailableCredit: core.Money{Paise: 7500000}},
		},
		bills: []core.Bill{
			{ID: "bill-1", Type: "Electricity", Provider: "State Electricity Board", Amount: core.Money{Paise: 250000}, DueDate: now.Add(3 * day), Status: core.BillPending, AccountNumber: "EB-123456789", LastPaid: now.Add(-30 * day)},
			{ID: "bill-2", Type: "Water", Provider: "Municipal Corporation", Amount: core.Money{Paise: 80000}, DueDate: now.Add(2 * day), Status: core.BillPending, AccountNumber: "WC-987654321", LastPaid: now.Add(-30 * day)},
			{ID: "bill-3", Type: "Internet", Provider: "Broadband Provider", Amount: core.Money{Paise: 120000}, DueDate: now.Add(5 * day), Status: core.BillPaid, AccountNumber: "INT-456789123", LastPaid: now.Add(-1 * day)},
			{ID: "bill-4", Type: "Mobile", Provider: "Telecom Provider", Amount: core.Money{Paise: 50000}, DueDate: now.Add(7 * day), Status: core.BillPending, AccountNumber: "MOB-789123456", LastPaid: now.Add(-30 * day)},
		},
	}

	s.portfolio = core.PortfolioSummary{
		Investments: []core.Investment{
			{ID: "inv-1", Name: "Fixed Deposit", Type: "Fixed Deposit", Amount: core.Money{Paise: 50000000}, CurrentValue: core.Money{Paise: 52500000}, Returns: core.Money{Paise: 2500000}, Date: "2024-01-15", MaturityDate: "2025-01-15", Status: "active"},
			{ID: "inv-2", Name: "Mutual Fund - Equity", Type: "Mutual Fund", Amount: core.Money{Paise: 10000000}, CurrentValue: core.Money{Paise: 11500000}, Returns: core.Money{Paise: 1500000}, Date: "2023-06-01", Status: "active"},
			{ID: "inv-3", Name: "Stocks Portfolio", Type: "Stocks", Amount: core.Money{Paise: 20000000}, CurrentValue: core.Money{Paise: 23000000}, Returns: core.Money{Paise: 3000000}, Date: "2023-03-10", Status: "active"},
			{ID: "inv-4", Name: "PPF Account", Type: "PPF", Amount: core.Money{Paise: 15000000}, CurrentValue: core.Money{Paise: 16500000}, Returns: core.Money{Paise: 1500000}, Date: "2022-01-01", Status: "active"},
		},
		Loans: []core.Investment{
			{ID: "loan-1", Name: "Home Loan", Type: "Loan", Amount: core.Money{Paise: 25000000}, Date: "2021-05-01", Status: "active"},
		},
	}
	for _, inv := range s.portfolio.Investments {
		s.portfolio.TotalAssets = s.portfolio.TotalAssets.Add(inv.Amount)
	}
	for _, loan := range s.portfolio.Loans {
		s.portfolio.TotalLiabilities = s.portfolio.TotalLiabilities.Add(loan.Amount)
	}
	s.portfolio.NetWorth = s.portfolio.TotalAssets.Sub(s.portfolio.TotalLiabilities)
	return s
}

// NewFromFiles seeds the fixture and layers any transactions found in
// <base>/seed_transactions.csv on top. The file uses the export column order;
// rows with missing fields fall back to the standard defaults.
func NewFromFiles(base string) *Store {
	s := NewFixture()
	extra := readTransactionsCSV(filepath.Join(base, "seed_transactions.csv"))
	if len(extra) > 0 {
		// Seeded rows are newer than the fixture set.
		s.transactions = append(extra, s.transactions...)
	}
	return s
}

func (s *Store) ListAccounts(_ context.Context) ([]core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Account(nil), s.accounts...), nil
}

func (s *Store) AppendAccount(_ context.Context, a core.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, a)
	return nil
}

func (s *Store) ListTransactions(_ context.Context, limit int) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Transaction(nil), s.transactions...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// AppendTransaction stores the transaction and returns a synthetic row
// reference.
func (s *Store) AppendTransaction(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append([]core.Transaction{tx}, s.transactions...)
	return fmt.Sprintf("mem:%d", len(s.transactions)), nil
}

func (s *Store) UpdateBalance(_ context.Context, accountNumber string, balance core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].Number == accountNumber {
			s.accounts[i].Balance = balance
			return nil
		}
	}
	return fmt.Errorf("account %q: %w", accountNumber, core.ErrAccountNotFound)
}

func (s *Store) ReadPortfolio(_ context.Context) (core.PortfolioSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.portfolio, nil
}

// Cards returns the demo card set.
func (s *Store) Cards() []core.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Card(nil), s.cards...)
}

// Bills returns the demo bill reminder set.
func (s *Store) Bills() []core.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Bill(nil), s.bills...)
}

func readTransactionsCSV(path string) []core.Transaction {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil
	}

	var out []core.Transaction
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == "Date" {
			continue // header
		}
		tx := parseSeedRow(row)
		if tx.Date.IsZero() {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// parseSeedRow applies the spreadsheet defaulting rules to a CSV row in the
// export column order: date, time, description, category, type, amount,
// account, balance, status.
func parseSeedRow(row []string) core.Transaction {
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	date, err := time.ParseInLocation("2006-01-02 15:04", get(0)+" "+orDefault(get(1), "00:00"), time.Local)
	if err != nil {
		return core.Transaction{}
	}
	return core.Transaction{
		ID:          fmt.Sprintf("seed-%s-%s", get(0), get(6)),
		Date:        date,
		Description: get(2),
		Category:    orDefault(get(3), "Other"),
		Type:        core.ParseTransactionType(get(4)),
		Amount:      core.ParseMoneyOrZero(get(5)),
		Account:     get(6),
		Balance:     core.ParseMoneyOrZero(get(7)),
		Status:      core.ParseTransactionStatus(get(8)),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
