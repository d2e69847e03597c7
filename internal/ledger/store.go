// Package ledger owns the in-memory record set: accounts, the append-only
// transaction list and the supporting portfolio records. All reads hand out
// copies; balance mutation goes through the Reconciler only.
package ledger

import (
	"fmt"
	"strings"
	"sync"

	"bankdash/internal/core"
)

// Snapshot is a point-in-time copy of everything the store holds. It is the
// unit handed to the export serializer and to backup consumers.
type Snapshot struct {
	Accounts      []core.Account
	Transactions  []core.Transaction
	Cards         []core.Card
	Investments   []core.Investment
	Loans         []core.Investment
	Bills         []core.Bill
	Notifications []core.Notification
	Settings      core.Settings
}

type Store struct {
	mu            sync.Mutex
	accounts      []core.Account
	transactions  []core.Transaction // insertion order, oldest first
	cards         []core.Card
	investments   []core.Investment
	loans         []core.Investment
	bills         []core.Bill
	notifications []core.Notification
	settings      core.Settings
}

func New() *Store {
	return &Store{settings: core.DefaultSettings()}
}

// Seed replaces the store contents with the given snapshot. Used when loading
// from a backend or installing demo fixtures.
func (s *Store) Seed(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append([]core.Account(nil), snap.Accounts...)
	s.transactions = append([]core.Transaction(nil), snap.Transactions...)
	s.cards = append([]core.Card(nil), snap.Cards...)
	s.investments = append([]core.Investment(nil), snap.Investments...)
	s.loans = append([]core.Investment(nil), snap.Loans...)
	s.bills = append([]core.Bill(nil), snap.Bills...)
	s.notifications = append([]core.Notification(nil), snap.Notifications...)
	if snap.Settings != (core.Settings{}) {
		s.settings = snap.Settings
	}
}

// Accounts returns the account list in insertion order.
func (s *Store) Accounts() []core.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Account(nil), s.accounts...)
}

// Account finds an account by number.
func (s *Store) Account(number string) (core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.accountIndex(number)
	if idx < 0 {
		return core.Account{}, fmt.Errorf("account %q: %w", number, core.ErrAccountNotFound)
	}
	return s.accounts[idx], nil
}

// AddAccount appends a new account after validation. Duplicate numbers are
// rejected.
func (s *Store) AddAccount(a core.Account) error {
	if a.Currency == "" {
		a.Currency = core.DefaultCurrency
	}
	if err := a.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.accountIndex(a.Number) >= 0 {
		return fmt.Errorf("account %q already exists", a.Number)
	}
	s.accounts = append(s.accounts, a)
	return nil
}

// Transactions returns the transaction list most-recent-first.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.transactions))
	for i, tx := range s.transactions {
		out[len(out)-1-i] = tx
	}
	return out
}

// Transaction finds a transaction by ID.
func (s *Store) Transaction(id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("transaction %q: %w", id, core.ErrTransactionNotFound)
}

// UpdateTransactionStatus moves a transaction through its status lifecycle.
// Amount, type and account are immutable once recorded; only
// pending -> completed|failed transitions are legal.
func (s *Store) UpdateTransactionStatus(id string, status core.TransactionStatus) error {
	if !status.Valid() {
		return fmt.Errorf("status %q: %w", status, core.ErrStatusTransition)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}
		if !s.transactions[i].Status.CanTransitionTo(status) {
			return fmt.Errorf("%s -> %s: %w", s.transactions[i].Status, status, core.ErrStatusTransition)
		}
		s.transactions[i].Status = status
		return nil
	}
	return fmt.Errorf("transaction %q: %w", id, core.ErrTransactionNotFound)
}

func (s *Store) Cards() []core.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Card(nil), s.cards...)
}

func (s *Store) Investments() []core.Investment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Investment(nil), s.investments...)
}

func (s *Store) Bills() []core.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Bill(nil), s.bills...)
}

// Portfolio summarizes investments and loans into asset, liability and net
// worth totals.
func (s *Store) Portfolio() core.PortfolioSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := core.PortfolioSummary{
		Investments: append([]core.Investment(nil), s.investments...),
		Loans:       append([]core.Investment(nil), s.loans...),
	}
	for _, inv := range s.investments {
		sum.TotalAssets = sum.TotalAssets.Add(inv.Amount)
	}
	for _, loan := range s.loans {
		sum.TotalLiabilities = sum.TotalLiabilities.Add(loan.Amount)
	}
	sum.NetWorth = sum.TotalAssets.Sub(sum.TotalLiabilities)
	return sum
}

func (s *Store) Settings() core.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Store) SetSettings(settings core.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// Notifications returns notifications newest first.
func (s *Store) Notifications() []core.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Notification, len(s.notifications))
	for i, n := range s.notifications {
		out[len(out)-1-i] = n
	}
	return out
}

func (s *Store) AddNotification(n core.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

func (s *Store) MarkNotificationRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return true
		}
	}
	return false
}

func (s *Store) MarkAllNotificationsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
}

func (s *Store) DeleteNotification(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) UnreadNotifications() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// Snapshot copies the full store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs := make([]core.Transaction, len(s.transactions))
	for i, tx := range s.transactions {
		txs[len(txs)-1-i] = tx
	}
	return Snapshot{
		Accounts:      append([]core.Account(nil), s.accounts...),
		Transactions:  txs,
		Cards:         append([]core.Card(nil), s.cards...),
		Investments:   append([]core.Investment(nil), s.investments...),
		Loans:         append([]core.Investment(nil), s.loans...),
		Bills:         append([]core.Bill(nil), s.bills...),
		Notifications: append([]core.Notification(nil), s.notifications...),
		Settings:      s.settings,
	}
}

// accountIndex must be called with the lock held.
func (s *Store) accountIndex(number string) int {
	number = strings.TrimSpace(number)
	for i := range s.accounts {
		if s.accounts[i].Number == number {
			return i
		}
	}
	return -1
}
