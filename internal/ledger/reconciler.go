package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"bankdash/internal/core"
)

// Reconciler is the only writer of account balances. Apply validates the
// transaction, checks sufficiency for outbound money, then updates the balance
// and appends the transaction under a single store lock so both succeed or
// neither does.
type Reconciler struct {
	store *Store
}

func NewReconciler(store *Store) *Reconciler {
	return &Reconciler{store: store}
}

// Apply records the transaction against its account and returns the stored
// copy with an assigned ID and the resulting balance snapshot.
//
// Income adds the amount. Expense and transfer require the account balance to
// cover the amount, otherwise ErrInsufficientFunds is returned and nothing is
// mutated.
func (r *Reconciler) Apply(tx core.Transaction) (core.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}
	if tx.Status == "" {
		tx.Status = core.StatusCompleted
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.accountIndex(tx.Account)
	if idx < 0 {
		return core.Transaction{}, fmt.Errorf("account %q: %w", tx.Account, core.ErrAccountNotFound)
	}
	account := &s.accounts[idx]

	var newBalance core.Money
	switch tx.Type {
	case core.Income:
		newBalance = account.Balance.Add(tx.Amount)
	case core.Expense, core.Transfer:
		if account.Balance.Less(tx.Amount) {
			return core.Transaction{}, fmt.Errorf("account %q balance %s, need %s: %w",
				tx.Account, account.Balance, tx.Amount, core.ErrInsufficientFunds)
		}
		newBalance = account.Balance.Sub(tx.Amount)
	default:
		return core.Transaction{}, fmt.Errorf("type %q: %w", tx.Type, core.ErrInvalidRecord)
	}

	account.Balance = newBalance
	tx.Balance = newBalance
	s.transactions = append(s.transactions, tx)
	return tx, nil
}

// Transfer moves money between two accounts held in the same store: an
// outbound transfer from one and a matching income into the other, applied in
// order with the outbound sufficiency check first.
func (r *Reconciler) Transfer(from, to string, amount core.Money, notes string) (core.Transaction, error) {
	out := core.Transaction{
		Description: "Transfer to " + to,
		Category:    "Transfer",
		Type:        core.Transfer,
		Amount:      amount,
		Account:     from,
		Notes:       notes,
	}
	stored, err := r.Apply(out)
	if err != nil {
		return core.Transaction{}, err
	}

	// The destination may live outside this store (another bank); credit it
	// only when we hold it.
	if _, lookupErr := r.store.Account(to); lookupErr == nil {
		in := core.Transaction{
			Description: "Transfer from " + from,
			Category:    "Transfer",
			Type:        core.Income,
			Amount:      amount,
			Account:     to,
			Notes:       notes,
		}
		if _, err := r.Apply(in); err != nil {
			return stored, fmt.Errorf("credit destination: %w", err)
		}
	}
	return stored, nil
}
