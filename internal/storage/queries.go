package storage

import (
	"context"
	"database/sql"
	"time"
)

// Queries wraps the prepared SQL the repository runs against SQLite.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

type Account struct {
	Number       string
	Name         string
	Type         string
	BalancePaise int64
	Currency     string
	Status       string
	OpenedDate   string
	Branch       string
}

type Transaction struct {
	ID           string
	Date         time.Time
	Description  string
	Category     string
	Type         string
	AmountPaise  int64
	Account      string
	BalancePaise int64
	Status       string
	Notes        string
	CreatedAt    sql.NullTime
}

type SyncEntry struct {
	ID            int64
	TransactionID string
	EnqueuedAt    time.Time
	Attempts      int64
}

const createAccount = `
INSERT INTO accounts (number, name, type, balance_paise, currency, status, opened_date, branch)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateAccount(ctx context.Context, a Account) error {
	_, err := q.db.ExecContext(ctx, createAccount,
		a.Number, a.Name, a.Type, a.BalancePaise,
		a.Currency, a.Status, a.OpenedDate, a.Branch)
	return err
}

const listAccounts = `
SELECT number, name, type, balance_paise, currency, status, opened_date, branch
FROM accounts
ORDER BY created_at, number
`

func (q *Queries) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := q.db.QueryContext(ctx, listAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.Number, &a.Name, &a.Type, &a.BalancePaise,
			&a.Currency, &a.Status, &a.OpenedDate, &a.Branch); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

const updateAccountBalance = `
UPDATE accounts SET balance_paise = ? WHERE number = ?
`

func (q *Queries) UpdateAccountBalance(ctx context.Context, number string, balancePaise int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateAccountBalance, balancePaise, number)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const createTransaction = `
INSERT INTO transactions (id, date, description, category, type, amount_paise, account, balance_paise, status, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateTransaction(ctx context.Context, t Transaction) error {
	_, err := q.db.ExecContext(ctx, createTransaction,
		t.ID, t.Date, t.Description, t.Category, t.Type,
		t.AmountPaise, t.Account, t.BalancePaise, t.Status, t.Notes)
	return err
}

const listTransactions = `
SELECT id, date, description, category, type, amount_paise, account, balance_paise, status, notes, created_at
FROM transactions
ORDER BY date DESC, created_at DESC
LIMIT ?
`

// ListTransactions returns rows newest first. limit < 0 means no limit.
func (q *Queries) ListTransactions(ctx context.Context, limit int64) ([]Transaction, error) {
	if limit <= 0 {
		limit = -1 // sqlite treats a negative LIMIT as unbounded
	}
	rows, err := q.db.QueryContext(ctx, listTransactions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Description, &t.Category, &t.Type,
			&t.AmountPaise, &t.Account, &t.BalancePaise, &t.Status, &t.Notes, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const getTransaction = `
SELECT id, date, description, category, type, amount_paise, account, balance_paise, status, notes, created_at
FROM transactions
WHERE id = ?
`

func (q *Queries) GetTransaction(ctx context.Context, id string) (Transaction, error) {
	var t Transaction
	err := q.db.QueryRowContext(ctx, getTransaction, id).Scan(
		&t.ID, &t.Date, &t.Description, &t.Category, &t.Type,
		&t.AmountPaise, &t.Account, &t.BalancePaise, &t.Status, &t.Notes, &t.CreatedAt)
	return t, err
}

const enqueueSync = `
INSERT INTO sync_queue (transaction_id) VALUES (?)
`

func (q *Queries) EnqueueSync(ctx context.Context, transactionID string) error {
	_, err := q.db.ExecContext(ctx, enqueueSync, transactionID)
	return err
}

const getPendingSync = `
SELECT id, transaction_id, enqueued_at, attempts
FROM sync_queue
WHERE synced_at IS NULL
ORDER BY enqueued_at
LIMIT ?
`

func (q *Queries) GetPendingSync(ctx context.Context, limit int64) ([]SyncEntry, error) {
	rows, err := q.db.QueryContext(ctx, getPendingSync, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SyncEntry
	for rows.Next() {
		var e SyncEntry
		if err := rows.Scan(&e.ID, &e.TransactionID, &e.EnqueuedAt, &e.Attempts); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const markSynced = `
UPDATE sync_queue SET synced_at = CURRENT_TIMESTAMP WHERE id = ?
`

func (q *Queries) MarkSynced(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markSynced, id)
	return err
}

const abandonSync = `
UPDATE sync_queue SET synced_at = CURRENT_TIMESTAMP, last_error = ? WHERE id = ?
`

// AbandonSync resolves an entry that exhausted its retries, recording the
// final error so the failure stays visible.
func (q *Queries) AbandonSync(ctx context.Context, id int64, lastError string) error {
	_, err := q.db.ExecContext(ctx, abandonSync, lastError, id)
	return err
}

const markSyncError = `
UPDATE sync_queue SET attempts = attempts + 1, last_error = ? WHERE id = ?
`

func (q *Queries) MarkSyncError(ctx context.Context, id int64, lastError string) error {
	_, err := q.db.ExecContext(ctx, markSyncError, lastError, id)
	return err
}
