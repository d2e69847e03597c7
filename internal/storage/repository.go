package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"bankdash/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListAccounts implements sheets.AccountReader
func (r *SQLiteRepository) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.queries.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	accounts := make([]core.Account, len(rows))
	for i, a := range rows {
		accounts[i] = core.Account{
			Number:     a.Number,
			Name:       a.Name,
			Type:       core.ParseAccountType(a.Type),
			Balance:    core.Money{Paise: a.BalancePaise},
			Currency:   a.Currency,
			Status:     core.AccountStatus(a.Status),
			OpenedDate: a.OpenedDate,
			Branch:     a.Branch,
		}
	}
	return accounts, nil
}

// AppendAccount implements sheets.AccountAppender
func (r *SQLiteRepository) AppendAccount(ctx context.Context, a core.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	err := r.queries.CreateAccount(ctx, Account{
		Number:       a.Number,
		Name:         a.Name,
		Type:         string(a.Type),
		BalancePaise: a.Balance.Paise,
		Currency:     a.Currency,
		Status:       string(a.Status),
		OpenedDate:   a.OpenedDate,
		Branch:       a.Branch,
	})
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	slog.InfoContext(ctx, "Account saved to SQLite", "account", a.Number, "type", a.Type)
	return nil
}

// ListTransactions implements sheets.TransactionReader
func (r *SQLiteRepository) ListTransactions(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	txs := make([]core.Transaction, len(rows))
	for i, t := range rows {
		txs[i] = toCoreTransaction(t)
	}
	return txs, nil
}

// AppendTransaction implements sheets.TransactionAppender. The transaction is
// stored and enqueued for spreadsheet sync in one SQLite transaction.
func (r *SQLiteRepository) AppendTransaction(ctx context.Context, tx core.Transaction) (string, error) {
	if _, err := r.AppendTransactionForSync(ctx, tx); err != nil {
		return "", err
	}
	return tx.ID, nil
}

// AppendTransactionForSync stores the transaction and returns the sync queue
// entry id, which the caller can publish over AMQP.
func (r *SQLiteRepository) AppendTransactionForSync(ctx context.Context, tx core.Transaction) (int64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, createTransaction,
		tx.ID, tx.Date, tx.Description, tx.Category, string(tx.Type),
		tx.Amount.Paise, tx.Account, tx.Balance.Paise, string(tx.Status), tx.Notes); err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}
	res, err := dbTx.ExecContext(ctx, enqueueSync, tx.ID)
	if err != nil {
		return 0, fmt.Errorf("enqueue sync: %w", err)
	}
	queueID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sync queue id: %w", err)
	}
	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", tx.ID,
		"description", tx.Description,
		"amount_paise", tx.Amount.Paise,
		"account", tx.Account)
	return queueID, nil
}

// UpdateBalance implements sheets.BalanceUpdater
func (r *SQLiteRepository) UpdateBalance(ctx context.Context, accountNumber string, balance core.Money) error {
	affected, err := r.queries.UpdateAccountBalance(ctx, accountNumber, balance.Paise)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("account %q: %w", accountNumber, core.ErrAccountNotFound)
	}
	return nil
}

// GetTransaction retrieves a single transaction by ID.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row, err := r.queries.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrTransactionNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return toCoreTransaction(row), nil
}

// PendingSyncTransaction represents minimal data needed for sync queue messages
type PendingSyncTransaction struct {
	ID            int64
	TransactionID string
	Attempts      int64
	EnqueuedAt    time.Time
}

// GetPendingSyncTransactions returns transactions that still need to be
// written back to the spreadsheet.
func (r *SQLiteRepository) GetPendingSyncTransactions(ctx context.Context, limit int) ([]PendingSyncTransaction, error) {
	entries, err := r.queries.GetPendingSync(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("get pending sync transactions: %w", err)
	}
	out := make([]PendingSyncTransaction, len(entries))
	for i, e := range entries {
		out[i] = PendingSyncTransaction{
			ID:            e.ID,
			TransactionID: e.TransactionID,
			Attempts:      e.Attempts,
			EnqueuedAt:    e.EnqueuedAt,
		}
	}
	return out, nil
}

// MarkSynced marks a sync queue entry as successfully pushed.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if err := r.queries.MarkSynced(ctx, id); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	slog.InfoContext(ctx, "Sync entry marked as synced", "id", id)
	return nil
}

// MarkSyncAbandoned resolves an entry whose retries are exhausted.
func (r *SQLiteRepository) MarkSyncAbandoned(ctx context.Context, id int64, cause error) error {
	msg := "abandoned"
	if cause != nil {
		msg = "abandoned: " + cause.Error()
	}
	if err := r.queries.AbandonSync(ctx, id, msg); err != nil {
		return fmt.Errorf("mark sync abandoned: %w", err)
	}
	slog.ErrorContext(ctx, "Sync entry abandoned after max retries", "id", id, "cause", msg)
	return nil
}

// MarkSyncError records a failed sync attempt.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if err := r.queries.MarkSyncError(ctx, id, msg); err != nil {
		return fmt.Errorf("mark sync error: %w", err)
	}
	slog.WarnContext(ctx, "Sync entry marked with error", "id", id, "cause", msg)
	return nil
}

func toCoreTransaction(t Transaction) core.Transaction {
	return core.Transaction{
		ID:          t.ID,
		Date:        t.Date,
		Description: t.Description,
		Category:    t.Category,
		Type:        core.ParseTransactionType(t.Type),
		Amount:      core.Money{Paise: t.AmountPaise},
		Account:     t.Account,
		Balance:     core.Money{Paise: t.BalancePaise},
		Status:      core.ParseTransactionStatus(t.Status),
		Notes:       t.Notes,
	}
}
