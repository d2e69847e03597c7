package adapters

import (
	"context"

	"bankdash/internal/core"
	"bankdash/internal/services"
	"bankdash/internal/storage"
)

// SQLiteAdapter adapts SQLiteRepository and TransactionService to the sheets.*
// interfaces. This lets the HTTP handlers work unchanged on the SQLite + AMQP
// backend.
type SQLiteAdapter struct {
	storage *storage.SQLiteRepository
	service *services.TransactionService
}

func NewSQLiteAdapter(storage *storage.SQLiteRepository, service *services.TransactionService) *SQLiteAdapter {
	return &SQLiteAdapter{
		storage: storage,
		service: service,
	}
}

// ListAccounts implements sheets.AccountReader
func (a *SQLiteAdapter) ListAccounts(ctx context.Context) ([]core.Account, error) {
	return a.storage.ListAccounts(ctx)
}

// AppendAccount implements sheets.AccountAppender
func (a *SQLiteAdapter) AppendAccount(ctx context.Context, account core.Account) error {
	return a.storage.AppendAccount(ctx, account)
}

// ListTransactions implements sheets.TransactionReader
func (a *SQLiteAdapter) ListTransactions(ctx context.Context, limit int) ([]core.Transaction, error) {
	return a.storage.ListTransactions(ctx, limit)
}

// AppendTransaction implements sheets.TransactionAppender. Writes go through
// the transaction service so they are enqueued and published for sync.
func (a *SQLiteAdapter) AppendTransaction(ctx context.Context, tx core.Transaction) (string, error) {
	return a.service.RecordTransaction(ctx, tx)
}

// UpdateBalance implements sheets.BalanceUpdater
func (a *SQLiteAdapter) UpdateBalance(ctx context.Context, accountNumber string, balance core.Money) error {
	return a.storage.UpdateBalance(ctx, accountNumber, balance)
}

// ReadPortfolio implements sheets.PortfolioReader. SQLite keeps no separate
// holdings table, so the summary is derived from account types: fixed
// deposits count as investments and loan accounts as liabilities.
func (a *SQLiteAdapter) ReadPortfolio(ctx context.Context) (core.PortfolioSummary, error) {
	accounts, err := a.storage.ListAccounts(ctx)
	if err != nil {
		return core.PortfolioSummary{}, err
	}

	var p core.PortfolioSummary
	for _, acct := range accounts {
		item := core.Investment{
			ID:     acct.Number,
			Name:   acct.Name,
			Type:   string(acct.Type),
			Amount: acct.Balance,
			Date:   acct.OpenedDate,
			Status: "active",
		}
		switch acct.Type {
		case core.FixedDeposit:
			item.CurrentValue = acct.Balance
			p.Investments = append(p.Investments, item)
			p.TotalAssets = p.TotalAssets.Add(acct.Balance)
		case core.Loan:
			p.Loans = append(p.Loans, item)
			p.TotalLiabilities = p.TotalLiabilities.Add(acct.Balance)
		default:
			p.TotalAssets = p.TotalAssets.Add(acct.Balance)
		}
	}
	p.NetWorth = p.TotalAssets.Sub(p.TotalLiabilities)
	return p, nil
}
