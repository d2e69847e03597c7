package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"bankdash/internal/core"
	"bankdash/internal/ledger"
)

// SnapshotSource is the read surface needed to populate the ledger store.
type SnapshotSource interface {
	ListAccounts(ctx context.Context) ([]core.Account, error)
	ListTransactions(ctx context.Context, limit int) ([]core.Transaction, error)
	ReadPortfolio(ctx context.Context) (core.PortfolioSummary, error)
}

// LoadSnapshot reads accounts, transactions and portfolio details from the
// backend concurrently and assembles the in-memory snapshot the dashboard
// serves from. Transactions arrive newest first and are stored oldest first.
func LoadSnapshot(ctx context.Context, src SnapshotSource) (ledger.Snapshot, error) {
	var (
		accounts  []core.Account
		txs       []core.Transaction
		portfolio core.PortfolioSummary
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = src.ListAccounts(ctx)
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		txs, err = src.ListTransactions(ctx, 0)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		portfolio, err = src.ReadPortfolio(ctx)
		if err != nil {
			return fmt.Errorf("read portfolio: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return ledger.Snapshot{}, err
	}

	ordered := make([]core.Transaction, len(txs))
	for i, tx := range txs {
		ordered[len(txs)-1-i] = tx
	}

	snap := ledger.Snapshot{
		Accounts:     accounts,
		Transactions: ordered,
		Investments:  portfolio.Investments,
		Loans:        portfolio.Loans,
		Settings:     core.DefaultSettings(),
	}

	// Demo extras are only available on the fixture backend.
	if cards, ok := src.(interface{ Cards() []core.Card }); ok {
		snap.Cards = cards.Cards()
	}
	if bills, ok := src.(interface{ Bills() []core.Bill }); ok {
		snap.Bills = bills.Bills()
	}
	return snap, nil
}
