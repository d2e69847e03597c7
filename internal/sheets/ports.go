package sheets

import (
	"context"

	"bankdash/internal/core"
)

// Ports for outbound data backends. The spreadsheet and the in-memory fixture
// store both satisfy the full set; the SQLite repository reaches them through
// an adapter.
type (
	AccountReader interface {
		// ListAccounts returns every account row in sheet order.
		ListAccounts(ctx context.Context) ([]core.Account, error)
	}

	AccountAppender interface {
		AppendAccount(ctx context.Context, a core.Account) error
	}

	TransactionReader interface {
		// ListTransactions returns transactions, newest first. A limit of 0
		// means no limit.
		ListTransactions(ctx context.Context, limit int) ([]core.Transaction, error)
	}

	TransactionAppender interface {
		// AppendTransaction stores the transaction and returns a backend row
		// reference.
		AppendTransaction(ctx context.Context, tx core.Transaction) (rowRef string, err error)
	}

	BalanceUpdater interface {
		// UpdateBalance overwrites the stored balance of an account.
		UpdateBalance(ctx context.Context, accountNumber string, balance core.Money) error
	}

	// PortfolioReader provides the investments/loans breakdown backing the
	// net-worth summary.
	PortfolioReader interface {
		ReadPortfolio(ctx context.Context) (core.PortfolioSummary, error)
	}
)
