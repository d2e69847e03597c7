package report

import (
	"strings"

	"bankdash/internal/core"
)

// TypeAll selects every transaction regardless of type.
const TypeAll = "all"

// SearchOptions carries caller policy for free-text search. MinQueryLength is
// the threshold below which search returns nothing; the dashboard uses 2.
type SearchOptions struct {
	MinQueryLength int
}

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{MinQueryLength: 2}
}

// SearchResult holds the matching subsequences, original order preserved.
type SearchResult struct {
	Transactions []core.Transaction
	Accounts     []core.Account
}

// FilterByType returns the subsequence of transactions matching the given
// type, preserving input order. TypeAll returns the input unchanged.
func FilterByType(txs []core.Transaction, typ string) []core.Transaction {
	if typ == TypeAll || typ == "" {
		return txs
	}
	want := core.TransactionType(typ)
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Type == want {
			out = append(out, tx)
		}
	}
	return out
}

// Search performs a case-insensitive substring match over transaction
// description/category and account name/number. Queries at or below the
// minimum length yield empty result sets.
func Search(txs []core.Transaction, accounts []core.Account, query string, opts SearchOptions) SearchResult {
	query = strings.TrimSpace(query)
	if len(query) <= opts.MinQueryLength {
		return SearchResult{}
	}
	needle := strings.ToLower(query)

	var res SearchResult
	for _, tx := range txs {
		if strings.Contains(strings.ToLower(tx.Description), needle) ||
			strings.Contains(strings.ToLower(tx.Category), needle) {
			res.Transactions = append(res.Transactions, tx)
		}
	}
	for _, a := range accounts {
		if strings.Contains(strings.ToLower(a.Name), needle) ||
			strings.Contains(strings.ToLower(a.Number), needle) {
			res.Accounts = append(res.Accounts, a)
		}
	}
	return res
}
