package google

import (
	"fmt"
	"strings"
	"time"

	"bankdash/internal/core"
)

// parseAccounts converts a values matrix (as returned by the Sheets API)
// into accounts. Column order: number, name, type, balance, currency,
// status, openedDate, branch. Rows without an account number are skipped;
// a missing balance parses as zero and a missing currency defaults to INR.
func parseAccounts(values [][]interface{}) []core.Account {
	var out []core.Account
	for _, row := range values {
		cols := toStrings(row)
		number := safeGet(cols, 0)
		if number == "" {
			continue
		}
		currency := safeGet(cols, 4)
		if currency == "" {
			currency = core.DefaultCurrency
		}
		status := core.AccountStatus(safeGet(cols, 5))
		if status == "" {
			status = core.AccountActive
		}
		out = append(out, core.Account{
			Number:     number,
			Name:       safeGet(cols, 1),
			Type:       core.ParseAccountType(safeGet(cols, 2)),
			Balance:    core.ParseMoneyOrZero(safeGet(cols, 3)),
			Currency:   currency,
			Status:     status,
			OpenedDate: safeGet(cols, 6),
			Branch:     safeGet(cols, 7),
		})
	}
	return out
}

// parseTransactions converts rows in sheet order. Column order: date, time,
// description, category, type, amount, account, balance, status. A row
// needs at least a parseable date and an account; everything else falls
// back to the standard defaults (amount 0, type expense, status completed).
func parseTransactions(values [][]interface{}) []core.Transaction {
	var out []core.Transaction
	for i, row := range values {
		cols := toStrings(row)
		date, ok := parseRowDate(safeGet(cols, 0), safeGet(cols, 1))
		if !ok {
			continue
		}
		account := safeGet(cols, 6)
		if account == "" {
			continue
		}
		out = append(out, core.Transaction{
			ID:          fmt.Sprintf("row-%d", i+2),
			Date:        date,
			Description: safeGet(cols, 2),
			Category:    safeGet(cols, 3),
			Type:        core.ParseTransactionType(safeGet(cols, 4)),
			Amount:      core.ParseMoneyOrZero(safeGet(cols, 5)),
			Account:     account,
			Balance:     core.ParseMoneyOrZero(safeGet(cols, 7)),
			Status:      core.ParseTransactionStatus(safeGet(cols, 8)),
		})
	}
	return out
}

// parsePortfolio reads the details sheet. Column order: section
// (investment|loan), id, name, type, amount, currentValue, returns, date,
// maturityDate. Totals are recomputed from the parsed rows.
func parsePortfolio(values [][]interface{}) core.PortfolioSummary {
	var p core.PortfolioSummary
	for _, row := range values {
		cols := toStrings(row)
		section := strings.ToLower(safeGet(cols, 0))
		name := safeGet(cols, 2)
		if name == "" {
			continue
		}
		item := core.Investment{
			ID:           safeGet(cols, 1),
			Name:         name,
			Type:         safeGet(cols, 3),
			Amount:       core.ParseMoneyOrZero(safeGet(cols, 4)),
			CurrentValue: core.ParseMoneyOrZero(safeGet(cols, 5)),
			Returns:      core.ParseMoneyOrZero(safeGet(cols, 6)),
			Date:         safeGet(cols, 7),
			MaturityDate: safeGet(cols, 8),
			Status:       "active",
		}
		switch section {
		case "loan":
			p.Loans = append(p.Loans, item)
			p.TotalLiabilities = p.TotalLiabilities.Add(item.Amount)
		case "investment", "":
			p.Investments = append(p.Investments, item)
			p.TotalAssets = p.TotalAssets.Add(item.Amount)
		}
	}
	p.NetWorth = p.TotalAssets.Sub(p.TotalLiabilities)
	return p
}

func parseRowDate(dateStr, timeStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}
	if timeStr == "" {
		timeStr = "00:00"
	}
	for _, layout := range []string{"2006-01-02 15:04", "02/01/2006 15:04"} {
		if t, err := time.ParseInLocation(layout, dateStr+" "+timeStr, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func safeGet(cols []string, i int) string {
	if i < len(cols) {
		return cols[i]
	}
	return ""
}
