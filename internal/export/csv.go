// Package export renders the record set to portable text formats. Both
// serializers are pure functions; writing the bytes anywhere is the caller's
// concern.
package export

import (
	"strings"

	"bankdash/internal/core"
)

// csvHeader is the fixed column order the dashboard has always exported.
var csvHeader = []string{
	"Date", "Time", "Description", "Category", "Type",
	"Amount", "Account", "Balance", "Status",
}

// TransactionsCSV renders transactions as CSV with a header row and every
// field quoted, matching the download format of the dashboard UI.
func TransactionsCSV(txs []core.Transaction) string {
	var b strings.Builder
	writeRow(&b, csvHeader)
	for _, tx := range txs {
		writeRow(&b, []string{
			tx.DateOnly(),
			tx.TimeOnly(),
			tx.Description,
			tx.Category,
			string(tx.Type),
			tx.Amount.String(),
			tx.Account,
			tx.Balance.String(),
			string(tx.Status),
		})
	}
	return b.String()
}

// writeRow quotes every field unconditionally, doubling embedded quotes.
func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
