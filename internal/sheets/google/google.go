package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"bankdash/internal/core"

	ports "bankdash/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc               *gsheet.Service
	spreadsheetID     string
	accountsSheet     string
	transactionsSheet string
	detailsSheet      string
}

// Ensure interface conformance
var (
	_ ports.AccountReader       = (*Client)(nil)
	_ ports.AccountAppender     = (*Client)(nil)
	_ ports.TransactionReader   = (*Client)(nil)
	_ ports.TransactionAppender = (*Client)(nil)
	_ ports.BalanceUpdater      = (*Client)(nil)
	_ ports.PortfolioReader     = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID
// Optional: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS for auth.
// Optional sheet names: GOOGLE_ACCOUNTS_SHEET_NAME (default "Accounts"),
// GOOGLE_TRANSACTIONS_SHEET_NAME (default "Transactions"),
// GOOGLE_DETAILS_SHEET_NAME (default "AccountDetails").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	accounts := strings.TrimSpace(os.Getenv("GOOGLE_ACCOUNTS_SHEET_NAME"))
	if accounts == "" {
		accounts = "Accounts"
	}
	transactions := strings.TrimSpace(os.Getenv("GOOGLE_TRANSACTIONS_SHEET_NAME"))
	if transactions == "" {
		transactions = "Transactions"
	}
	details := strings.TrimSpace(os.Getenv("GOOGLE_DETAILS_SHEET_NAME"))
	if details == "" {
		details = "AccountDetails"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:               svc,
		spreadsheetID:     spreadsheetID,
		accountsSheet:     accounts,
		transactionsSheet: transactions,
		detailsSheet:      details,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
// Uses GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) ListAccounts(ctx context.Context) ([]core.Account, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A2:H", c.accountsSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return parseAccounts(resp.Values), nil
}

func (c *Client) AppendAccount(ctx context.Context, a core.Account) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:H", c.accountsSheet)
	vr := &gsheet.ValueRange{Values: [][]any{{
		a.Number, a.Name, string(a.Type), a.Balance.String(),
		a.Currency, string(a.Status), a.OpenedDate, a.Branch,
	}}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", c.accountsSheet, err)
	}
	return nil
}

// ListTransactions reads the transactions sheet and returns rows newest first.
// The sheet itself is append-ordered, so rows are reversed after parsing.
// A limit of 0 means no limit.
func (c *Client) ListTransactions(ctx context.Context, limit int) ([]core.Transaction, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A2:I", c.transactionsSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	txs := parseTransactions(resp.Values)
	for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
		txs[i], txs[j] = txs[j], txs[i]
	}
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, nil
}

func (c *Client) AppendTransaction(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	// Find the next empty row by getting the sheet dimensions first
	rng := fmt.Sprintf("%s!A:A", c.transactionsSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get sheet dimensions for %s: %w", c.transactionsSheet, err)
	}
	nextRow := len(resp.Values) + 1

	dataRange := fmt.Sprintf("%s!A%d:I%d", c.transactionsSheet, nextRow, nextRow)
	vr := &gsheet.ValueRange{Values: [][]any{{
		tx.DateOnly(), tx.TimeOnly(), tx.Description, tx.Category,
		string(tx.Type), tx.Amount.String(), tx.Account,
		tx.Balance.String(), string(tx.Status),
	}}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to update %s: %w", dataRange, err)
	}
	return dataRange, nil
}

// UpdateBalance locates the account row by number and rewrites its balance
// cell in place.
func (c *Client) UpdateBalance(ctx context.Context, accountNumber string, balance core.Money) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A2:A", c.accountsSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read %s: %w", rng, err)
	}
	row := -1
	for i, r := range resp.Values {
		if len(r) > 0 && strings.TrimSpace(fmt.Sprint(r[0])) == accountNumber {
			row = i + 2 // values start at row 2
			break
		}
	}
	if row == -1 {
		return fmt.Errorf("account %q: %w", accountNumber, core.ErrAccountNotFound)
	}

	cell := fmt.Sprintf("%s!D%d", c.accountsSheet, row)
	vr := &gsheet.ValueRange{Values: [][]any{{balance.String()}}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, cell, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", cell, err)
	}
	slog.DebugContext(ctx, "balance cell updated", "account", accountNumber, "cell", cell)
	return nil
}

func (c *Client) ReadPortfolio(ctx context.Context) (core.PortfolioSummary, error) {
	if c.svc == nil {
		return core.PortfolioSummary{}, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A2:I", c.detailsSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return core.PortfolioSummary{}, fmt.Errorf("read %s: %w", rng, err)
	}
	return parsePortfolio(resp.Values), nil
}
