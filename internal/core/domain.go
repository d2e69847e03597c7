package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Savings      AccountType = "Savings"
	Current      AccountType = "Current"
	FixedDeposit AccountType = "Fixed Deposit"
	Loan         AccountType = "Loan"
)

const (
	AccountActive  AccountStatus = "Active"
	AccountBlocked AccountStatus = "Blocked"
)

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

const DefaultCurrency = "INR"

type (
	AccountType       string
	AccountStatus     string
	TransactionType   string
	TransactionStatus string

	Account struct {
		Number     string
		Name       string
		Type       AccountType
		Balance    Money
		Currency   string
		Status     AccountStatus
		OpenedDate string
		Branch     string
	}

	Transaction struct {
		ID          string
		Date        time.Time
		Description string
		Category    string
		Type        TransactionType
		Amount      Money
		Account     string // account number the transaction applies to
		Balance     Money  // account balance after the transaction was applied
		Status      TransactionStatus
		Notes       string
	}

	// PeriodBucket is a derived aggregation window used for charting.
	// Recomputed on demand, never persisted.
	PeriodBucket struct {
		Label   string
		Start   time.Time
		End     time.Time
		Income  Money
		Expense Money
		Net     Money
	}
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidRecord       = errors.New("invalid record")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyDescription    = errors.New("empty description")
	ErrEmptyAccountNumber  = errors.New("empty account number")
	ErrStatusTransition    = errors.New("invalid status transition")
)

// ParseAccountType normalizes a free-form account type string to the closed
// enum, defaulting to Savings for unknown values.
func ParseAccountType(s string) AccountType {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "current":
		return Current
	case "fixed deposit", "fixeddeposit", "fd":
		return FixedDeposit
	case "loan":
		return Loan
	default:
		return Savings
	}
}

// ParseTransactionType normalizes a free-form type string to the closed enum.
// Unknown or empty values default to Expense at the parsing boundary so the
// raw string never propagates into the engine.
func ParseTransactionType(s string) TransactionType {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "income":
		return Income
	case "transfer":
		return Transfer
	default:
		return Expense
	}
}

// ParseTransactionStatus defaults unknown values to StatusCompleted, matching
// the spreadsheet defaulting rules.
func ParseTransactionStatus(s string) TransactionStatus {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "pending":
		return StatusPending
	case "failed":
		return StatusFailed
	default:
		return StatusCompleted
	}
}

func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether a status change is allowed. Only
// pending -> completed|failed transitions are legal; everything else is frozen.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if s == next {
		return true
	}
	return s == StatusPending && (next == StatusCompleted || next == StatusFailed)
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Number) == "" {
		return ErrEmptyAccountNumber
	}
	if len(strings.TrimSpace(a.Name)) == 0 {
		return errors.New("empty account name")
	}
	switch a.Type {
	case Savings, Current, FixedDeposit, Loan:
	default:
		return errors.New("invalid account type")
	}
	switch a.Status {
	case AccountActive, AccountBlocked:
	default:
		return errors.New("invalid account status")
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if !t.Type.Valid() {
		return errors.New("invalid transaction type")
	}
	if t.Amount.Paise < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Account) == "" {
		return ErrEmptyAccountNumber
	}
	if !t.Status.Valid() {
		return errors.New("invalid transaction status")
	}
	return nil
}

// DateOnly reports the calendar day of the transaction.
func (t Transaction) DateOnly() string {
	return t.Date.Format("2006-01-02")
}

// TimeOnly reports the clock time of the transaction as HH:MM.
func (t Transaction) TimeOnly() string {
	return t.Date.Format("15:04")
}
