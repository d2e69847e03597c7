package core

import (
	"strings"
	"time"
)

const (
	CardDebit  CardType = "Debit"
	CardCredit CardType = "Credit"
)

const (
	BillPending BillStatus = "pending"
	BillPaid    BillStatus = "paid"
)

type (
	CardType   string
	BillStatus string

	// Card is a debit or credit card linked to an account.
	Card struct {
		ID              string
		Number          string // masked, e.g. "4532 **** **** 1234"
		Type            CardType
		BankName        string
		HolderName      string
		Expiry          string // MM/YY
		Status          string // active | blocked
		AccountNumber   string
		CreditLimit     Money
		AvailableCredit Money
	}

	// Investment is a holding with its invested amount and current value.
	Investment struct {
		ID           string
		Name         string
		Type         string // Fixed Deposit | Mutual Fund | Stocks | PPF | ...
		Amount       Money
		CurrentValue Money
		Returns      Money
		Date         string
		MaturityDate string
		Status       string
	}

	// Bill is a recurring payment reminder (utilities, subscriptions).
	Bill struct {
		ID            string
		Type          string // Electricity | Water | Internet | Mobile | ...
		Provider      string
		Amount        Money
		DueDate       time.Time
		Status        BillStatus
		AccountNumber string
		LastPaid      time.Time
	}

	Notification struct {
		ID      string
		Title   string
		Message string
		Kind    string // info | success | warning | error
		Created time.Time
		Read    bool
	}

	// Settings is the user preference blob carried through exports.
	Settings struct {
		Language    string
		Currency    string
		DateFormat  string
		EmailAlerts bool
		SMSAlerts   bool
		PushAlerts  bool
		TwoFactor   bool
		DarkTheme   bool
	}

	// PortfolioSummary aggregates investments and loans into net worth.
	PortfolioSummary struct {
		TotalAssets      Money
		TotalLiabilities Money
		NetWorth         Money
		Investments      []Investment
		Loans            []Investment
	}
)

// SummarizeInvestments computes total invested, total returns and average ROI
// in percent over a set of holdings.
func SummarizeInvestments(investments []Investment) (total, returns Money, roi float64) {
	for _, inv := range investments {
		total = total.Add(inv.Amount)
		returns = returns.Add(inv.Returns)
	}
	if total.Paise > 0 {
		roi = float64(returns.Paise) / float64(total.Paise) * 100
	}
	return total, returns, roi
}

func (b Bill) Validate() error {
	if strings.TrimSpace(b.Provider) == "" {
		return ErrInvalidRecord
	}
	if b.DueDate.IsZero() {
		return ErrInvalidRecord
	}
	return b.Amount.Validate()
}

// Overdue reports whether a pending bill is past its due date at now.
func (b Bill) Overdue(now time.Time) bool {
	return b.Status == BillPending && b.DueDate.Before(now)
}

// DaysUntilDue returns whole days from now until the due date, negative when
// the bill is already overdue.
func (b Bill) DaysUntilDue(now time.Time) int {
	return int(b.DueDate.Sub(now).Hours() / 24)
}

func DefaultSettings() Settings {
	return Settings{
		Language:    "en",
		Currency:    DefaultCurrency,
		DateFormat:  "DD/MM/YYYY",
		EmailAlerts: true,
		PushAlerts:  true,
	}
}
