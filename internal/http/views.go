// View types returned by the API. Amounts carry both a fixed two-decimal
// string and raw paise so clients render without re-parsing decimals.

package http

import (
	"time"

	"bankdash/internal/core"
)

type accountView struct {
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	AccountType   string `json:"accountType"`
	Balance       string `json:"balance"`
	BalancePaise  int64  `json:"balancePaise"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	OpenedDate    string `json:"openedDate,omitempty"`
	Branch        string `json:"branch,omitempty"`
}

func toAccountView(a core.Account) accountView {
	return accountView{
		AccountNumber: a.Number,
		AccountName:   a.Name,
		AccountType:   string(a.Type),
		Balance:       a.Balance.String(),
		BalancePaise:  a.Balance.Paise,
		Currency:      a.Currency,
		Status:        string(a.Status),
		OpenedDate:    a.OpenedDate,
		Branch:        a.Branch,
	}
}

func toAccountViews(accounts []core.Account) []accountView {
	out := make([]accountView, len(accounts))
	for i, a := range accounts {
		out[i] = toAccountView(a)
	}
	return out
}

type transactionView struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	AmountPaise   int64  `json:"amountPaise"`
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
}

func toTransactionView(tx core.Transaction) transactionView {
	return transactionView{
		ID:            tx.ID,
		Date:          tx.DateOnly(),
		Time:          tx.TimeOnly(),
		Description:   tx.Description,
		Category:      tx.Category,
		Type:          string(tx.Type),
		Amount:        tx.Amount.String(),
		AmountPaise:   tx.Amount.Paise,
		AccountNumber: tx.Account,
		Balance:       tx.Balance.String(),
		Status:        string(tx.Status),
		Notes:         tx.Notes,
	}
}

func toTransactionViews(txs []core.Transaction) []transactionView {
	out := make([]transactionView, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionView(tx)
	}
	return out
}

type bucketView struct {
	Label        string `json:"label"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Income       string `json:"income"`
	IncomePaise  int64  `json:"incomePaise"`
	Expense      string `json:"expense"`
	ExpensePaise int64  `json:"expensePaise"`
	Net          string `json:"net"`
	NetPaise     int64  `json:"netPaise"`
}

func toBucketViews(buckets []core.PeriodBucket) []bucketView {
	out := make([]bucketView, len(buckets))
	for i, b := range buckets {
		out[i] = bucketView{
			Label:        b.Label,
			Start:        b.Start.Format(time.RFC3339),
			End:          b.End.Format(time.RFC3339),
			Income:       b.Income.String(),
			IncomePaise:  b.Income.Paise,
			Expense:      b.Expense.String(),
			ExpensePaise: b.Expense.Paise,
			Net:          b.Net.String(),
			NetPaise:     b.Net.Paise,
		}
	}
	return out
}

type cardView struct {
	ID              string `json:"id"`
	CardNumber      string `json:"cardNumber"`
	CardType        string `json:"cardType"`
	BankName        string `json:"bankName"`
	HolderName      string `json:"holderName"`
	ExpiryDate      string `json:"expiryDate"`
	Status          string `json:"status"`
	AccountNumber   string `json:"accountNumber,omitempty"`
	CreditLimit     string `json:"creditLimit,omitempty"`
	AvailableCredit string `json:"availableCredit,omitempty"`
}

func toCardViews(cards []core.Card) []cardView {
	out := make([]cardView, len(cards))
	for i, c := range cards {
		v := cardView{
			ID:            c.ID,
			CardNumber:    c.Number,
			CardType:      string(c.Type),
			BankName:      c.BankName,
			HolderName:    c.HolderName,
			ExpiryDate:    c.Expiry,
			Status:        c.Status,
			AccountNumber: c.AccountNumber,
		}
		if !c.CreditLimit.IsZero() {
			v.CreditLimit = c.CreditLimit.String()
			v.AvailableCredit = c.AvailableCredit.String()
		}
		out[i] = v
	}
	return out
}

type investmentView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Amount       string `json:"amount"`
	AmountPaise  int64  `json:"amountPaise"`
	CurrentValue string `json:"currentValue"`
	Returns      string `json:"returns"`
	Date         string `json:"date,omitempty"`
	MaturityDate string `json:"maturityDate,omitempty"`
	Status       string `json:"status,omitempty"`
}

func toInvestmentViews(investments []core.Investment) []investmentView {
	out := make([]investmentView, len(investments))
	for i, inv := range investments {
		out[i] = investmentView{
			ID:           inv.ID,
			Name:         inv.Name,
			Type:         inv.Type,
			Amount:       inv.Amount.String(),
			AmountPaise:  inv.Amount.Paise,
			CurrentValue: inv.CurrentValue.String(),
			Returns:      inv.Returns.String(),
			Date:         inv.Date,
			MaturityDate: inv.MaturityDate,
			Status:       inv.Status,
		}
	}
	return out
}

type billView struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Provider      string `json:"provider"`
	Amount        string `json:"amount"`
	AmountPaise   int64  `json:"amountPaise"`
	DueDate       string `json:"dueDate"`
	Status        string `json:"status"`
	AccountNumber string `json:"accountNumber,omitempty"`
	DaysUntilDue  int    `json:"daysUntilDue"`
	Overdue       bool   `json:"overdue"`
}

func toBillViews(bills []core.Bill, now time.Time) []billView {
	out := make([]billView, len(bills))
	for i, b := range bills {
		out[i] = billView{
			ID:            b.ID,
			Type:          b.Type,
			Provider:      b.Provider,
			Amount:        b.Amount.String(),
			AmountPaise:   b.Amount.Paise,
			DueDate:       b.DueDate.Format("2006-01-02"),
			Status:        string(b.Status),
			AccountNumber: b.AccountNumber,
			DaysUntilDue:  b.DaysUntilDue(now),
			Overdue:       b.Overdue(now),
		}
	}
	return out
}

type notificationView struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Created string `json:"created"`
	Read    bool   `json:"read"`
}

func toNotificationViews(notifications []core.Notification) []notificationView {
	out := make([]notificationView, len(notifications))
	for i, n := range notifications {
		out[i] = notificationView{
			ID:      n.ID,
			Title:   n.Title,
			Message: n.Message,
			Kind:    n.Kind,
			Created: n.Created.Format(time.RFC3339),
			Read:    n.Read,
		}
	}
	return out
}

// dashboardView is the aggregate payload behind the landing screen: balance
// cards, recent activity and the net worth summary.
type dashboardView struct {
	TotalBalance       string            `json:"totalBalance"`
	TotalBalancePaise  int64             `json:"totalBalancePaise"`
	Accounts           []accountView     `json:"accounts"`
	RecentTransactions []transactionView `json:"recentTransactions"`
	NetWorth           string            `json:"netWorth"`
	TotalAssets        string            `json:"totalAssets"`
	TotalLiabilities   string            `json:"totalLiabilities"`
	UnreadAlerts       int               `json:"unreadAlerts"`
}
