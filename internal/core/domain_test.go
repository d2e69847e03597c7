package core

import (
	"testing"
	"time"
)

func TestParseTransactionType(t *testing.T) {
	cases := []struct {
		in   string
		want TransactionType
	}{
		{"income", Income},
		{"INCOME", Income},
		{"transfer", Transfer},
		{"expense", Expense},
		{"", Expense},
		{"garbage", Expense},
	}
	for _, tc := range cases {
		if got := ParseTransactionType(tc.in); got != tc.want {
			t.Fatalf("ParseTransactionType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseTransactionStatus(t *testing.T) {
	cases := []struct {
		in   string
		want TransactionStatus
	}{
		{"pending", StatusPending},
		{"failed", StatusFailed},
		{"completed", StatusCompleted},
		{"", StatusCompleted},
		{"weird", StatusCompleted},
	}
	for _, tc := range cases {
		if got := ParseTransactionStatus(tc.in); got != tc.want {
			t.Fatalf("ParseTransactionStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	if !StatusPending.CanTransitionTo(StatusCompleted) {
		t.Fatalf("pending -> completed must be allowed")
	}
	if !StatusPending.CanTransitionTo(StatusFailed) {
		t.Fatalf("pending -> failed must be allowed")
	}
	if StatusCompleted.CanTransitionTo(StatusPending) {
		t.Fatalf("completed -> pending must be rejected")
	}
	if StatusFailed.CanTransitionTo(StatusCompleted) {
		t.Fatalf("failed -> completed must be rejected")
	}
	if !StatusCompleted.CanTransitionTo(StatusCompleted) {
		t.Fatalf("no-op transition must be allowed")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:        time.Date(2025, 1, 2, 10, 30, 0, 0, time.UTC),
		Description: "Salary Credit",
		Category:    "Salary",
		Type:        Income,
		Amount:      Money{Paise: 4500000},
		Account:     "****1234",
		Status:      StatusCompleted,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Description: "a", Type: Income, Account: "x", Status: StatusCompleted},                                                          // zero date
		{Date: good.Date, Type: Income, Account: "x", Status: StatusCompleted},                                                           // empty description
		{Date: good.Date, Description: "a", Type: TransactionType("magic"), Account: "x", Status: StatusCompleted},                       // bad type
		{Date: good.Date, Description: "a", Type: Income, Amount: Money{Paise: -1}, Account: "x", Status: StatusCompleted},               // negative amount
		{Date: good.Date, Description: "a", Type: Income, Account: "", Status: StatusCompleted},                                          // missing account
		{Date: good.Date, Description: "a", Type: Income, Account: "x", Status: TransactionStatus("done")},                               // bad status
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestAccountValidate(t *testing.T) {
	good := Account{
		Number:   "****1234",
		Name:     "Primary Savings Account",
		Type:     Savings,
		Balance:  Money{Paise: 12545000},
		Currency: DefaultCurrency,
		Status:   AccountActive,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := good
	bad.Number = " "
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for blank account number")
	}
}

func TestSummarizeInvestments(t *testing.T) {
	investments := []Investment{
		{Amount: Money{Paise: 50000000}, Returns: Money{Paise: 2500000}},
		{Amount: Money{Paise: 10000000}, Returns: Money{Paise: 1500000}},
	}
	total, returns, roi := SummarizeInvestments(investments)
	if total.Paise != 60000000 {
		t.Fatalf("total = %d, want 60000000", total.Paise)
	}
	if returns.Paise != 4000000 {
		t.Fatalf("returns = %d, want 4000000", returns.Paise)
	}
	if roi < 6.66 || roi > 6.67 {
		t.Fatalf("roi = %f, want ~6.67", roi)
	}

	total, returns, roi = SummarizeInvestments(nil)
	if total.Paise != 0 || returns.Paise != 0 || roi != 0 {
		t.Fatalf("empty portfolio must summarize to zero")
	}
}

func TestBillOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	pending := Bill{Provider: "State Electricity Board", Amount: Money{Paise: 250000}, Status: BillPending, DueDate: now.AddDate(0, 0, -1)}
	if !pending.Overdue(now) {
		t.Fatalf("pending bill past due date must be overdue")
	}
	paid := pending
	paid.Status = BillPaid
	if paid.Overdue(now) {
		t.Fatalf("paid bill is never overdue")
	}
	future := pending
	future.DueDate = now.AddDate(0, 0, 3)
	if future.Overdue(now) {
		t.Fatalf("bill due in the future is not overdue")
	}
	if d := future.DaysUntilDue(now); d != 3 {
		t.Fatalf("DaysUntilDue = %d, want 3", d)
	}
}
