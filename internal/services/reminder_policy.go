// Package services provides business logic and orchestration services.
//
// This file implements the Strategy Pattern for bill reminder checking. Each
// reminder kind (upcoming, due today, overdue) has its own policy that
// encapsulates the logic for deciding whether a reminder should fire.
package services

import (
	"fmt"
	"time"

	"bankdash/internal/core"
)

// ReminderPolicy is the strategy interface for bill reminder checks.
type ReminderPolicy interface {
	// ShouldRemind returns true if a reminder should fire for the bill,
	// given when the last reminder fired and the current time.
	ShouldRemind(bill core.Bill, lastReminder, now time.Time) bool

	// Message renders the notification text for the bill.
	Message(bill core.Bill, now time.Time) (title, body, kind string)
}

// UpcomingPolicy fires once per day while a pending bill is within LeadDays
// of its due date.
type UpcomingPolicy struct {
	LeadDays int
}

func (p UpcomingPolicy) ShouldRemind(bill core.Bill, lastReminder, now time.Time) bool {
	if bill.Status != core.BillPending || bill.Overdue(now) {
		return false
	}
	days := bill.DaysUntilDue(now)
	if days > p.LeadDays {
		return false
	}
	return !sameDay(lastReminder, now)
}

func (p UpcomingPolicy) Message(bill core.Bill, now time.Time) (string, string, string) {
	title := fmt.Sprintf("%s bill due soon", bill.Type)
	body := fmt.Sprintf("%s of %s is due on %s", bill.Type, bill.Amount, bill.DueDate.Format("02 Jan 2006"))
	return title, body, "warning"
}

// OverduePolicy fires once per day for pending bills past their due date.
type OverduePolicy struct{}

func (OverduePolicy) ShouldRemind(bill core.Bill, lastReminder, now time.Time) bool {
	if !bill.Overdue(now) {
		return false
	}
	return !sameDay(lastReminder, now)
}

func (OverduePolicy) Message(bill core.Bill, now time.Time) (string, string, string) {
	title := fmt.Sprintf("%s bill overdue", bill.Type)
	body := fmt.Sprintf("%s of %s was due on %s", bill.Type, bill.Amount, bill.DueDate.Format("02 Jan 2006"))
	return title, body, "error"
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// reminderStrategies maps reminder kinds to their policies. The registry
// enables O(1) lookup and easy extension for new reminder kinds.
var reminderStrategies = map[string]ReminderPolicy{
	"upcoming": UpcomingPolicy{LeadDays: 3},
	"overdue":  OverduePolicy{},
}

// GetReminderPolicy returns the policy registered for a reminder kind.
func GetReminderPolicy(kind string) (ReminderPolicy, error) {
	policy, ok := reminderStrategies[kind]
	if !ok {
		return nil, fmt.Errorf("unknown reminder kind: %s", kind)
	}
	return policy, nil
}

// RegisterReminderPolicy allows registering custom policies for new kinds.
func RegisterReminderPolicy(kind string, policy ReminderPolicy) {
	reminderStrategies[kind] = policy
}
