package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"bankdash/internal/core"
	"bankdash/internal/ledger"
)

// ReminderProcessor turns due bills into dashboard notifications using the
// registered reminder policies.
type ReminderProcessor struct {
	store *ledger.Store
	kinds []string

	mu   sync.Mutex
	last map[string]time.Time // bill id + kind -> last reminder
}

// NewReminderProcessor creates a processor running the given reminder kinds.
// With no kinds it runs "upcoming" and "overdue".
func NewReminderProcessor(store *ledger.Store, kinds ...string) *ReminderProcessor {
	if len(kinds) == 0 {
		kinds = []string{"upcoming", "overdue"}
	}
	return &ReminderProcessor{
		store: store,
		kinds: kinds,
		last:  make(map[string]time.Time),
	}
}

// ProcessDueBills checks every bill against every policy and records a
// notification for each reminder that fires. Returns the number fired.
func (p *ReminderProcessor) ProcessDueBills(ctx context.Context, now time.Time) (int, error) {
	if p.store == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	bills := p.store.Bills()
	fired := 0

	for _, bill := range bills {
		for _, kind := range p.kinds {
			policy, err := GetReminderPolicy(kind)
			if err != nil {
				slog.ErrorContext(ctx, "Unknown reminder kind", "kind", kind, "error", err)
				continue
			}

			key := bill.ID + "/" + kind
			p.mu.Lock()
			lastReminder := p.last[key]
			p.mu.Unlock()

			if !policy.ShouldRemind(bill, lastReminder, now) {
				continue
			}

			title, body, level := policy.Message(bill, now)
			p.store.AddNotification(core.Notification{
				ID:      uuid.NewString(),
				Title:   title,
				Message: body,
				Kind:    level,
				Created: now,
			})

			p.mu.Lock()
			p.last[key] = now
			p.mu.Unlock()
			fired++

			slog.InfoContext(ctx, "Bill reminder fired",
				"bill_id", bill.ID,
				"bill_type", bill.Type,
				"kind", kind)
		}
	}

	return fired, nil
}

// Run processes reminders on the given interval until the context is done.
func (p *ReminderProcessor) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if _, err := p.ProcessDueBills(ctx, time.Now()); err != nil {
		slog.ErrorContext(ctx, "Reminder processing failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := p.ProcessDueBills(ctx, time.Now()); err != nil {
				slog.ErrorContext(ctx, "Reminder processing failed", "error", err)
			}
		}
	}
}
