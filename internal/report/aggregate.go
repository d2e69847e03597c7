// Package report computes derived views over the transaction set: period
// buckets for charting and predicate/text filtering. Everything here is a pure
// function of its inputs; nothing is cached across calls.
package report

import (
	"fmt"
	"time"

	"bankdash/internal/core"
)

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

type Period string

func (p Period) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// DefaultWindows returns the trailing window count the dashboard chart uses
// for each period: 7 daily, 4 weekly, 12 monthly buckets.
func DefaultWindows(p Period) int {
	switch p {
	case PeriodDay:
		return 7
	case PeriodWeek:
		return 4
	case PeriodMonth:
		return 12
	default:
		return 0
	}
}

// Aggregate buckets transactions into `windows` trailing periods ending at
// `now` and sums income and expense per bucket. Buckets are half-open
// [Start, End) and returned oldest first, labels always populated even when
// no transaction falls inside.
//
// Day buckets are calendar-day aligned in now's location. Week buckets are
// rolling 7-day windows anchored on the end of the current day, not calendar
// weeks. Month buckets are calendar year+month aligned.
//
// Transactions with a zero (unparseable) date and transfer-typed transactions
// are skipped; a bad record never fails the aggregation.
func Aggregate(txs []core.Transaction, period Period, windows int, now time.Time) ([]core.PeriodBucket, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("period %q: %w", period, core.ErrInvalidRecord)
	}
	if windows <= 0 {
		windows = DefaultWindows(period)
	}

	buckets := make([]core.PeriodBucket, 0, windows)
	switch period {
	case PeriodDay:
		for i := windows - 1; i >= 0; i-- {
			day := startOfDay(now).AddDate(0, 0, -i)
			buckets = append(buckets, core.PeriodBucket{
				Label: day.Format("2 Jan"),
				Start: day,
				End:   day.AddDate(0, 0, 1),
			})
		}
	case PeriodWeek:
		// Anchor the newest window on the end of the current day so a
		// transaction recorded later today still lands in it.
		lastEnd := startOfDay(now).AddDate(0, 0, 1)
		for i := windows - 1; i >= 0; i-- {
			end := lastEnd.AddDate(0, 0, -7*i)
			buckets = append(buckets, core.PeriodBucket{
				Label: fmt.Sprintf("Week %d", windows-i),
				Start: end.AddDate(0, 0, -7),
				End:   end,
			})
		}
	case PeriodMonth:
		for i := windows - 1; i >= 0; i-- {
			start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
			buckets = append(buckets, core.PeriodBucket{
				Label: start.Format("Jan 2006"),
				Start: start,
				End:   start.AddDate(0, 1, 0),
			})
		}
	}

	for _, tx := range txs {
		if tx.Date.IsZero() {
			continue // unparseable date, excluded silently
		}
		switch tx.Type {
		case core.Income, core.Expense:
		default:
			continue
		}
		for i := range buckets {
			if tx.Date.Before(buckets[i].Start) || !tx.Date.Before(buckets[i].End) {
				continue
			}
			if tx.Type == core.Income {
				buckets[i].Income = buckets[i].Income.Add(tx.Amount)
			} else {
				buckets[i].Expense = buckets[i].Expense.Add(tx.Amount)
			}
			break
		}
	}

	for i := range buckets {
		buckets[i].Net = buckets[i].Income.Sub(buckets[i].Expense)
	}
	return buckets, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
