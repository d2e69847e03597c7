package http

import (
	"net/http"
	"time"

	"bankdash/internal/core"
	applog "bankdash/internal/log"
	"bankdash/internal/report"
)

// Chart periods as the client selects them. Each maps to a bucket granularity
// and window count one level below its name: a "week" chart shows seven
// daily buckets, a "month" chart four weekly ones, a "year" chart twelve
// monthly ones.
const (
	chartPeriodWeek  = "week"
	chartPeriodMonth = "month"
	chartPeriodYear  = "year"
)

const dashboardCacheKey = "dashboard"

func chartPlan(period string) (report.Period, int, bool) {
	switch period {
	case chartPeriodWeek:
		return report.PeriodDay, 7, true
	case chartPeriodMonth:
		return report.PeriodWeek, 4, true
	case chartPeriodYear:
		return report.PeriodMonth, 12, true
	}
	return "", 0, false
}

// handleChart serves income/expense buckets for the dashboard chart. Results
// are cached per period until a write invalidates them.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	period := sanitizeInput(r.URL.Query().Get("period"))
	if period == "" {
		period = chartPeriodWeek
	}
	granularity, windows, ok := chartPlan(period)
	if !ok {
		BadRequestError("period must be week, month or year").Write(w)
		return
	}

	buckets, found := s.chartCache.Get(period)
	s.recordCacheHit(found)
	if !found {
		var err error
		buckets, err = report.Aggregate(s.store.Transactions(), granularity, windows, time.Now())
		if err != nil {
			s.logger.ErrorContext(r.Context(), "Chart aggregation failed",
				applog.FieldError, err,
				applog.FieldPeriod, period,
				applog.FieldOperation, applog.OpAggregate)
			InternalServerError("aggregation failed").Write(w)
			return
		}
		s.chartCache.Set(period, buckets)
	}

	NewResponse().JSON(map[string]interface{}{
		"period":  period,
		"buckets": toBucketViews(buckets),
	}).Write(w)
}

// handleDashboard serves the landing screen payload: balance cards, recent
// activity and the net worth summary. Cached briefly since every page load
// hits it.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	view, found := s.dashboardCache.Get(dashboardCacheKey)
	s.recordCacheHit(found)
	if !found {
		view = s.buildDashboard()
		s.dashboardCache.Set(dashboardCacheKey, view)
	}
	NewResponse().JSON(view).Write(w)
}

func (s *Server) buildDashboard() dashboardView {
	accounts := s.store.Accounts()
	var total core.Money
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}

	recent := s.store.Transactions()
	if len(recent) > 5 {
		recent = recent[:5]
	}

	portfolio := s.store.Portfolio()
	return dashboardView{
		TotalBalance:       total.String(),
		TotalBalancePaise:  total.Paise,
		Accounts:           toAccountViews(accounts),
		RecentTransactions: toTransactionViews(recent),
		NetWorth:           portfolio.NetWorth.String(),
		TotalAssets:        portfolio.TotalAssets.String(),
		TotalLiabilities:   portfolio.TotalLiabilities.String(),
		UnreadAlerts:       s.store.UnreadNotifications(),
	}
}
