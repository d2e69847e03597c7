package http

import (
	"net/http"
	"time"

	"bankdash/internal/core"
)

// handleBills lists bill reminders, flagged with dueness relative to now.
func (s *Server) handleBills(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	NewResponse().JSON(map[string]interface{}{
		"bills": toBillViews(s.store.Bills(), time.Now()),
	}).Write(w)
}

// handleInvestments lists holdings plus the invested/returns totals.
func (s *Server) handleInvestments(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	investments := s.store.Investments()
	total, returns, roi := core.SummarizeInvestments(investments)
	NewResponse().JSON(map[string]interface{}{
		"investments":   toInvestmentViews(investments),
		"totalInvested": total.String(),
		"totalReturns":  returns.String(),
		"averageROI":    roi,
	}).Write(w)
}

// handleCards lists linked cards.
func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	NewResponse().JSON(map[string]interface{}{
		"cards": toCardViews(s.store.Cards()),
	}).Write(w)
}
