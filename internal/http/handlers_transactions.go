package http

import (
	"errors"
	"net/http"
	"sync/atomic"

	"bankdash/internal/core"
	applog "bankdash/internal/log"
	"bankdash/internal/report"
)

// handleTransactions lists transactions newest first, optionally filtered by
// type (?type=income|expense|transfer|all) and truncated by ?limit=.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	txs := report.FilterByType(s.store.Transactions(), sanitizeInput(r.URL.Query().Get("type")))
	if limit := queryInt(r, "limit", 0); limit > 0 && limit < len(txs) {
		txs = txs[:limit]
	}
	NewResponse().JSON(map[string]interface{}{
		"transactions": toTransactionViews(txs),
	}).Write(w)
}

// handleSearch runs a free-text search over transactions and accounts.
// Queries at or below the minimum length return empty result sets rather
// than an error, matching the live-search box behavior.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	query := sanitizeInput(r.URL.Query().Get("q"))
	result := report.Search(s.store.Transactions(), s.store.Accounts(), query, report.DefaultSearchOptions())
	NewResponse().JSON(map[string]interface{}{
		"query":        query,
		"transactions": toTransactionViews(result.Transactions),
		"accounts":     toAccountViews(result.Accounts),
	}).Write(w)
}

// handleTransfer records a transfer between accounts through the reconciler.
// The body carries from, to, amount and optional notes, JSON or form encoded.
func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		s.logger.WarnContext(r.Context(), "Transfer body parse failed", applog.FieldError, err)
		BadRequestError("malformed request body").Write(w)
		return
	}

	from := parser.Get("from")
	to := parser.Get("to")
	notes := parser.Get("notes")
	if from == "" || to == "" {
		UnprocessableEntityError("from and to accounts are required").Write(w)
		return
	}
	if from == to {
		UnprocessableEntityError("cannot transfer to the same account").Write(w)
		return
	}

	amount, err := parser.GetAmount("amount")
	if err != nil || amount.IsZero() || amount.IsNegative() {
		UnprocessableEntityError("invalid amount").Write(w)
		return
	}

	tx, err := s.reconciler.Transfer(from, to, amount, notes)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInsufficientFunds):
			UnprocessableEntityError("insufficient funds").Write(w)
		case errors.Is(err, core.ErrAccountNotFound):
			NotFoundError("account not found").Write(w)
		case errors.Is(err, core.ErrInvalidRecord):
			UnprocessableEntityError(err.Error()).Write(w)
		default:
			sl := applog.NewStructuredLogger(applog.FromContext(r.Context()))
			sl.LogError(r.Context(), "Transfer failed", err, applog.ComponentLedger, applog.OpTransfer,
				applog.NewFields().WithAccount(from))
			InternalServerError("transfer failed").Write(w)
		}
		return
	}

	atomic.AddInt64(&s.appMetrics.transfersRecorded, 1)
	s.invalidateDerived()
	s.persistTransaction(r, tx)

	// The destination leg is internal when we hold the account; push its new
	// balance too.
	if s.balances != nil {
		if dest, lookupErr := s.store.Account(to); lookupErr == nil {
			if err := s.balances.UpdateBalance(r.Context(), dest.Number, dest.Balance); err != nil {
				s.logger.WarnContext(r.Context(), "Backend balance update failed",
					applog.FieldError, err,
					applog.FieldAccount, dest.Number)
			}
		}
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Transfer recorded",
		applog.FieldTransactionID, tx.ID,
		applog.FieldAccount, from,
		applog.FieldAmountPaise, tx.Amount.Paise,
		applog.FieldOperation, applog.OpTransfer)

	NewResponse().Status(http.StatusCreated).JSON(toTransactionView(tx)).Write(w)
}

// persistTransaction writes a reconciled transaction and the resulting
// balance back to the configured backend. Persistence failures are logged and
// retried by the sync pipeline when one is configured; the ledger has already
// committed, so the request does not fail.
func (s *Server) persistTransaction(r *http.Request, tx core.Transaction) {
	ctx := r.Context()
	if s.writer != nil {
		ref, err := s.writer.AppendTransaction(ctx, tx)
		if err != nil {
			s.logger.WarnContext(ctx, "Backend transaction append failed",
				applog.FieldError, err,
				applog.FieldTransactionID, tx.ID)
		} else {
			sl := applog.NewStructuredLogger(applog.FromContext(ctx))
			sl.LogTransactionRecorded(ctx, tx.ID, tx.Account, string(tx.Type), tx.Amount.Paise, ref)
		}
	}
	if s.balances != nil {
		if err := s.balances.UpdateBalance(ctx, tx.Account, tx.Balance); err != nil {
			s.logger.WarnContext(ctx, "Backend balance update failed",
				applog.FieldError, err,
				applog.FieldAccount, tx.Account)
		}
	}
}
