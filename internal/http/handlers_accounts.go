package http

import (
	"errors"
	"net/http"

	"bankdash/internal/core"
	applog "bankdash/internal/log"
)

// handleAccounts lists every account in the ledger.
func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	NewResponse().JSON(map[string]interface{}{
		"accounts": toAccountViews(s.store.Accounts()),
	}).Write(w)
}

// handleAccountByNumber serves a single account looked up by its number.
func (s *Server) handleAccountByNumber(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	number, _ := pathSuffix(r.URL.Path, "/api/accounts/")
	if number == "" {
		BadRequestError("account number required").Write(w)
		return
	}

	account, err := s.store.Account(number)
	if err != nil {
		if errors.Is(err, core.ErrAccountNotFound) {
			NotFoundError("account not found").Write(w)
			return
		}
		s.logger.ErrorContext(r.Context(), "Account lookup failed",
			applog.FieldError, err,
			applog.FieldAccount, number)
		InternalServerError("account lookup failed").Write(w)
		return
	}
	NewResponse().JSON(toAccountView(account)).Write(w)
}
