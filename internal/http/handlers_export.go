package http

import (
	"fmt"
	"net/http"
	"time"

	"bankdash/internal/export"
	applog "bankdash/internal/log"
)

// handleExportCSV streams the full transaction history as a CSV download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	body := export.TransactionsCSV(s.store.Transactions())
	filename := fmt.Sprintf("transactions_%s.csv", time.Now().Format("2006-01-02"))
	NewResponse().
		Header("Content-Disposition", `attachment; filename="`+filename+`"`).
		Body("text/csv; charset=utf-8", []byte(body)).
		Write(w)
}

// handleExportJSON serves a full backup of the ledger snapshot.
func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	body, err := export.SnapshotJSON(s.store.Snapshot(), time.Now())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Backup serialization failed",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpExport)
		InternalServerError("backup serialization failed").Write(w)
		return
	}

	filename := fmt.Sprintf("bankdash_backup_%s.json", time.Now().Format("2006-01-02"))
	NewResponse().
		Header("Content-Disposition", `attachment; filename="`+filename+`"`).
		Body("application/json; charset=utf-8", body).
		Write(w)
}
