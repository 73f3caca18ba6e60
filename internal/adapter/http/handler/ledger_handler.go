package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lenddesk/loanledger/internal/adapter/http/dto"
	"github.com/lenddesk/loanledger/internal/usecase"
)

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	reconciliationUC *usecase.ReconciliationUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(reconciliationUC *usecase.ReconciliationUseCase) *LedgerHandler {
	return &LedgerHandler{reconciliationUC: reconciliationUC}
}

// CheckConsistency reconciles every loan against its payment records.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.CheckLedgerConsistency(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	status := http.StatusOK
	if !report.Consistent {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.FromConsistencyReport(report))
}

// ReconcileLoan reconciles a single loan.
func (h *LedgerHandler) ReconcileLoan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.reconciliationUC.ReconcileLoan(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile loan", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FromReconciliationResult(result))
}
