package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lenddesk/loanledger/internal/adapter/http/dto"
	"github.com/lenddesk/loanledger/internal/usecase"
)

// LoanHandler handles loan HTTP requests.
type LoanHandler struct {
	loanUC    *usecase.LoanUseCase
	paymentUC *usecase.PaymentUseCase
	validator *validator.Validate
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanUC *usecase.LoanUseCase, paymentUC *usecase.PaymentUseCase) *LoanHandler {
	return &LoanHandler{
		loanUC:    loanUC,
		paymentUC: paymentUC,
		validator: validator.New(),
	}
}

// Create handles POST /loans.
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	loan, err := h.loanUC.CreateLoan(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create loan", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.LoanFromDomain(loan))
}

// Get handles GET /loans/{id}.
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	loan, err := h.loanUC.GetLoan(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get loan", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoanFromDomain(loan))
}

// List handles GET /loans. An optional user_id query scopes the list
// to one borrower.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListLoansInput{
		UserID: r.URL.Query().Get("user_id"),
		Limit:  parseIntQuery(r, "limit", 0),
		Offset: parseIntQuery(r, "offset", 0),
	}

	loans, err := h.loanUC.ListLoans(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list loans", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoansFromDomain(loans))
}

// Approve handles POST /loans/{id}/approve.
func (h *LoanHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	loan, err := h.loanUC.ApproveLoan(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to approve loan", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoanFromDomain(loan))
}

// Delete handles DELETE /loans/{id}.
func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.loanUC.DeleteLoan(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete loan", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListPayments handles GET /loans/{id}/payments.
func (h *LoanHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payments, err := h.paymentUC.ListPaymentsByLoan(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list payments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentsFromDomain(payments))
}
