package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lenddesk/loanledger/internal/adapter/http/dto"
	"github.com/lenddesk/loanledger/internal/domain"
	"github.com/lenddesk/loanledger/internal/usecase"
	"github.com/lenddesk/loanledger/internal/usecase/mocks"
)

func newLoanHandlerFixture(now time.Time) (*LoanHandler, *mocks.MockLoanRepository, *mocks.MockPaymentRepository) {
	loanRepo := mocks.NewMockLoanRepository()
	paymentRepo := mocks.NewMockPaymentRepository()
	idGen := mocks.NewMockIDGenerator()
	clock := mocks.NewMockClock(now)

	loanUC := usecase.NewLoanUseCase(loanRepo, nil, nil, nil, idGen, clock, nil)
	paymentUC := usecase.NewPaymentUseCase(
		mocks.NewMockTransactionManager(), loanRepo, paymentRepo, nil,
		nil, nil, idGen, clock, nil,
	)

	return NewLoanHandler(loanUC, paymentUC), loanRepo, paymentRepo
}

var handlerNow = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

func TestLoanHandler_Create_Success(t *testing.T) {
	h, _, _ := newLoanHandlerFixture(handlerNow)

	body, _ := json.Marshal(dto.CreateLoanRequest{
		Amount:       decimal.NewFromInt(1200),
		InterestRate: decimal.NewFromInt(12),
		PenaltyRate:  decimal.NewFromInt(5),
		Duration:     handlerNow.AddDate(1, 0, 0),
		UserID:       "user-1",
	})

	req := httptest.NewRequest(http.MethodPost, "/loans", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.LoanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != string(domain.LoanStatusPending) {
		t.Fatalf("expected PENDING, got %s", resp.Status)
	}
	if !resp.TotalPayable.Equal(decimal.NewFromInt(1344)) {
		t.Fatalf("expected total payable 1344, got %s", resp.TotalPayable)
	}
}

func TestLoanHandler_Create_MissingFields(t *testing.T) {
	h, _, _ := newLoanHandlerFixture(handlerNow)

	req := httptest.NewRequest(http.MethodPost, "/loans", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLoanHandler_Create_InvalidBody(t *testing.T) {
	h, _, _ := newLoanHandlerFixture(handlerNow)

	req := httptest.NewRequest(http.MethodPost, "/loans", bytes.NewReader([]byte(`not json`)))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLoanHandler_Get_NotFound(t *testing.T) {
	h, _, _ := newLoanHandlerFixture(handlerNow)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLoanHandler_Approve_AlreadyApproved(t *testing.T) {
	h, loanRepo, _ := newLoanHandlerFixture(handlerNow)
	loanRepo.Put(&domain.Loan{
		ID:     "loan-1",
		Status: domain.LoanStatusApproved,
		UserID: "user-1",
	})

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/loans/loan-1/approve", nil), "id", "loan-1")
	rec := httptest.NewRecorder()

	h.Approve(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestPaymentHandler_Create_RejectedBelowPenalty(t *testing.T) {
	loanRepo := mocks.NewMockLoanRepository()
	loanRepo.Put(&domain.Loan{
		ID:                  "loan-1",
		Amount:              decimal.NewFromInt(1200),
		TotalPayable:        decimal.NewFromInt(1344),
		TotalPayablePenalty: decimal.NewFromInt(100),
		TotalPaidPenalty:    decimal.NewFromInt(40),
		PenaltyRate:         decimal.NewFromInt(5),
		Status:              domain.LoanStatusApproved,
		UserID:              "user-1",
		CreatedAt:           handlerNow.AddDate(0, -1, 0),
	})

	paymentUC := usecase.NewPaymentUseCase(
		mocks.NewMockTransactionManager(), loanRepo, mocks.NewMockPaymentRepository(), nil,
		nil, nil, mocks.NewMockIDGenerator(), mocks.NewMockClock(handlerNow), nil,
	)
	h := NewPaymentHandler(paymentUC)

	body, _ := json.Marshal(dto.ApplyPaymentRequest{
		LoanID: "loan-1",
		UserID: "user-1",
		Amount: decimal.NewFromInt(50),
	})

	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(contextWithChiRouteContext(r, rctx))
}

func contextWithChiRouteContext(r *http.Request, rctx *chi.Context) context.Context {
	return context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
}
