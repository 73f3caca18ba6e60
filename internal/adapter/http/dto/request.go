package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenddesk/loanledger/internal/usecase"
)

// CreateLoanRequest represents a loan application.
type CreateLoanRequest struct {
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	InterestRate decimal.Decimal `json:"interest_rate" validate:"required"`
	PenaltyRate  decimal.Decimal `json:"penalty_rate"`
	Duration     time.Time       `json:"duration" validate:"required"`
	UserID       string          `json:"user_id" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateLoanRequest) ToUseCaseInput() usecase.CreateLoanInput {
	return usecase.CreateLoanInput{
		Amount:       r.Amount,
		InterestRate: r.InterestRate,
		PenaltyRate:  r.PenaltyRate,
		Duration:     r.Duration,
		UserID:       r.UserID,
	}
}

// ApplyPaymentRequest represents a repayment against a loan.
type ApplyPaymentRequest struct {
	LoanID string          `json:"loan_id" validate:"required"`
	UserID string          `json:"user_id" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Date   *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input. The payment date defaults
// to now when the request omits it.
func (r *ApplyPaymentRequest) ToUseCaseInput(now time.Time) usecase.ApplyPaymentInput {
	date := now
	if r.Date != nil {
		date = *r.Date
	}

	return usecase.ApplyPaymentInput{
		LoanID: r.LoanID,
		UserID: r.UserID,
		Amount: r.Amount,
		Date:   date,
	}
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
