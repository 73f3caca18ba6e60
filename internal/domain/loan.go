package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "PENDING"
	LoanStatusApproved LoanStatus = "APPROVED"
	LoanStatusPaid     LoanStatus = "PAID"
)

// IsValid reports whether the status is a known loan status.
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusPending, LoanStatusApproved, LoanStatusPaid:
		return true
	}
	return false
}

// Loan represents a loan issued to a borrower together with its
// running ledger totals. TotalPayable is fixed at creation; the four
// totals only ever grow.
type Loan struct {
	ID                  string
	Amount              decimal.Decimal
	InterestRate        decimal.Decimal
	PenaltyRate         decimal.Decimal
	TotalPayable        decimal.Decimal
	TotalPaid           decimal.Decimal
	TotalPayablePenalty decimal.Decimal
	TotalPaidPenalty    decimal.Decimal
	Status              LoanStatus
	Duration            time.Time
	UserID              string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RemainingPenalty returns the penalty accrued but not yet paid.
func (l *Loan) RemainingPenalty() decimal.Decimal {
	return l.TotalPayablePenalty.Sub(l.TotalPaidPenalty)
}

// Outstanding returns the principal amount still owed.
func (l *Loan) Outstanding() decimal.Decimal {
	return l.TotalPayable.Sub(l.TotalPaid)
}

// AcceptsRepayments checks whether the loan is in a state that can
// take a payment. Only APPROVED loans accept repayments.
func (l *Loan) AcceptsRepayments() error {
	switch l.Status {
	case LoanStatusPending:
		return ErrLoanNotApproved
	case LoanStatusPaid:
		return ErrLoanAlreadyPaid
	}
	return nil
}

// Allocate splits an incoming payment between the outstanding penalty
// and the principal. Outstanding penalty is cleared first; a payment
// that cannot exceed it is rejected outright so nothing is ever
// credited toward principal while penalty remains.
func (l *Loan) Allocate(amount decimal.Decimal) (principal, penaltyPaid decimal.Decimal, err error) {
	remaining := l.RemainingPenalty()
	if remaining.IsPositive() {
		if amount.LessThanOrEqual(remaining) {
			return decimal.Zero, decimal.Zero, ErrPaymentBelowPenalty
		}
		return amount.Sub(remaining), remaining, nil
	}
	return amount, decimal.Zero, nil
}

// Settled reports whether the given totals represent a fully repaid
// loan. Totals are exact decimals, so equality is well-defined.
func Settled(totalPaid, totalPayable, payablePenalty, paidPenalty decimal.Decimal) bool {
	return totalPaid.Equal(totalPayable) && payablePenalty.Equal(paidPenalty)
}
