package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a single repayment applied to a loan. Payments are
// written once by the ledger and never mutated afterwards.
type Payment struct {
	ID        string
	Amount    decimal.Decimal
	Date      time.Time
	DueDate   time.Time
	LoanID    string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NextDueDate returns the due date of the payment that follows one
// made on the given date: one calendar month later.
func NextDueDate(date time.Time) time.Time {
	return date.AddDate(0, 1, 0)
}
