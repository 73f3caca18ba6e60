package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartOfDay truncates a time to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Overdue reports whether the reference date falls strictly before
// the start of now's calendar day. The reference date is the most
// recent payment's due date, or the loan's creation time when no
// payment exists yet.
func Overdue(ref, now time.Time) bool {
	return ref.Before(StartOfDay(now))
}

// PenaltyAmount computes the penalty owed on a payment. The base is
// the principal portion of the payment, after outstanding penalty has
// been taken out, not the gross amount transferred.
func PenaltyAmount(principalPortion, penaltyRate decimal.Decimal, overdue bool) decimal.Decimal {
	if !overdue {
		return decimal.Zero
	}
	return principalPortion.Mul(penaltyRate).Div(hundred)
}
