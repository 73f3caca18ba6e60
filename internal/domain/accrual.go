package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
)

// MonthsBetween returns the whole-calendar-month difference between
// two dates. Days of month are ignored: Jan 31 to Feb 1 is one month.
// The result is negative when to precedes from.
func MonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// TotalPayable computes the full amount owed on a loan at creation:
// principal plus simple interest over the whole months until the
// target payoff date.
//
//	totalPayable = amount + amount * (rate/100) * (months/12)
//
// A duration in the past or the current month yields a zero or
// negative interest term; validating the duration is the caller's
// concern.
func TotalPayable(amount, interestRate decimal.Decimal, duration, now time.Time) decimal.Decimal {
	months := decimal.NewFromInt(int64(MonthsBetween(now, duration)))
	interest := amount.Mul(interestRate).Div(hundred).Mul(months).Div(monthsInYear)
	return amount.Add(interest)
}
