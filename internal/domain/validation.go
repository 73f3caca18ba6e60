package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidInterestRate = errors.New("invalid interest rate")
	ErrInvalidPenaltyRate  = errors.New("invalid penalty rate")
	ErrAmountTooLarge      = errors.New("amount exceeds maximum allowed")
	ErrInvalidDuration     = errors.New("invalid loan duration")
	ErrInvalidStatus       = errors.New("invalid loan status")
)

// Validation constants
const (
	MaxLoanAmount   = "1000000000" // 1 billion
	MaxInterestRate = "100"
	MaxPenaltyRate  = "100"
)

// ValidateLoanAmount validates a loan principal.
func ValidateLoanAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxLoanAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxLoanAmount)
	}

	return nil
}

// ValidateInterestRate validates an annual interest rate percentage.
func ValidateInterestRate(rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: rate must be positive", ErrInvalidInterestRate)
	}

	maxRate, _ := decimal.NewFromString(MaxInterestRate)
	if rate.GreaterThan(maxRate) {
		return fmt.Errorf("%w: maximum rate is %s%%", ErrInvalidInterestRate, MaxInterestRate)
	}

	return nil
}

// ValidatePenaltyRate validates a penalty rate percentage. Zero is
// allowed: a loan may carry no late-payment penalty at all.
func ValidatePenaltyRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return fmt.Errorf("%w: rate cannot be negative", ErrInvalidPenaltyRate)
	}

	maxRate, _ := decimal.NewFromString(MaxPenaltyRate)
	if rate.GreaterThan(maxRate) {
		return fmt.Errorf("%w: maximum rate is %s%%", ErrInvalidPenaltyRate, MaxPenaltyRate)
	}

	return nil
}

// ValidateDuration validates the target payoff date of a new loan.
func ValidateDuration(duration, now time.Time) error {
	if MonthsBetween(now, duration) <= 0 {
		return fmt.Errorf("%w: payoff date must be at least a month away", ErrInvalidDuration)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
