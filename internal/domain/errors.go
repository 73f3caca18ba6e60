package domain

import "errors"

var (
	// Loan errors
	ErrLoanNotFound    = errors.New("loan not found")
	ErrLoanNotApproved = errors.New("loan is still in pending status")
	ErrLoanAlreadyPaid = errors.New("loan is already paid completely")

	// Payment errors
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentBelowPenalty   = errors.New("payment does not cover outstanding penalty")
	ErrPaymentExceedsPayable = errors.New("payment exceeds remaining payable amount")
	ErrInvalidAmount         = errors.New("amount must be positive")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)

// IsRepaymentRejection reports whether err is one of the repayment
// rejections the ledger records, as opposed to a storage failure that
// merely interrupted the attempt.
func IsRepaymentRejection(err error) bool {
	return errors.Is(err, ErrLoanNotFound) ||
		errors.Is(err, ErrLoanNotApproved) ||
		errors.Is(err, ErrLoanAlreadyPaid) ||
		errors.Is(err, ErrPaymentBelowPenalty) ||
		errors.Is(err, ErrPaymentExceedsPayable)
}
