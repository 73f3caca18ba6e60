package domain

import "time"

// LastPayment is the most recent payment projected onto a reminder,
// ordered by due date descending.
type LastPayment struct {
	Date    time.Time
	DueDate time.Time
}

// LoanReminder is the read-side projection handed to the reminder
// scheduler: the loan, the borrower's contact fields, and the latest
// payment that determines the relevant due date.
type LoanReminder struct {
	Loan        Loan
	Username    string
	Email       string
	LastPayment LastPayment
}
