package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenddesk/loanledger/internal/domain"
	"github.com/lenddesk/loanledger/internal/usecase"
)

// LoanResponse represents a loan in API responses.
type LoanResponse struct {
	ID                  string          `json:"id"`
	Amount              decimal.Decimal `json:"amount"`
	InterestRate        decimal.Decimal `json:"interest_rate"`
	PenaltyRate         decimal.Decimal `json:"penalty_rate"`
	TotalPayable        decimal.Decimal `json:"total_payable"`
	TotalPaid           decimal.Decimal `json:"total_paid"`
	TotalPayablePenalty decimal.Decimal `json:"total_payable_penalty"`
	TotalPaidPenalty    decimal.Decimal `json:"total_paid_penalty"`
	Outstanding         decimal.Decimal `json:"outstanding"`
	Status              string          `json:"status"`
	Duration            time.Time       `json:"duration"`
	UserID              string          `json:"user_id"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// LoanFromDomain converts a domain loan to a response.
func LoanFromDomain(l *domain.Loan) *LoanResponse {
	return &LoanResponse{
		ID:                  l.ID,
		Amount:              l.Amount,
		InterestRate:        l.InterestRate,
		PenaltyRate:         l.PenaltyRate,
		TotalPayable:        l.TotalPayable,
		TotalPaid:           l.TotalPaid,
		TotalPayablePenalty: l.TotalPayablePenalty,
		TotalPaidPenalty:    l.TotalPaidPenalty,
		Outstanding:         l.Outstanding(),
		Status:              string(l.Status),
		Duration:            l.Duration,
		UserID:              l.UserID,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

// LoansFromDomain converts domain loans to responses.
func LoansFromDomain(loans []*domain.Loan) []*LoanResponse {
	result := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		result[i] = LoanFromDomain(l)
	}
	return result
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	DueDate   time.Time       `json:"due_date"`
	LoanID    string          `json:"loan_id"`
	UserID    string          `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:        p.ID,
		Amount:    p.Amount,
		Date:      p.Date,
		DueDate:   p.DueDate,
		LoanID:    p.LoanID,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// ReminderResponse represents a due-window reminder in API responses.
type ReminderResponse struct {
	Loan        *LoanResponse `json:"loan"`
	Username    string        `json:"username"`
	Email       string        `json:"email"`
	LastDueDate time.Time     `json:"last_due_date"`
}

// ReminderFromDomain converts a domain reminder to a response.
func ReminderFromDomain(r *domain.LoanReminder) *ReminderResponse {
	return &ReminderResponse{
		Loan:        LoanFromDomain(&r.Loan),
		Username:    r.Username,
		Email:       r.Email,
		LastDueDate: r.LastPayment.DueDate,
	}
}

// RemindersFromDomain converts domain reminders to responses.
func RemindersFromDomain(reminders []*domain.LoanReminder) []*ReminderResponse {
	result := make([]*ReminderResponse, len(reminders))
	for i, r := range reminders {
		result[i] = ReminderFromDomain(r)
	}
	return result
}

// AuditLogResponse represents an audit log entry in API responses.
type AuditLogResponse struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:          l.ID,
			Action:      string(l.Action),
			Description: l.Description,
			UserID:      l.UserID,
			CreatedAt:   l.CreatedAt,
		}
	}
	return result
}

// NotificationResponse represents a notification in API responses.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationsFromDomain converts domain notifications to responses.
func NotificationsFromDomain(notifications []*domain.Notification) []*NotificationResponse {
	result := make([]*NotificationResponse, len(notifications))
	for i, n := range notifications {
		result[i] = &NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Read:      n.Read,
			UserID:    n.UserID,
			CreatedAt: n.CreatedAt,
		}
	}
	return result
}

// ReconciliationResponse reports one loan's recorded totals against
// the sum of its payment records.
type ReconciliationResponse struct {
	LoanID          string          `json:"loan_id"`
	RecordedTotal   decimal.Decimal `json:"recorded_total"`
	CalculatedTotal decimal.Decimal `json:"calculated_total"`
	Difference      decimal.Decimal `json:"difference"`
	Reconciled      bool            `json:"reconciled"`
	LastChecked     time.Time       `json:"last_checked"`
}

// FromReconciliationResult converts a reconciliation result to a response.
func FromReconciliationResult(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		LoanID:          r.LoanID,
		RecordedTotal:   r.RecordedTotal,
		CalculatedTotal: r.CalculatedTotal,
		Difference:      r.Difference,
		Reconciled:      r.IsReconciled,
		LastChecked:     r.LastChecked,
	}
}

// ConsistencyResponse summarizes a ledger-wide reconciliation sweep.
type ConsistencyResponse struct {
	Status       string                   `json:"status"`
	Consistent   bool                     `json:"consistent"`
	LoansChecked int                      `json:"loans_checked"`
	Mismatches   []ReconciliationResponse `json:"mismatches"`
	CheckedAt    time.Time                `json:"checked_at"`
}

// FromConsistencyReport converts a consistency report to a response.
func FromConsistencyReport(report *usecase.ConsistencyReport) *ConsistencyResponse {
	status := "consistent"
	if !report.Consistent {
		status = "inconsistent"
	}

	mismatches := make([]ReconciliationResponse, len(report.Mismatches))
	for i := range report.Mismatches {
		mismatches[i] = *FromReconciliationResult(&report.Mismatches[i])
	}

	return &ConsistencyResponse{
		Status:       status,
		Consistent:   report.Consistent,
		LoansChecked: report.LoansChecked,
		Mismatches:   mismatches,
		CheckedAt:    report.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
