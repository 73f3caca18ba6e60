package domain

import "time"

// AuditLog records a financially significant action so disputes can
// be reconstructed even when the ledger itself was not mutated.
type AuditLog struct {
	ID          string
	Action      AuditAction
	Description string
	UserID      string
	CreatedAt   time.Time
}

// AuditAction names the auditable actions the ledger emits.
type AuditAction string

const (
	AuditActionLoanApplied       AuditAction = "LOAN_APPLIED"
	AuditActionLoanApproved      AuditAction = "LOAN_APPROVED"
	AuditActionPaymentSuccessful AuditAction = "PAYMENT_SUCCESSFUL"
	AuditActionPaymentFailed     AuditAction = "PAYMENT_FAILED"
)

// AuditFilter defines filters for querying audit logs.
type AuditFilter struct {
	UserID string
	Action AuditAction
	Limit  int
	Offset int
}
