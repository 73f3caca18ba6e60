package usecase

import (
	"context"
	"time"

	"github.com/lenddesk/loanledger/internal/domain"
)

// LoanRepository defines data access for loans.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	// GetByUserForUpdate loads the loan owned by userID with a row
	// lock, serializing concurrent repayments against the same loan.
	GetByUserForUpdate(ctx context.Context, tx Transaction, id, userID string) (*domain.Loan, error)
	// UpdateTotals persists the ledger totals and status computed by a
	// repayment, within the surrounding transaction.
	UpdateTotals(ctx context.Context, tx Transaction, loan *domain.Loan) error
	UpdateStatus(ctx context.Context, id string, status domain.LoanStatus, updatedAt time.Time) (*domain.Loan, error)
	Delete(ctx context.Context, id string) (*domain.Loan, error)
	List(ctx context.Context, userID string, limit, offset int) ([]*domain.Loan, error)
	// FindDueBetween selects APPROVED loans having at least one payment
	// due in [from, to), projected with borrower contact fields and the
	// latest payment by due date.
	FindDueBetween(ctx context.Context, from, to time.Time) ([]*domain.LoanReminder, error)
	// FindOverdue selects APPROVED loans having at least one payment
	// due strictly before the cutoff, same projection.
	FindOverdue(ctx context.Context, before time.Time) ([]*domain.LoanReminder, error)
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Payment, error)
	ListByLoan(ctx context.Context, loanID string) ([]*domain.Payment, error)
	// LatestDueDate returns the most recent due date among the loan's
	// payments, read inside the transaction. ok is false when the loan
	// has no payments yet.
	LatestDueDate(ctx context.Context, tx Transaction, loanID string) (dueDate time.Time, ok bool, err error)
}

// UserRepository defines read access to borrowers.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// NotificationRepository persists notifications for borrowers.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error)
}

// Notifier delivers a message to a user. Implementations are
// fire-and-forget: the ledger never fails an operation because a
// notification could not be delivered.
type Notifier interface {
	Notify(ctx context.Context, userID, message string)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage failures.
// Implementations decide which errors qualify; domain errors are
// always terminal.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for the loan list read path. A nil
// Cache degrades to direct storage reads without changing outcomes.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Clock abstracts time so overdue and accrual decisions are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
