package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lenddesk/loanledger/internal/domain"
	"github.com/lenddesk/loanledger/internal/usecase"
)

const paymentColumns = `
	id, amount, date, due_date, loan_id, user_id, created_at, updated_at
`

// PaymentRepository implements payment persistence on PostgreSQL.
// Payments are insert-only; there is no update path.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create inserts a payment within the surrounding transaction, so the
// record lands atomically with the loan totals it produced.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pgxTx(tx).Exec(ctx, query,
		payment.ID,
		payment.Amount,
		payment.Date,
		payment.DueDate,
		payment.LoanID,
		payment.UserID,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	return err
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	return scanPayment(r.pool.QueryRow(ctx, query, id))
}

// List retrieves payments newest first.
func (r *PaymentRepository) List(ctx context.Context, limit, offset int) ([]*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryPayments(ctx, query, limit, offset)
}

// ListByLoan retrieves a loan's payments ordered by due date.
func (r *PaymentRepository) ListByLoan(ctx context.Context, loanID string) ([]*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE loan_id = $1
		ORDER BY due_date ASC
	`

	return r.queryPayments(ctx, query, loanID)
}

// LatestDueDate returns the most recent due date among the loan's
// payments, read inside the transaction so it observes rows written by
// earlier repayments that already committed. ok is false when the loan
// has no payments yet.
func (r *PaymentRepository) LatestDueDate(ctx context.Context, tx usecase.Transaction, loanID string) (time.Time, bool, error) {
	query := `
		SELECT due_date
		FROM payments
		WHERE loan_id = $1
		ORDER BY due_date DESC
		LIMIT 1
	`

	var dueDate time.Time
	err := pgxTx(tx).QueryRow(ctx, query, loanID).Scan(&dueDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	return dueDate, true, nil
}

func (r *PaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var payment domain.Payment
	err := row.Scan(
		&payment.ID,
		&payment.Amount,
		&payment.Date,
		&payment.DueDate,
		&payment.LoanID,
		&payment.UserID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	return &payment, nil
}
