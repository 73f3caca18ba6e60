package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lenddesk/loanledger/internal/domain"
	"github.com/lenddesk/loanledger/internal/usecase"
)

const loanColumns = `
	id, amount, interest_rate, penalty_rate,
	total_payable, total_paid, total_payable_penalty, total_paid_penalty,
	status, duration, user_id, created_at, updated_at
`

// LoanRepository implements loan persistence on PostgreSQL.
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new loan repository.
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

// Create inserts a new loan.
func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		loan.ID,
		loan.Amount,
		loan.InterestRate,
		loan.PenaltyRate,
		loan.TotalPayable,
		loan.TotalPaid,
		loan.TotalPayablePenalty,
		loan.TotalPaidPenalty,
		loan.Status,
		loan.Duration,
		loan.UserID,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

// GetByID retrieves a loan by ID.
func (r *LoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	return scanLoan(r.pool.QueryRow(ctx, query, id))
}

// GetByUserForUpdate loads the loan owned by userID with a row lock.
// Concurrent repayments against the same loan queue behind the lock
// for the remainder of the transaction.
func (r *LoanRepository) GetByUserForUpdate(ctx context.Context, tx usecase.Transaction, id, userID string) (*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`

	return scanLoan(pgxTx(tx).QueryRow(ctx, query, id, userID))
}

// UpdateTotals persists the running totals and status computed by a
// repayment, within the surrounding transaction.
func (r *LoanRepository) UpdateTotals(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error {
	query := `
		UPDATE loans
		SET total_paid = $2,
		    total_payable_penalty = $3,
		    total_paid_penalty = $4,
		    status = $5,
		    updated_at = $6
		WHERE id = $1
	`

	tag, err := pgxTx(tx).Exec(ctx, query,
		loan.ID,
		loan.TotalPaid,
		loan.TotalPayablePenalty,
		loan.TotalPaidPenalty,
		loan.Status,
		loan.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}

	return nil
}

// UpdateStatus transitions a loan's status and returns the updated row.
func (r *LoanRepository) UpdateStatus(ctx context.Context, id string, status domain.LoanStatus, updatedAt time.Time) (*domain.Loan, error) {
	query := `
		UPDATE loans
		SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + loanColumns

	return scanLoan(r.pool.QueryRow(ctx, query, id, status, updatedAt))
}

// Delete removes a loan and returns the deleted row.
func (r *LoanRepository) Delete(ctx context.Context, id string) (*domain.Loan, error) {
	query := `DELETE FROM loans WHERE id = $1 RETURNING ` + loanColumns

	return scanLoan(r.pool.QueryRow(ctx, query, id))
}

// List retrieves loans newest first, optionally scoped to one user.
func (r *LoanRepository) List(ctx context.Context, userID string, limit, offset int) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans`
	args := []any{}

	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}

	query += ` ORDER BY created_at DESC`
	query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []*domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}

	return loans, rows.Err()
}

// reminderQuery projects APPROVED loans together with borrower
// contact fields and each loan's latest payment by due date. Window
// membership is decided by an EXISTS clause appended per query: a
// loan qualifies when any of its payments is due in the window, so
// loans without payments never qualify. The lateral join only shapes
// the projection.
const reminderQuery = `
	SELECT l.id, l.amount, l.interest_rate, l.penalty_rate,
	       l.total_payable, l.total_paid, l.total_payable_penalty, l.total_paid_penalty,
	       l.status, l.duration, l.user_id, l.created_at, l.updated_at,
	       u.username, u.email,
	       lp.date, lp.due_date
	FROM loans l
	JOIN users u ON u.id = l.user_id
	JOIN LATERAL (
		SELECT p.date, p.due_date
		FROM payments p
		WHERE p.loan_id = l.id
		ORDER BY p.due_date DESC
		LIMIT 1
	) lp ON true
	WHERE l.status = 'APPROVED'
`

// FindDueBetween selects approved loans having at least one payment
// due in [from, to).
func (r *LoanRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]*domain.LoanReminder, error) {
	query := reminderQuery + `
		AND EXISTS (
			SELECT 1 FROM payments p
			WHERE p.loan_id = l.id AND p.due_date >= $1 AND p.due_date < $2
		)
	`

	return r.queryReminders(ctx, query, from, to)
}

// FindOverdue selects approved loans having at least one payment due
// strictly before the cutoff.
func (r *LoanRepository) FindOverdue(ctx context.Context, before time.Time) ([]*domain.LoanReminder, error) {
	query := reminderQuery + `
		AND EXISTS (
			SELECT 1 FROM payments p
			WHERE p.loan_id = l.id AND p.due_date < $1
		)
	`

	return r.queryReminders(ctx, query, before)
}

func (r *LoanRepository) queryReminders(ctx context.Context, query string, args ...any) ([]*domain.LoanReminder, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*domain.LoanReminder
	for rows.Next() {
		var rem domain.LoanReminder

		err := rows.Scan(
			&rem.Loan.ID,
			&rem.Loan.Amount,
			&rem.Loan.InterestRate,
			&rem.Loan.PenaltyRate,
			&rem.Loan.TotalPayable,
			&rem.Loan.TotalPaid,
			&rem.Loan.TotalPayablePenalty,
			&rem.Loan.TotalPaidPenalty,
			&rem.Loan.Status,
			&rem.Loan.Duration,
			&rem.Loan.UserID,
			&rem.Loan.CreatedAt,
			&rem.Loan.UpdatedAt,
			&rem.Username,
			&rem.Email,
			&rem.LastPayment.Date,
			&rem.LastPayment.DueDate,
		)
		if err != nil {
			return nil, err
		}

		reminders = append(reminders, &rem)
	}

	return reminders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoan(row rowScanner) (*domain.Loan, error) {
	var loan domain.Loan
	err := row.Scan(
		&loan.ID,
		&loan.Amount,
		&loan.InterestRate,
		&loan.PenaltyRate,
		&loan.TotalPayable,
		&loan.TotalPaid,
		&loan.TotalPayablePenalty,
		&loan.TotalPaidPenalty,
		&loan.Status,
		&loan.Duration,
		&loan.UserID,
		&loan.CreatedAt,
		&loan.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLoanNotFound
	}
	if err != nil {
		return nil, err
	}

	return &loan, nil
}
