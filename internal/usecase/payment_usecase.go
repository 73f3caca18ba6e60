package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenddesk/loanledger/internal/domain"
	"github.com/lenddesk/loanledger/internal/infrastructure/metrics"
)

// PaymentUseCase applies repayments to loans: the central state
// machine of the ledger. Every call re-reads the loan under a row
// lock, so two concurrent repayments against the same loan can never
// both observe the same pre-update totals.
type PaymentUseCase struct {
	txManager   TransactionManager
	loanRepo    LoanRepository
	paymentRepo PaymentRepository
	auditRepo   AuditRepository
	notifier    Notifier
	cache       Cache
	idGen       IDGenerator
	clock       Clock
	metrics     *metrics.Metrics
	retrier     Retrier
}

// NewPaymentUseCase creates a new PaymentUseCase. notifier, cache and
// metrics may be nil; their absence does not change outcomes.
func NewPaymentUseCase(
	txManager TransactionManager,
	loanRepo LoanRepository,
	paymentRepo PaymentRepository,
	auditRepo AuditRepository,
	notifier Notifier,
	cache Cache,
	idGen IDGenerator,
	clock Clock,
	metrics *metrics.Metrics,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:   txManager,
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		auditRepo:   auditRepo,
		notifier:    notifier,
		cache:       cache,
		idGen:       idGen,
		clock:       clock,
		metrics:     metrics,
	}
}

// WithRetrier makes ApplyPayment retry its transaction on transient
// storage failures such as deadlocks. Domain rejections are never
// retried.
func (uc *PaymentUseCase) WithRetrier(retrier Retrier) *PaymentUseCase {
	uc.retrier = retrier
	return uc
}

// ApplyPaymentInput represents one incoming repayment.
type ApplyPaymentInput struct {
	LoanID string
	UserID string
	Amount decimal.Decimal
	Date   time.Time
}

// ApplyPayment validates and applies a repayment against a loan.
//
// Allocation order is fixed: outstanding penalty is cleared first, and
// a payment too small to clear it is rejected whole. New penalty is
// then accrued on the principal portion when the loan's reference due
// date has passed. The loan update and the payment record are written
// atomically; the loan flips to PAID only when both principal and
// penalty are fully settled.
func (uc *PaymentUseCase) ApplyPayment(ctx context.Context, input ApplyPaymentInput) (*domain.Payment, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if uc.retrier == nil {
		return uc.applyPayment(ctx, input)
	}

	var payment *domain.Payment
	err := uc.retrier.Retry(ctx, func() error {
		var err error
		payment, err = uc.applyPayment(ctx, input)
		return err
	})
	return payment, err
}

func (uc *PaymentUseCase) applyPayment(ctx context.Context, input ApplyPaymentInput) (*domain.Payment, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	loan, err := uc.loanRepo.GetByUserForUpdate(txCtx, tx, input.LoanID, input.UserID)
	if err != nil {
		return nil, uc.reject(ctx, input, err)
	}

	if err := loan.AcceptsRepayments(); err != nil {
		return nil, uc.reject(ctx, input, err)
	}

	principal, penaltyPaid, err := loan.Allocate(input.Amount)
	if err != nil {
		return nil, uc.reject(ctx, input, err)
	}

	// The reference date for lateness is the most recent payment's due
	// date, or the loan's creation time for a first payment.
	refDate := loan.CreatedAt
	if dueDate, ok, err := uc.paymentRepo.LatestDueDate(txCtx, tx, loan.ID); err != nil {
		return nil, err
	} else if ok {
		refDate = dueDate
	}

	now := uc.clock.Now()
	newPenalty := domain.PenaltyAmount(principal, loan.PenaltyRate, domain.Overdue(refDate, now))

	newTotalPaid := loan.TotalPaid.Add(principal)
	if newTotalPaid.GreaterThan(loan.TotalPayable) {
		return nil, uc.reject(ctx, input, domain.ErrPaymentExceedsPayable)
	}

	loan.TotalPaid = newTotalPaid
	loan.TotalPayablePenalty = loan.TotalPayablePenalty.Add(newPenalty)
	loan.TotalPaidPenalty = loan.TotalPaidPenalty.Add(penaltyPaid)
	loan.UpdatedAt = now

	settled := domain.Settled(loan.TotalPaid, loan.TotalPayable, loan.TotalPayablePenalty, loan.TotalPaidPenalty)
	if settled {
		loan.Status = domain.LoanStatusPaid
	}

	if err := uc.loanRepo.UpdateTotals(txCtx, tx, loan); err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:        uc.idGen.Generate(),
		Amount:    input.Amount,
		Date:      input.Date,
		DueDate:   domain.NextDueDate(input.Date),
		LoanID:    loan.ID,
		UserID:    loan.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.paymentRepo.Create(txCtx, tx, payment); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	uc.recordSuccess(ctx, loan, payment, newPenalty, settled)

	return payment, nil
}

// reject audits a validation failure and hands the error back
// unchanged. Nothing has been written to the ledger at this point;
// the surrounding transaction is rolled back by the caller's defer.
// Storage failures pass through unaudited, so a retried deadlock does
// not pile up failure entries.
func (uc *PaymentUseCase) reject(ctx context.Context, input ApplyPaymentInput, cause error) error {
	if !domain.IsRepaymentRejection(cause) {
		return cause
	}

	uc.audit(ctx, &domain.AuditLog{
		Action: domain.AuditActionPaymentFailed,
		Description: fmt.Sprintf("Repayment of $%s on loan %s rejected: %s.",
			input.Amount, input.LoanID, cause),
		UserID: input.UserID,
	})

	if uc.metrics != nil {
		uc.metrics.PaymentsRejected.WithLabelValues(cause.Error()).Inc()
	}

	return cause
}

func (uc *PaymentUseCase) recordSuccess(ctx context.Context, loan *domain.Loan, payment *domain.Payment, newPenalty decimal.Decimal, settled bool) {
	uc.audit(ctx, &domain.AuditLog{
		Action: domain.AuditActionPaymentSuccessful,
		Description: fmt.Sprintf("Repayment of $%s applied to loan %s.",
			payment.Amount, loan.ID),
		UserID: loan.UserID,
	})

	if uc.notifier != nil {
		msg := fmt.Sprintf("Your repayment of $%s was received. Next due date: %s.",
			payment.Amount, payment.DueDate.Format("2006-01-02"))
		if settled {
			msg = fmt.Sprintf("Your repayment of $%s was received. The loan is fully settled.",
				payment.Amount)
		}
		uc.notifier.Notify(ctx, loan.UserID, msg)
	}

	uc.invalidateLoanCache(ctx, loan.UserID)

	if uc.metrics != nil {
		uc.metrics.PaymentsApplied.Inc()
		amount, _ := payment.Amount.Float64()
		uc.metrics.PaymentAmount.Observe(amount)
		if newPenalty.IsPositive() {
			penalty, _ := newPenalty.Float64()
			uc.metrics.PenaltyAccrued.Observe(penalty)
		}
		if settled {
			uc.metrics.LoansSettled.Inc()
		}
	}
}

// audit writes an audit entry best-effort. A failure to record must
// not roll back or fail the ledger operation being audited.
func (uc *PaymentUseCase) audit(ctx context.Context, log *domain.AuditLog) {
	if uc.auditRepo == nil {
		return
	}

	log.ID = uc.idGen.Generate()
	log.CreatedAt = uc.clock.Now()
	_ = uc.auditRepo.Create(ctx, log)

	if uc.metrics != nil {
		uc.metrics.AuditLogsCreated.WithLabelValues(string(log.Action)).Inc()
	}
}

func (uc *PaymentUseCase) invalidateLoanCache(ctx context.Context, userID string) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, "loans")
	_ = uc.cache.Delete(ctx, "loans-"+userID)
}

// GetPayment retrieves a payment by ID.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}

// ListPaymentsInput represents input for listing payments.
type ListPaymentsInput struct {
	Limit  int
	Offset int
}

// ListPayments lists payments with pagination.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, input ListPaymentsInput) ([]*domain.Payment, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.paymentRepo.List(ctx, limit, offset)
}

// ListPaymentsByLoan lists a loan's payments ordered by due date.
func (uc *PaymentUseCase) ListPaymentsByLoan(ctx context.Context, loanID string) ([]*domain.Payment, error) {
	return uc.paymentRepo.ListByLoan(ctx, loanID)
}
