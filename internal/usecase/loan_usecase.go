package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenddesk/loanledger/internal/domain"
	"github.com/lenddesk/loanledger/internal/infrastructure/metrics"
)

// LoanUseCase handles loan lifecycle operations around the ledger:
// creation with interest accrual, list/read with an optional cache in
// front, and the externally driven approval transition.
type LoanUseCase struct {
	loanRepo  LoanRepository
	userRepo  UserRepository
	auditRepo AuditRepository
	notifier  Notifier
	cache     Cache
	idGen     IDGenerator
	clock     Clock
	metrics   *metrics.Metrics
	cacheTTL  time.Duration
}

// NewLoanUseCase creates a new LoanUseCase. notifier, cache and
// metrics may be nil.
func NewLoanUseCase(
	loanRepo LoanRepository,
	auditRepo AuditRepository,
	notifier Notifier,
	cache Cache,
	idGen IDGenerator,
	clock Clock,
	metrics *metrics.Metrics,
) *LoanUseCase {
	return &LoanUseCase{
		loanRepo:  loanRepo,
		auditRepo: auditRepo,
		notifier:  notifier,
		cache:     cache,
		idGen:     idGen,
		clock:     clock,
		metrics:   metrics,
		cacheTTL:  LoanListCacheTTL,
	}
}

// WithCacheTTL overrides how long cached loan lists stay fresh.
func (uc *LoanUseCase) WithCacheTTL(ttl time.Duration) *LoanUseCase {
	if ttl > 0 {
		uc.cacheTTL = ttl
	}
	return uc
}

// WithUserRepository enables borrower existence checks on loan
// creation. Without it, CreateLoan trusts the caller's user ID.
func (uc *LoanUseCase) WithUserRepository(userRepo UserRepository) *LoanUseCase {
	uc.userRepo = userRepo
	return uc
}

// CreateLoanInput represents input for creating a loan.
type CreateLoanInput struct {
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	PenaltyRate  decimal.Decimal
	Duration     time.Time
	UserID       string
}

// CreateLoan registers a loan application. The total payable amount
// is fixed here, once, from principal, rate and the whole months
// until the payoff date; it never changes afterwards.
func (uc *LoanUseCase) CreateLoan(ctx context.Context, input CreateLoanInput) (*domain.Loan, error) {
	if err := domain.ValidateLoanAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateInterestRate(input.InterestRate); err != nil {
		return nil, err
	}
	if err := domain.ValidatePenaltyRate(input.PenaltyRate); err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	if err := domain.ValidateDuration(input.Duration, now); err != nil {
		return nil, err
	}

	if uc.userRepo != nil {
		if _, err := uc.userRepo.GetByID(ctx, input.UserID); err != nil {
			return nil, err
		}
	}

	loan := &domain.Loan{
		ID:                  uc.idGen.Generate(),
		Amount:              input.Amount,
		InterestRate:        input.InterestRate,
		PenaltyRate:         input.PenaltyRate,
		TotalPayable:        domain.TotalPayable(input.Amount, input.InterestRate, input.Duration, now),
		TotalPaid:           decimal.Zero,
		TotalPayablePenalty: decimal.Zero,
		TotalPaidPenalty:    decimal.Zero,
		Status:              domain.LoanStatusPending,
		Duration:            input.Duration,
		UserID:              input.UserID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := uc.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	uc.audit(ctx, &domain.AuditLog{
		Action:      domain.AuditActionLoanApplied,
		Description: fmt.Sprintf("User %s applied for a loan of $%s.", input.UserID, input.Amount),
		UserID:      input.UserID,
	})

	uc.invalidateCache(ctx, input.UserID)

	if uc.metrics != nil {
		uc.metrics.LoansCreated.Inc()
	}

	return loan, nil
}

// GetLoan retrieves a loan by ID.
func (uc *LoanUseCase) GetLoan(ctx context.Context, id string) (*domain.Loan, error) {
	return uc.loanRepo.GetByID(ctx, id)
}

// ListLoansInput represents input for listing loans.
type ListLoansInput struct {
	UserID string // empty lists loans across all users
	Limit  int
	Offset int
}

// ListLoans lists loans, reading through the cache when one is
// configured. Cache misses and decode failures fall back to storage.
func (uc *LoanUseCase) ListLoans(ctx context.Context, input ListLoansInput) ([]*domain.Loan, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	key := "loans"
	if input.UserID != "" {
		key = "loans-" + input.UserID
	}

	// Only the first page is cached; deeper pages go to storage.
	cacheable := uc.cache != nil && offset == 0

	if cacheable {
		if cached, err := uc.cache.Get(ctx, key); err == nil {
			var loans []*domain.Loan
			if err := json.Unmarshal([]byte(cached), &loans); err == nil {
				return loans, nil
			}
		}
	}

	loans, err := uc.loanRepo.List(ctx, input.UserID, limit, offset)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if encoded, err := json.Marshal(loans); err == nil {
			_ = uc.cache.Set(ctx, key, string(encoded), uc.cacheTTL)
		}
	}

	return loans, nil
}

// ApproveLoan transitions a pending loan to APPROVED. The transition
// is driven from outside the ledger (an underwriting decision); the
// ledger itself only ever moves APPROVED loans to PAID.
func (uc *LoanUseCase) ApproveLoan(ctx context.Context, id string) (*domain.Loan, error) {
	loan, err := uc.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if loan.Status != domain.LoanStatusPending {
		return nil, domain.ErrInvalidStatus
	}

	updated, err := uc.loanRepo.UpdateStatus(ctx, id, domain.LoanStatusApproved, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	uc.audit(ctx, &domain.AuditLog{
		Action:      domain.AuditActionLoanApproved,
		Description: fmt.Sprintf("Loan %s of $%s approved.", loan.ID, loan.Amount),
		UserID:      loan.UserID,
	})

	if uc.notifier != nil {
		uc.notifier.Notify(ctx, loan.UserID,
			fmt.Sprintf("Your loan of $%s has been approved. Total payable: $%s.", loan.Amount, loan.TotalPayable))
	}

	uc.invalidateCache(ctx, loan.UserID)

	if uc.metrics != nil {
		uc.metrics.LoansApproved.Inc()
	}

	return updated, nil
}

// DeleteLoan removes a loan and invalidates cached lists.
func (uc *LoanUseCase) DeleteLoan(ctx context.Context, id string) error {
	loan, err := uc.loanRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	uc.invalidateCache(ctx, loan.UserID)

	return nil
}

func (uc *LoanUseCase) audit(ctx context.Context, log *domain.AuditLog) {
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

func (uc *LoanUseCase) invalidateCache(ctx context.Context, userID string) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, "loans")
	_ = uc.cache.Delete(ctx, "loans-"+userID)
}
