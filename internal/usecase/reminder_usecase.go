package usecase

import (
	"context"
	"time"

	"github.com/lenddesk/loanledger/internal/domain"
)

// ReminderUseCase serves the due-window read queries the reminder
// scheduler drives. Both queries only consider APPROVED loans and
// have no side effects.
type ReminderUseCase struct {
	loanRepo LoanRepository
}

// NewReminderUseCase creates a new ReminderUseCase.
func NewReminderUseCase(loanRepo LoanRepository) *ReminderUseCase {
	return &ReminderUseCase{loanRepo: loanRepo}
}

// UpcomingLoans returns loans with a payment due on the target
// calendar day: due date within [startOfDay(target), +24h).
func (uc *ReminderUseCase) UpcomingLoans(ctx context.Context, targetDate time.Time) ([]*domain.LoanReminder, error) {
	from := domain.StartOfDay(targetDate)
	to := from.AddDate(0, 0, 1)

	return uc.loanRepo.FindDueBetween(ctx, from, to)
}

// OverdueLoans returns loans with a payment due strictly before the
// start of now's calendar day.
func (uc *ReminderUseCase) OverdueLoans(ctx context.Context, now time.Time) ([]*domain.LoanReminder, error) {
	return uc.loanRepo.FindOverdue(ctx, domain.StartOfDay(now))
}
