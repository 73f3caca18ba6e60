package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/lenddesk/loanledger/internal/domain"
	"github.com/lenddesk/loanledger/internal/infrastructure/metrics"
	"github.com/lenddesk/loanledger/internal/usecase"
)

// ReminderJob runs the due-window sweep: for each configured horizon
// it notifies borrowers whose next payment falls due that many days
// ahead, then notifies borrowers who are already overdue. The sweep
// is read-only against the ledger; only notifications are written.
type ReminderJob struct {
	reminderUC *usecase.ReminderUseCase
	notifier   usecase.Notifier
	clock      usecase.Clock
	logger     *slog.Logger
	metrics    *metrics.Metrics
	horizons   []int
	cronSpec   string
}

// Config for ReminderJob.
type Config struct {
	ReminderUC *usecase.ReminderUseCase
	Notifier   usecase.Notifier
	Clock      usecase.Clock
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Horizons   []int  // days ahead for upcoming reminders
	CronSpec   string // standard 5-field cron expression
}

// NewReminderJob creates a new ReminderJob.
func NewReminderJob(cfg Config) *ReminderJob {
	if len(cfg.Horizons) == 0 {
		cfg.Horizons = []int{3, 1}
	}
	if cfg.CronSpec == "" {
		cfg.CronSpec = "0 8 * * *"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &ReminderJob{
		reminderUC: cfg.ReminderUC,
		notifier:   cfg.Notifier,
		clock:      cfg.Clock,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		horizons:   cfg.Horizons,
		cronSpec:   cfg.CronSpec,
	}
}

// Start schedules the sweep and blocks until the context is
// cancelled.
func (j *ReminderJob) Start(ctx context.Context) error {
	c := cron.New()

	_, err := c.AddFunc(j.cronSpec, func() {
		j.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder sweep: %w", err)
	}

	c.Start()
	j.logger.Info("reminder scheduler started",
		slog.String("cron", j.cronSpec),
		slog.Any("horizons", j.horizons))

	<-ctx.Done()

	j.logger.Info("reminder scheduler shutting down")
	stopCtx := c.Stop()
	<-stopCtx.Done()

	return ctx.Err()
}

// Run executes one sweep immediately.
func (j *ReminderJob) Run(ctx context.Context) {
	now := j.clock.Now()

	for _, days := range j.horizons {
		window := fmt.Sprintf("upcoming_%dd", days)
		if j.metrics != nil {
			j.metrics.ReminderRuns.WithLabelValues(window).Inc()
		}

		reminders, err := j.reminderUC.UpcomingLoans(ctx, now.AddDate(0, 0, days))
		if err != nil {
			j.logger.Error("upcoming sweep failed",
				slog.Int("days_ahead", days),
				slog.String("error", err.Error()))
			if j.metrics != nil {
				j.metrics.ReminderErrors.WithLabelValues(window).Inc()
			}
			continue
		}

		for _, rem := range reminders {
			j.dispatch(ctx, window, rem, upcomingMessage(rem, days))
		}
	}

	if j.metrics != nil {
		j.metrics.ReminderRuns.WithLabelValues("overdue").Inc()
	}
	overdue, err := j.reminderUC.OverdueLoans(ctx, now)
	if err != nil {
		j.logger.Error("overdue sweep failed", slog.String("error", err.Error()))
		if j.metrics != nil {
			j.metrics.ReminderErrors.WithLabelValues("overdue").Inc()
		}
		return
	}

	for _, rem := range overdue {
		j.dispatch(ctx, "overdue", rem, overdueMessage(rem))
	}
}

func (j *ReminderJob) dispatch(ctx context.Context, window string, rem *domain.LoanReminder, message string) {
	j.notifier.Notify(ctx, rem.Loan.UserID, message)
	if j.metrics != nil {
		j.metrics.RemindersSent.WithLabelValues(window).Inc()
	}

	j.logger.Debug("reminder sent",
		slog.String("loan_id", rem.Loan.ID),
		slog.String("user_id", rem.Loan.UserID),
		slog.String("window", window))
}

func upcomingMessage(rem *domain.LoanReminder, days int) string {
	outstanding := rem.Loan.Outstanding()
	return fmt.Sprintf("Hi %s, your loan payment is due on %s (%d day(s) from now). Outstanding balance: $%s.",
		rem.Username, rem.LastPayment.DueDate.Format("2006-01-02"), days, outstanding)
}

func overdueMessage(rem *domain.LoanReminder) string {
	outstanding := rem.Loan.Outstanding()
	return fmt.Sprintf("Hi %s, your loan payment was due on %s and is now overdue. Outstanding balance: $%s. Late penalties apply to further delays.",
		rem.Username, rem.LastPayment.DueDate.Format("2006-01-02"), outstanding)
}
