package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	postgresrepo "github.com/lenddesk/loanledger/internal/adapter/repository/postgres"
	"github.com/lenddesk/loanledger/internal/domain"
	"github.com/lenddesk/loanledger/internal/usecase"
	"github.com/lenddesk/loanledger/tests/testutil"
)

func seedLoan(ctx context.Context, t *testing.T, db *testutil.TestDB, userID string, status domain.LoanStatus) *domain.Loan {
	t.Helper()

	now := time.Now().UTC()
	loan := &domain.Loan{
		ID:                  testutil.GenerateID(),
		Amount:              decimal.NewFromInt(1200),
		InterestRate:        decimal.NewFromInt(12),
		PenaltyRate:         decimal.NewFromInt(5),
		TotalPayable:        decimal.NewFromInt(1344),
		TotalPaid:           decimal.Zero,
		TotalPayablePenalty: decimal.Zero,
		TotalPaidPenalty:    decimal.Zero,
		Status:              status,
		Duration:            now.AddDate(1, 0, 0),
		UserID:              userID,
		CreatedAt:           now.AddDate(0, 0, -1),
		UpdatedAt:           now,
	}

	require.NoError(t, postgresrepo.NewLoanRepository(db.Pool).Create(ctx, loan))
	return loan
}

func seedPayment(ctx context.Context, t *testing.T, db *testutil.TestDB, loan *domain.Loan, dueDate time.Time) {
	t.Helper()

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO payments (id, amount, date, due_date, loan_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, testutil.GenerateID(), decimal.NewFromInt(112), dueDate.AddDate(0, -1, 0), dueDate, loan.ID, loan.UserID)
	require.NoError(t, err)
}

func reminderLoanIDs(reminders []*domain.LoanReminder) []string {
	ids := make([]string, 0, len(reminders))
	for _, rem := range reminders {
		ids = append(ids, rem.Loan.ID)
	}
	return ids
}

// Due-window membership: a loan qualifies when any of its payments is
// due in the window, not just its latest one, and loans without
// payments never qualify.
func TestDueWindowMembership(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	reminderUC := usecase.NewReminderUseCase(postgresrepo.NewLoanRepository(testDB.Pool))

	now := time.Now().UTC()
	today := domain.StartOfDay(now)

	alice := testDB.CreateTestUser(ctx, "alice")
	bob := testDB.CreateTestUser(ctx, "bob")
	carol := testDB.CreateTestUser(ctx, "carol")
	dave := testDB.CreateTestUser(ctx, "dave")

	// Due in three days.
	upcomingLoan := seedLoan(ctx, t, testDB, alice.ID, domain.LoanStatusApproved)
	seedPayment(ctx, t, testDB, upcomingLoan, today.AddDate(0, 0, 3).Add(10*time.Hour))

	// An older payment is past due while the latest is a month out.
	lapsedLoan := seedLoan(ctx, t, testDB, bob.ID, domain.LoanStatusApproved)
	seedPayment(ctx, t, testDB, lapsedLoan, today.AddDate(0, 0, -5))
	seedPayment(ctx, t, testDB, lapsedLoan, today.AddDate(0, 1, 0))

	// Approved but never repaid: no due date exists yet.
	freshLoan := seedLoan(ctx, t, testDB, carol.ID, domain.LoanStatusApproved)

	// Pending loans stay out of reminders regardless of payments.
	pendingLoan := seedLoan(ctx, t, testDB, dave.ID, domain.LoanStatusPending)
	seedPayment(ctx, t, testDB, pendingLoan, today.AddDate(0, 0, 3).Add(10*time.Hour))

	t.Run("upcoming on the due day", func(t *testing.T) {
		reminders, err := reminderUC.UpcomingLoans(ctx, now.AddDate(0, 0, 3))
		require.NoError(t, err)
		require.Equal(t, []string{upcomingLoan.ID}, reminderLoanIDs(reminders))
		require.Equal(t, alice.Username, reminders[0].Username)
	})

	t.Run("upcoming misses the day after", func(t *testing.T) {
		reminders, err := reminderUC.UpcomingLoans(ctx, now.AddDate(0, 0, 4))
		require.NoError(t, err)
		require.Empty(t, reminderLoanIDs(reminders))
	})

	t.Run("overdue via an older payment", func(t *testing.T) {
		reminders, err := reminderUC.OverdueLoans(ctx, now)
		require.NoError(t, err)
		require.Equal(t, []string{lapsedLoan.ID}, reminderLoanIDs(reminders))

		// The projection still carries the latest payment by due date.
		require.True(t, reminders[0].LastPayment.DueDate.After(now),
			"latest due date %v, want the future installment", reminders[0].LastPayment.DueDate)
	})

	t.Run("payment-less loan is never due", func(t *testing.T) {
		upcoming, err := reminderUC.UpcomingLoans(ctx, now)
		require.NoError(t, err)
		require.NotContains(t, reminderLoanIDs(upcoming), freshLoan.ID)

		overdue, err := reminderUC.OverdueLoans(ctx, now)
		require.NoError(t, err)
		require.NotContains(t, reminderLoanIDs(overdue), freshLoan.ID)
	})
}
