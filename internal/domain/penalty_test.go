package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestOverdue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.May, 10, 14, 30, 0, 0, time.UTC)

	t.Run("yesterday is overdue", func(t *testing.T) {
		if !Overdue(now.AddDate(0, 0, -1), now) {
			t.Error("expected reference a day earlier to be overdue")
		}
	})

	t.Run("earlier same day is not overdue", func(t *testing.T) {
		morning := time.Date(2025, time.May, 10, 1, 0, 0, 0, time.UTC)
		if Overdue(morning, now) {
			t.Error("expected same-day reference not to be overdue")
		}
	})

	t.Run("exactly midnight is not overdue", func(t *testing.T) {
		midnight := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
		if Overdue(midnight, now) {
			t.Error("expected start-of-day reference not to be overdue")
		}
	})

	t.Run("future is not overdue", func(t *testing.T) {
		if Overdue(now.AddDate(0, 0, 3), now) {
			t.Error("expected future reference not to be overdue")
		}
	})
}

func TestPenaltyAmount(t *testing.T) {
	t.Parallel()

	rate := decimal.NewFromInt(5)

	t.Run("no penalty when on time", func(t *testing.T) {
		got := PenaltyAmount(decimal.NewFromInt(100), rate, false)
		if !got.IsZero() {
			t.Errorf("PenaltyAmount() = %s, want 0", got)
		}
	})

	t.Run("rate applied when overdue", func(t *testing.T) {
		got := PenaltyAmount(decimal.NewFromInt(100), rate, true)
		if !got.Equal(decimal.NewFromInt(5)) {
			t.Errorf("PenaltyAmount() = %s, want 5", got)
		}
	})

	t.Run("zero rate accrues nothing", func(t *testing.T) {
		got := PenaltyAmount(decimal.NewFromInt(100), decimal.Zero, true)
		if !got.IsZero() {
			t.Errorf("PenaltyAmount() = %s, want 0", got)
		}
	})
}
