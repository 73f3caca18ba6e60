package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Loan metrics
	LoansCreated  prometheus.Counter
	LoansApproved prometheus.Counter
	LoansSettled  prometheus.Counter

	// Payment metrics
	PaymentsApplied  prometheus.Counter
	PaymentsRejected *prometheus.CounterVec
	PaymentAmount    prometheus.Histogram
	PenaltyAccrued   prometheus.Histogram

	// Reminder metrics
	ReminderRuns   *prometheus.CounterVec
	RemindersSent  *prometheus.CounterVec
	ReminderErrors *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Loan metrics
		LoansCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loanledger_loans_created_total",
			Help: "Total number of loan applications created",
		}),
		LoansApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loanledger_loans_approved_total",
			Help: "Total number of loans approved",
		}),
		LoansSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loanledger_loans_settled_total",
			Help: "Total number of loans fully repaid",
		}),

		// Payment metrics
		PaymentsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loanledger_payments_applied_total",
			Help: "Total number of repayments applied",
		}),
		PaymentsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loanledger_payments_rejected_total",
				Help: "Total number of repayments rejected by reason",
			},
			[]string{"reason"},
		),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "loanledger_payment_amount",
			Help:    "Repayment amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		PenaltyAccrued: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "loanledger_penalty_accrued",
			Help:    "Penalty amounts accrued on late repayments",
			Buckets: []float64{1, 10, 100, 1000, 10000},
		}),

		// Reminder metrics
		ReminderRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loanledger_reminder_runs_total",
				Help: "Total reminder query runs by window",
			},
			[]string{"window"},
		),
		RemindersSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loanledger_reminders_sent_total",
				Help: "Total reminder notifications dispatched by window",
			},
			[]string{"window"},
		),
		ReminderErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loanledger_reminder_errors_total",
				Help: "Total reminder run failures by window",
			},
			[]string{"window"},
		),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loanledger_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action"},
		),
	}
}
