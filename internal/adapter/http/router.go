package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lenddesk/loanledger/internal/adapter/http/handler"
	"github.com/lenddesk/loanledger/internal/adapter/http/middleware"
	"github.com/lenddesk/loanledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	LoanHandler         *handler.LoanHandler
	PaymentHandler      *handler.PaymentHandler
	ReminderHandler     *handler.ReminderHandler
	AuditHandler        *handler.AuditHandler
	NotificationHandler *handler.NotificationHandler
	LedgerHandler       *handler.LedgerHandler
	HealthHandler       *handler.HealthHandler
	IdempotencyStore    usecase.IdempotencyStore
	IdempotencyTTL      time.Duration
	RateLimiter         *middleware.RateLimiter
	RequestLogger       *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RequestLogger != nil {
		r.Use(cfg.RequestLogger.Wrap)
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Duplicate repayment submissions replay the stored response.
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/loans", func(r chi.Router) {
			r.Post("/", cfg.LoanHandler.Create)
			r.Get("/", cfg.LoanHandler.List)
			r.Get("/{id}", cfg.LoanHandler.Get)
			r.Post("/{id}/approve", cfg.LoanHandler.Approve)
			r.Delete("/{id}", cfg.LoanHandler.Delete)
			r.Get("/{id}/payments", cfg.LoanHandler.ListPayments)
			r.Get("/{id}/reconcile", cfg.LedgerHandler.ReconcileLoan)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", cfg.PaymentHandler.Create)
			r.Get("/", cfg.PaymentHandler.List)
			r.Get("/{id}", cfg.PaymentHandler.Get)
		})

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/upcoming", cfg.ReminderHandler.Upcoming)
			r.Get("/overdue", cfg.ReminderHandler.Overdue)
		})

		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
		r.Get("/audit-logs", cfg.AuditHandler.List)
		r.Get("/users/{id}/notifications", cfg.NotificationHandler.ListByUser)
	})

	return r
}
