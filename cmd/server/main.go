package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/lenddesk/loanledger/internal/adapter/http"
	"github.com/lenddesk/loanledger/internal/adapter/http/handler"
	"github.com/lenddesk/loanledger/internal/adapter/http/middleware"
	"github.com/lenddesk/loanledger/internal/adapter/notifier"
	postgresRepo "github.com/lenddesk/loanledger/internal/adapter/repository/postgres"
	redisRepo "github.com/lenddesk/loanledger/internal/adapter/repository/redis"
	"github.com/lenddesk/loanledger/internal/infrastructure/config"
	"github.com/lenddesk/loanledger/internal/infrastructure/logger"
	"github.com/lenddesk/loanledger/internal/infrastructure/logging"
	"github.com/lenddesk/loanledger/internal/infrastructure/metrics"
	"github.com/lenddesk/loanledger/internal/infrastructure/postgres"
	"github.com/lenddesk/loanledger/internal/infrastructure/redis"
	"github.com/lenddesk/loanledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup loggers
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("migrations up to date")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	loanRepo := postgresRepo.NewLoanRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	notificationRepo := postgresRepo.NewNotificationRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	clock := usecase.SystemClock{}
	m := metrics.New()

	// Initialize use cases
	storeNotifier := notifier.NewStoreNotifier(notificationRepo, idGen, clock, slogger.Logger)
	loanUC := usecase.NewLoanUseCase(loanRepo, auditRepo, storeNotifier, cache, idGen, clock, m).
		WithCacheTTL(cfg.LoanCacheTTL).
		WithUserRepository(userRepo)
	paymentUC := usecase.NewPaymentUseCase(txManager, loanRepo, paymentRepo, auditRepo, storeNotifier, cache, idGen, clock, m).
		WithRetrier(postgresRepo.NewRetrier())
	reminderUC := usecase.NewReminderUseCase(loanRepo)
	reconciliationUC := usecase.NewReconciliationUseCase(loanRepo, paymentRepo, clock)

	// Initialize handlers
	loanHandler := handler.NewLoanHandler(loanUC, paymentUC)
	paymentHandler := handler.NewPaymentHandler(paymentUC)
	reminderHandler := handler.NewReminderHandler(reminderUC)
	auditHandler := handler.NewAuditHandler(auditRepo)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	ledgerHandler := handler.NewLedgerHandler(reconciliationUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		LoanHandler:         loanHandler,
		PaymentHandler:      paymentHandler,
		ReminderHandler:     reminderHandler,
		AuditHandler:        auditHandler,
		NotificationHandler: notificationHandler,
		LedgerHandler:       ledgerHandler,
		HealthHandler:       healthHandler,
		IdempotencyStore:    idempotencyStore,
		IdempotencyTTL:      cfg.IdempotencyTTL,
		RateLimiter:         rateLimiter,
		RequestLogger:       middleware.NewLoggingMiddleware(log.Logger),
	})

	// Create server
	server := &http.Server{
		Addr:         listenAddr(cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func listenAddr(port string) string {
	return fmt.Sprintf(":%s", port)
}
