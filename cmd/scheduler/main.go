package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/lenddesk/loanledger/internal/adapter/notifier"
	postgresRepo "github.com/lenddesk/loanledger/internal/adapter/repository/postgres"
	"github.com/lenddesk/loanledger/internal/infrastructure/config"
	"github.com/lenddesk/loanledger/internal/infrastructure/logger"
	"github.com/lenddesk/loanledger/internal/infrastructure/logging"
	"github.com/lenddesk/loanledger/internal/infrastructure/metrics"
	"github.com/lenddesk/loanledger/internal/infrastructure/postgres"
	"github.com/lenddesk/loanledger/internal/jobs"
	"github.com/lenddesk/loanledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	loanRepo := postgresRepo.NewLoanRepository(pool)
	notificationRepo := postgresRepo.NewNotificationRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	clock := usecase.SystemClock{}

	job := jobs.NewReminderJob(jobs.Config{
		ReminderUC: usecase.NewReminderUseCase(loanRepo),
		Notifier:   notifier.NewStoreNotifier(notificationRepo, idGen, clock, slogger.Logger),
		Clock:      clock,
		Logger:     slogger.Logger,
		Metrics:    metrics.New(),
		Horizons:   cfg.ReminderHorizons,
		CronSpec:   cfg.ReminderCronSpec,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down scheduler...")
		cancel()
	}()

	if err := job.Start(ctx); err != nil && err != context.Canceled {
		log.Fatal().Err(err).Msg("scheduler failed")
	}

	log.Info().Msg("scheduler stopped")
}
