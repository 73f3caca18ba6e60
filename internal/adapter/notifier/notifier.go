package notifier

import (
	"context"
	"log/slog"

	"github.com/lenddesk/loanledger/internal/domain"
	"github.com/lenddesk/loanledger/internal/usecase"
)

// StoreNotifier implements usecase.Notifier by persisting the message
// as an unread notification row. Delivery transport reads the rows;
// the ledger never blocks on it. Failures are logged and swallowed so
// a broken notification path cannot fail a ledger operation.
type StoreNotifier struct {
	repo   usecase.NotificationRepository
	idGen  usecase.IDGenerator
	clock  usecase.Clock
	logger *slog.Logger
}

// NewStoreNotifier creates a new StoreNotifier.
func NewStoreNotifier(repo usecase.NotificationRepository, idGen usecase.IDGenerator, clock usecase.Clock, logger *slog.Logger) *StoreNotifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &StoreNotifier{
		repo:   repo,
		idGen:  idGen,
		clock:  clock,
		logger: logger,
	}
}

// Notify records a message for the user.
func (n *StoreNotifier) Notify(ctx context.Context, userID, message string) {
	now := n.clock.Now()

	err := n.repo.Create(ctx, &domain.Notification{
		ID:        n.idGen.Generate(),
		Message:   message,
		Read:      false,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		n.logger.Error("failed to store notification",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return
	}

	n.logger.Debug("notification stored", slog.String("user_id", userID))
}

// LogNotifier is a notifier that only logs messages. Used when no
// notification storage is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs the message.
func (n *LogNotifier) Notify(ctx context.Context, userID, message string) {
	n.logger.Info("NOTIFICATION",
		slog.String("user_id", userID),
		slog.String("message", message))
}
