package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/victorsprings/notification-service/internal/domain"
)

const logWriteTimeout = 5 * time.Second

// DeliveryLog persists one notification_logs row per dispatch and passes the
// stored entry on to subscribers.
type DeliveryLog struct {
	repo        domain.NotificationLogRepository
	logger      *slog.Logger
	subscribers []func(*domain.NotificationLog)
}

// NewDeliveryLog creates a new DeliveryLog
func NewDeliveryLog(repo domain.NotificationLogRepository, logger *slog.Logger) *DeliveryLog {
	return &DeliveryLog{
		repo:   repo,
		logger: logger,
	}
}

// Subscribe registers fn to receive every stored entry. Not safe to call once
// dispatching has started.
func (l *DeliveryLog) Subscribe(fn func(*domain.NotificationLog)) {
	l.subscribers = append(l.subscribers, fn)
}

// Record is a dispatcher outcome hook. A failed write is logged and the entry
// is still published.
func (l *DeliveryLog) Record(ctx context.Context, result DispatchResult) {
	entry := domain.NewNotificationLog(result.Request, result.Text, result.Outcome)

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logWriteTimeout)
	defer cancel()

	if err := l.repo.Create(writeCtx, entry); err != nil {
		l.logger.Error("failed to store notification log",
			"log_id", entry.ID,
			"kind", entry.MessageType,
			"correlation_id", entry.CorrelationID,
			"error", err,
		)
	}

	for _, fn := range l.subscribers {
		fn(entry)
	}
}
