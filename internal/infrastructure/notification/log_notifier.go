package notification

import (
	"context"
	"time"

	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// LogNotifier writes events to the log instead of delivering them. It is
// used when no NATS URL is configured. Login codes are never logged.
type LogNotifier struct {
	logger *zap.Logger
}

var _ interfaces.INotifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger.Named("notifier")}
}

func (n *LogNotifier) NotifyQuote(_ context.Context, event entities.QuoteEvent) error {
	n.logger.Info("quote event",
		zap.String("type", string(event.Type)),
		zap.String("quote_id", event.QuoteID),
		zap.String("job_request_id", event.JobRequestID),
		zap.String("professional_id", event.ProfessionalID),
		zap.String("customer_id", event.CustomerID),
	)
	return nil
}

func (n *LogNotifier) SendLoginCode(_ context.Context, email, _ string, expiresAt time.Time) error {
	n.logger.Info("login code issued", zap.String("email", email), zap.Time("expires_at", expiresAt))
	return nil
}
