package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase/interfaces"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Publisher is the part of *nats.Conn the notifier needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// NATSNotifier publishes marketplace events for downstream mailers.
//
// Subjects:
//
//	{prefix}.quote.{submitted|accepted|declined|withdrawn}
//	{prefix}.auth.login_code
type NATSNotifier struct {
	pub    Publisher
	prefix string
	logger *zap.Logger
}

var _ interfaces.INotifier = (*NATSNotifier)(nil)

func NewNATSNotifier(pub Publisher, prefix string, logger *zap.Logger) *NATSNotifier {
	if prefix == "" {
		prefix = "marketplace"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NATSNotifier{pub: pub, prefix: prefix, logger: logger.Named("notifier")}
}

// Connect dials NATS with reconnects enabled.
func Connect(url string, logger *zap.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("trades-marketplace"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return nc, nil
}

func (n *NATSNotifier) NotifyQuote(_ context.Context, event entities.QuoteEvent) error {
	subject := fmt.Sprintf("%s.quote.%s", n.prefix, event.Type)
	return n.publish(subject, event)
}

// LoginCodeMessage is the payload published on {prefix}.auth.login_code.
type LoginCodeMessage struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (n *NATSNotifier) SendLoginCode(_ context.Context, email, code string, expiresAt time.Time) error {
	return n.publish(n.prefix+".auth.login_code", LoginCodeMessage{Email: email, Code: code, ExpiresAt: expiresAt})
}

func (n *NATSNotifier) publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", subject, err)
	}
	if err := n.pub.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	n.logger.Debug("published", zap.String("subject", subject))
	return nil
}
