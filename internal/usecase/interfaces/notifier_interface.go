package interfaces

import (
	"context"
	"time"

	"trades_marketplace/internal/domain/entities"
)

// INotifier delivers marketplace events to the outside world (mailers,
// push workers). Callers treat every error as non-fatal.
type INotifier interface {
	NotifyQuote(ctx context.Context, event entities.QuoteEvent) error
	SendLoginCode(ctx context.Context, email, code string, expiresAt time.Time) error
}

// IMetrics records business counters. Implementations must be safe for concurrent use.
type IMetrics interface {
	IncQuoteSubmitted()
	IncQuoteTransition(status entities.QuoteStatus)
	IncSiblingDeclineFailure()
	AddDraftsLinked(n int)
	IncNotificationFailure(event string)
}
