package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// maxWriteAttempts bounds the re-read/re-write loop on a stale job version.
const maxWriteAttempts = 3

type nopMetrics struct{}

func (nopMetrics) IncQuoteSubmitted()                      {}
func (nopMetrics) IncQuoteTransition(entities.QuoteStatus) {}
func (nopMetrics) IncSiblingDeclineFailure()               {}
func (nopMetrics) AddDraftsLinked(int)                     {}
func (nopMetrics) IncNotificationFailure(string)           {}

// loadJobRequest resolves id or returns ErrJobRequestNotFound.
func loadJobRequest(ctx context.Context, repo interfaces.IJobRequestRepository, id string) (entities.JobRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.JobRequest{}, ErrInvalidJobRequestID
	}
	job, err := repo.GetByID(ctx, id)
	if err != nil {
		return entities.JobRequest{}, err
	}
	if job.ID == "" {
		return entities.JobRequest{}, ErrJobRequestNotFound
	}
	return job, nil
}

func loadQuote(ctx context.Context, repo interfaces.IQuoteRepository, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

// staleQuoteError explains a quote write that lost its condition: the quote
// either left pending or another writer changed it since it was read.
func staleQuoteError(ctx context.Context, repo interfaces.IQuoteRepository, id string) error {
	current, err := loadQuote(ctx, repo, id)
	if err != nil {
		return err
	}
	if current.Status != entities.QuoteStatusPending {
		return fmt.Errorf("%w: quote is %s", ErrInvalidQuoteState, current.Status)
	}
	return fmt.Errorf("%w: quote %s", ErrConcurrentModification, id)
}

// mutateJobRequest re-reads the job, applies mutate and saves it with a
// version check, retrying while another writer wins the race.
func mutateJobRequest(
	ctx context.Context,
	repo interfaces.IJobRequestRepository,
	id string,
	mutate func(job entities.JobRequest) (entities.JobRequest, error),
) (entities.JobRequest, error) {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		job, err := loadJobRequest(ctx, repo, id)
		if err != nil {
			return entities.JobRequest{}, err
		}
		updated, err := mutate(job)
		if err != nil {
			return entities.JobRequest{}, err
		}
		saved, err := repo.Save(ctx, updated, job.Version)
		if errors.Is(err, interfaces.ErrStaleJobRequest) {
			continue
		}
		if err != nil {
			return entities.JobRequest{}, err
		}
		return saved, nil
	}
	return entities.JobRequest{}, fmt.Errorf("%w: job request %s", ErrConcurrentModification, id)
}

// notifyQuote publishes a quote event. Delivery failures never fail the caller.
func notifyQuote(ctx context.Context, notifier interfaces.INotifier, metrics interfaces.IMetrics, logger *zap.Logger, t entities.QuoteEventType, q entities.Quote, at time.Time) {
	if notifier == nil {
		return
	}
	if err := notifier.NotifyQuote(ctx, entities.NewQuoteEvent(t, q, at)); err != nil {
		metrics.IncNotificationFailure("quote." + string(t))
		logger.Warn("quote notification failed",
			zap.String("event", string(t)),
			zap.String("quote_id", q.ID),
			zap.Error(err),
		)
	}
}

// releaseQuoteSlot frees the slot held by an active quote that leaves the
// job. A quoted job with no active quotes left goes back to open.
func releaseQuoteSlot(job entities.JobRequest, now time.Time) entities.JobRequest {
	if job.QuotesCount > 0 {
		job.QuotesCount--
	}
	if job.Status == entities.JobRequestStatusQuoted && job.QuotesCount == 0 {
		job.Status = entities.JobRequestStatusOpen
	}
	job.UpdatedAt = now
	return job
}
