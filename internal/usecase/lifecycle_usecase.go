package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trades_marketplace/internal/domain/access"
	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase/interfaces"

	"go.uber.org/zap"
)

type AcceptQuoteResult struct {
	Quote            entities.Quote
	JobRequest       entities.JobRequest
	DeclinedQuoteIDs []string
}

type ReconcileResult struct {
	JobRequest       entities.JobRequest
	DeclinedQuoteIDs []string
}

// ILifecycleUseCase coordinates every change that moves a quote out of
// pending or a job request between lifecycle states.
//
// Accepting a quote writes the quote and its job request in one transaction.
// Declining the remaining pending quotes happens afterwards, one quote at a
// time; anything left pending is picked up by ReconcileSettlement.
type ILifecycleUseCase interface {
	AcceptQuote(ctx context.Context, caller *entities.Caller, quoteID string) (AcceptQuoteResult, error)
	DeclineQuote(ctx context.Context, caller *entities.Caller, quoteID string) (entities.Quote, error)
	WithdrawQuote(ctx context.Context, caller *entities.Caller, quoteID string) (entities.Quote, error)
	LinkDraftJobs(ctx context.Context, caller *entities.Caller) (int, error)
	CancelJobRequest(ctx context.Context, caller *entities.Caller, jobRequestID string) (entities.JobRequest, error)
	CompleteJobRequest(ctx context.Context, caller *entities.Caller, jobRequestID string) (entities.JobRequest, error)
	ReconcileSettlement(ctx context.Context, caller *entities.Caller, jobRequestID string) (ReconcileResult, error)
}

type LifecycleUseCase struct {
	jobs     interfaces.IJobRequestRepository
	quotes   interfaces.IQuoteRepository
	notifier interfaces.INotifier
	metrics  interfaces.IMetrics
	logger   *zap.Logger
	now      func() time.Time
}

var _ ILifecycleUseCase = (*LifecycleUseCase)(nil)

func NewLifecycleUseCase(
	jobs interfaces.IJobRequestRepository,
	quotes interfaces.IQuoteRepository,
	notifier interfaces.INotifier,
	metrics interfaces.IMetrics,
	logger *zap.Logger,
) *LifecycleUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &LifecycleUseCase{
		jobs:     jobs,
		quotes:   quotes,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger.Named("lifecycle"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *LifecycleUseCase) AcceptQuote(ctx context.Context, caller *entities.Caller, quoteID string) (AcceptQuoteResult, error) {
	if err := access.RequireAuthenticated(caller); err != nil {
		return AcceptQuoteResult{}, err
	}
	quote, err := loadQuote(ctx, u.quotes, quoteID)
	if err != nil {
		return AcceptQuoteResult{}, err
	}
	job, err := loadJobRequest(ctx, u.jobs, quote.JobRequestID)
	if err != nil {
		return AcceptQuoteResult{}, err
	}
	if err := access.Authorize(caller, access.OpAcceptQuote, job.CustomerID); err != nil {
		return AcceptQuoteResult{}, err
	}
	if quote.Status != entities.QuoteStatusPending {
		return AcceptQuoteResult{}, fmt.Errorf("%w: quote is %s", ErrInvalidQuoteState, quote.Status)
	}
	now := u.now()
	if quote.ExpiredAt(now) {
		return AcceptQuoteResult{}, ErrQuoteExpired
	}

	var accepted entities.Quote
	var settled entities.JobRequest
	for attempt := 0; ; attempt++ {
		if attempt == maxWriteAttempts {
			return AcceptQuoteResult{}, fmt.Errorf("%w: job request %s", ErrConcurrentModification, job.ID)
		}
		if attempt > 0 {
			if job, err = loadJobRequest(ctx, u.jobs, quote.JobRequestID); err != nil {
				return AcceptQuoteResult{}, err
			}
		}
		if !job.Status.AcceptsQuotes() || job.AcceptedQuoteID != "" {
			return AcceptQuoteResult{}, fmt.Errorf("%w: job request is %s", ErrJobRequestAlreadySettled, job.Status)
		}

		next := job
		next.Status = entities.JobRequestStatusAccepted
		next.AcceptedQuoteID = quote.ID
		next.AssignedProfessionalID = quote.ProfessionalID
		next.QuotesCount = 1
		next.UpdatedAt = now

		accepted, settled, err = u.quotes.UpdateWithJobRequest(ctx,
			quote.WithStatus(entities.QuoteStatusAccepted, now), quote,
			next, job.Version,
		)
		if errors.Is(err, interfaces.ErrStaleJobRequest) {
			continue
		}
		// An edit that landed after the read is not accepted silently.
		if errors.Is(err, interfaces.ErrStaleQuote) {
			return AcceptQuoteResult{}, staleQuoteError(ctx, u.quotes, quote.ID)
		}
		if err != nil {
			return AcceptQuoteResult{}, err
		}
		break
	}

	u.metrics.IncQuoteTransition(entities.QuoteStatusAccepted)
	u.logger.Info("quote accepted",
		zap.String("quote_id", accepted.ID),
		zap.String("job_request_id", settled.ID),
		zap.String("professional_id", accepted.ProfessionalID),
	)

	declined := u.declinePending(ctx, settled.ID, accepted.ID, now)

	notifyQuote(ctx, u.notifier, u.metrics, u.logger, entities.QuoteEventAccepted, accepted, now)
	ids := make([]string, 0, len(declined))
	for _, q := range declined {
		ids = append(ids, q.ID)
		notifyQuote(ctx, u.notifier, u.metrics, u.logger, entities.QuoteEventDeclined, q, now)
	}

	return AcceptQuoteResult{Quote: accepted, JobRequest: settled, DeclinedQuoteIDs: ids}, nil
}

func (u *LifecycleUseCase) DeclineQuote(ctx context.Context, caller *entities.Caller, quoteID string) (entities.Quote, error) {
	if err := access.RequireAuthenticated(caller); err != nil {
		return entities.Quote{}, err
	}
	quote, err := loadQuote(ctx, u.quotes, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	job, err := loadJobRequest(ctx, u.jobs, quote.JobRequestID)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := access.Authorize(caller, access.OpDeclineQuote, job.CustomerID); err != nil {
		return entities.Quote{}, err
	}
	return u.closeQuote(ctx, quote, job, entities.QuoteStatusDeclined, entities.QuoteEventDeclined)
}

func (u *LifecycleUseCase) WithdrawQuote(ctx context.Context, caller *entities.Caller, quoteID string) (entities.Quote, error) {
	if err := access.RequireAuthenticated(caller); err != nil {
		return entities.Quote{}, err
	}
	quote, err := loadQuote(ctx, u.quotes, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := access.Authorize(caller, access.OpWithdrawQuote, quote.ProfessionalID); err != nil {
		return entities.Quote{}, err
	}
	job, err := loadJobRequest(ctx, u.jobs, quote.JobRequestID)
	if err != nil {
		return entities.Quote{}, err
	}
	return u.closeQuote(ctx, quote, job, entities.QuoteStatusWithdrawn, entities.QuoteEventWithdrawn)
}

// closeQuote moves a pending quote to a terminal non-accepted status. While
// the job still takes quotes, the freed slot is written in the same
// transaction as the quote.
func (u *LifecycleUseCase) closeQuote(
	ctx context.Context,
	quote entities.Quote,
	job entities.JobRequest,
	target entities.QuoteStatus,
	event entities.QuoteEventType,
) (entities.Quote, error) {
	if !quote.Status.CanTransitionTo(target) {
		return entities.Quote{}, fmt.Errorf("%w: quote is %s", ErrInvalidQuoteState, quote.Status)
	}

	now := u.now()
	var (
		saved entities.Quote
		err   error
	)
	for attempt := 0; ; attempt++ {
		if attempt == maxWriteAttempts {
			return entities.Quote{}, fmt.Errorf("%w: job request %s", ErrConcurrentModification, job.ID)
		}
		if attempt > 0 {
			if job, err = loadJobRequest(ctx, u.jobs, quote.JobRequestID); err != nil {
				return entities.Quote{}, err
			}
		}

		closed := quote.WithStatus(target, now)
		if job.Status.AcceptsQuotes() {
			saved, _, err = u.quotes.UpdateWithJobRequest(ctx, closed, quote,
				releaseQuoteSlot(job, now), job.Version)
		} else {
			saved, err = u.quotes.Update(ctx, closed, quote)
		}
		if errors.Is(err, interfaces.ErrStaleJobRequest) {
			continue
		}
		if errors.Is(err, interfaces.ErrStaleQuote) {
			// Edited but still pending: close the current version instead.
			if quote, err = loadQuote(ctx, u.quotes, quote.ID); err != nil {
				return entities.Quote{}, err
			}
			if quote.Status != entities.QuoteStatusPending {
				return entities.Quote{}, fmt.Errorf("%w: quote is %s", ErrInvalidQuoteState, quote.Status)
			}
			continue
		}
		if err != nil {
			return entities.Quote{}, err
		}
		break
	}

	u.metrics.IncQuoteTransition(target)
	u.logger.Info("quote closed",
		zap.String("quote_id", saved.ID),
		zap.String("job_request_id", saved.JobRequestID),
		zap.String("status", string(saved.Status)),
	)
	notifyQuote(ctx, u.notifier, u.metrics, u.logger, event, saved, now)
	return saved, nil
}

func (u *LifecycleUseCase) LinkDraftJobs(ctx context.Context, caller *entities.Caller) (int, error) {
	if err := access.Authorize(caller, access.OpLinkDraftJobs); err != nil {
		return 0, err
	}
	email := entities.NormalizeEmail(caller.Email)
	if email == "" {
		return 0, nil
	}

	drafts, err := u.jobs.ListDraftsByContactEmail(ctx, email)
	if err != nil {
		return 0, err
	}

	now := u.now()
	linked := 0
	for _, d := range drafts {
		if d.Status != entities.JobRequestStatusDraft || d.CustomerID != "" || entities.NormalizeEmail(d.ContactEmail) != email {
			continue
		}
		next := d
		next.CustomerID = caller.UserID
		next.Status = entities.JobRequestStatusOpen
		next.UpdatedAt = now

		if _, err := u.jobs.Save(ctx, next, d.Version); err != nil {
			if errors.Is(err, interfaces.ErrStaleJobRequest) {
				// Linked or edited by a concurrent request.
				continue
			}
			u.metrics.AddDraftsLinked(linked)
			return linked, err
		}
		linked++
	}

	u.metrics.AddDraftsLinked(linked)
	if linked > 0 {
		u.logger.Info("draft job requests linked", zap.String("user_id", caller.UserID), zap.Int("count", linked))
	}
	return linked, nil
}

func (u *LifecycleUseCase) CancelJobRequest(ctx context.Context, caller *entities.Caller, jobRequestID string) (entities.JobRequest, error) {
	if err := access.RequireAuthenticated(caller); err != nil {
		return entities.JobRequest{}, err
	}
	now := u.now()
	cancelled, err := mutateJobRequest(ctx, u.jobs, jobRequestID, func(job entities.JobRequest) (entities.JobRequest, error) {
		if err := authorizeJobOwner(caller, access.OpCancelJobRequest, job); err != nil {
			return job, err
		}
		if !job.Status.CanTransitionTo(entities.JobRequestStatusCancelled) {
			return job, fmt.Errorf("%w: job request is %s", ErrInvalidJobRequestState, job.Status)
		}
		job.Status = entities.JobRequestStatusCancelled
		job.QuotesCount = 0
		job.CancelledAt = &now
		job.UpdatedAt = now
		return job, nil
	})
	if err != nil {
		return entities.JobRequest{}, err
	}
	u.logger.Info("job request cancelled", zap.String("job_request_id", cancelled.ID))

	for _, q := range u.declinePending(ctx, cancelled.ID, "", now) {
		notifyQuote(ctx, u.notifier, u.metrics, u.logger, entities.QuoteEventDeclined, q, now)
	}
	return cancelled, nil
}

func (u *LifecycleUseCase) CompleteJobRequest(ctx context.Context, caller *entities.Caller, jobRequestID string) (entities.JobRequest, error) {
	if err := access.RequireAuthenticated(caller); err != nil {
		return entities.JobRequest{}, err
	}
	now := u.now()
	completed, err := mutateJobRequest(ctx, u.jobs, jobRequestID, func(job entities.JobRequest) (entities.JobRequest, error) {
		if err := authorizeJobOwner(caller, access.OpCompleteJobRequest, job); err != nil {
			return job, err
		}
		if !job.Status.CanTransitionTo(entities.JobRequestStatusCompleted) {
			return job, fmt.Errorf("%w: job request is %s", ErrInvalidJobRequestState, job.Status)
		}
		job.Status = entities.JobRequestStatusCompleted
		job.CompletedAt = &now
		job.UpdatedAt = now
		return job, nil
	})
	if err != nil {
		return entities.JobRequest{}, err
	}
	u.logger.Info("job request completed", zap.String("job_request_id", completed.ID))
	return completed, nil
}

// ReconcileSettlement declines quotes still pending on a settled job and
// realigns quotes_count with the active quotes actually stored.
func (u *LifecycleUseCase) ReconcileSettlement(ctx context.Context, caller *entities.Caller, jobRequestID string) (ReconcileResult, error) {
	if err := access.RequireAuthenticated(caller); err != nil {
		return ReconcileResult{}, err
	}
	job, err := loadJobRequest(ctx, u.jobs, jobRequestID)
	if err != nil {
		return ReconcileResult{}, err
	}
	if err := authorizeJobOwner(caller, access.OpReconcileJob, job); err != nil {
		return ReconcileResult{}, err
	}
	if job.Status.AcceptsQuotes() || job.Status == entities.JobRequestStatusDraft {
		return ReconcileResult{}, fmt.Errorf("%w: job request is %s", ErrInvalidJobRequestState, job.Status)
	}

	now := u.now()
	declined := u.declinePending(ctx, job.ID, job.AcceptedQuoteID, now)
	ids := make([]string, 0, len(declined))
	for _, q := range declined {
		ids = append(ids, q.ID)
		notifyQuote(ctx, u.notifier, u.metrics, u.logger, entities.QuoteEventDeclined, q, now)
	}

	quotes, err := u.quotes.ListByJobRequestID(ctx, job.ID)
	if err != nil {
		return ReconcileResult{}, err
	}
	active := 0
	for _, q := range quotes {
		if q.Status.Active() {
			active++
		}
	}
	if active != job.QuotesCount {
		job, err = mutateJobRequest(ctx, u.jobs, job.ID, func(current entities.JobRequest) (entities.JobRequest, error) {
			if current.Status != job.Status {
				return current, fmt.Errorf("%w: job request moved to %s", ErrConcurrentModification, current.Status)
			}
			current.QuotesCount = active
			current.UpdatedAt = now
			return current, nil
		})
		if err != nil {
			return ReconcileResult{}, err
		}
	}

	u.logger.Info("settlement reconciled",
		zap.String("job_request_id", job.ID),
		zap.Int("declined", len(ids)),
		zap.Int("quotes_count", job.QuotesCount),
	)
	return ReconcileResult{JobRequest: job, DeclinedQuoteIDs: ids}, nil
}

// declinePending declines every pending quote on the job except keepID.
// Each quote is written on its own; failures are logged and counted, and the
// quotes that were declined are returned.
func (u *LifecycleUseCase) declinePending(ctx context.Context, jobRequestID, keepID string, now time.Time) []entities.Quote {
	quotes, err := u.quotes.ListByJobRequestID(ctx, jobRequestID)
	if err != nil {
		u.metrics.IncSiblingDeclineFailure()
		u.logger.Error("list quotes for decline failed", zap.String("job_request_id", jobRequestID), zap.Error(err))
		return nil
	}

	declined := make([]entities.Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.ID == keepID || q.Status != entities.QuoteStatusPending {
			continue
		}
		saved, err := u.declineQuote(ctx, q, now)
		if errors.Is(err, interfaces.ErrStaleQuote) {
			continue
		}
		if err != nil {
			u.metrics.IncSiblingDeclineFailure()
			u.logger.Error("decline pending quote failed",
				zap.String("job_request_id", jobRequestID),
				zap.String("quote_id", q.ID),
				zap.Error(err),
			)
			continue
		}
		u.metrics.IncQuoteTransition(entities.QuoteStatusDeclined)
		declined = append(declined, saved)
	}
	return declined
}

// declineQuote declines q, re-reading it when a concurrent edit moved its
// updated_at. ErrStaleQuote means it is no longer pending.
func (u *LifecycleUseCase) declineQuote(ctx context.Context, q entities.Quote, now time.Time) (entities.Quote, error) {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		saved, err := u.quotes.Update(ctx, q.WithStatus(entities.QuoteStatusDeclined, now), q)
		if !errors.Is(err, interfaces.ErrStaleQuote) {
			return saved, err
		}
		if q, err = loadQuote(ctx, u.quotes, q.ID); err != nil {
			return entities.Quote{}, err
		}
		if q.Status != entities.QuoteStatusPending {
			return entities.Quote{}, interfaces.ErrStaleQuote
		}
	}
	return entities.Quote{}, fmt.Errorf("%w: quote %s", ErrConcurrentModification, q.ID)
}

// authorizeJobOwner hides drafts from callers who are not allowed to touch them.
func authorizeJobOwner(caller *entities.Caller, op access.Operation, job entities.JobRequest) error {
	err := access.Authorize(caller, op, job.CustomerID)
	if err != nil && job.Status == entities.JobRequestStatusDraft && errors.Is(err, access.ErrForbidden) {
		return ErrJobRequestNotFound
	}
	return err
}
