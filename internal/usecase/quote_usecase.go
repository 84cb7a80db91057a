package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"trades_marketplace/internal/domain/access"
	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultQuoteValidity is used when a quote is submitted without expires_at.
const DefaultQuoteValidity = 30 * 24 * time.Hour

type CreateQuoteInput struct {
	JobRequestID      string `validate:"required"`
	ProfessionalID    string
	Amount            int64  `validate:"gt=0"`
	Message           string `validate:"omitempty,max=2000"`
	EstimatedDuration string `validate:"omitempty,max=64"`
	MaterialsCost     int64  `validate:"gte=0"`
	LaborCost         int64  `validate:"gte=0"`
	IncludesMaterials bool
	ExpiresAt         *time.Time
}

type UpdateQuoteInput struct {
	Amount            *int64  `validate:"omitempty,gt=0"`
	Message           *string `validate:"omitempty,max=2000"`
	EstimatedDuration *string `validate:"omitempty,max=64"`
	MaterialsCost     *int64  `validate:"omitempty,gte=0"`
	LaborCost         *int64  `validate:"omitempty,gte=0"`
	IncludesMaterials *bool
	ExpiresAt         *time.Time
}

// ListQuotesQuery filters a quote listing. MyQuotes scopes professionals to
// their own quotes and customers to quotes on their jobs.
type ListQuotesQuery struct {
	JobRequestID   string
	ProfessionalID string
	CustomerID     string
	Status         entities.QuoteStatus
	MyQuotes       bool
}

// IQuoteUseCase exposes the quote ledger operations that do not settle a job.
type IQuoteUseCase interface {
	Create(ctx context.Context, caller *entities.Caller, in CreateQuoteInput) (entities.Quote, error)
	GetByID(ctx context.Context, caller *entities.Caller, id string) (entities.Quote, error)
	List(ctx context.Context, caller *entities.Caller, q ListQuotesQuery) ([]entities.Quote, error)
	Update(ctx context.Context, caller *entities.Caller, id string, in UpdateQuoteInput) (entities.Quote, error)
}

type QuoteUseCase struct {
	quotes   interfaces.IQuoteRepository
	jobs     interfaces.IJobRequestRepository
	notifier interfaces.INotifier
	metrics  interfaces.IMetrics
	logger   *zap.Logger
	validity time.Duration
	now      func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(
	quotes interfaces.IQuoteRepository,
	jobs interfaces.IJobRequestRepository,
	notifier interfaces.INotifier,
	metrics interfaces.IMetrics,
	logger *zap.Logger,
	validity time.Duration,
) *QuoteUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if validity <= 0 {
		validity = DefaultQuoteValidity
	}
	return &QuoteUseCase{
		quotes:   quotes,
		jobs:     jobs,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger.Named("quote"),
		validity: validity,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *QuoteUseCase) Create(ctx context.Context, caller *entities.Caller, in CreateQuoteInput) (entities.Quote, error) {
	if err := access.Authorize(caller, access.OpCreateQuote); err != nil {
		return entities.Quote{}, err
	}
	in.JobRequestID = strings.TrimSpace(in.JobRequestID)
	in.Message = strings.TrimSpace(in.Message)
	in.EstimatedDuration = strings.TrimSpace(in.EstimatedDuration)
	if err := validate.Struct(in); err != nil {
		return entities.Quote{}, validationError(ErrInvalidQuote, err)
	}

	professionalID := caller.UserID
	if caller.IsAdmin() && strings.TrimSpace(in.ProfessionalID) != "" {
		professionalID = strings.TrimSpace(in.ProfessionalID)
	}

	now := u.now()
	expiresAt := now.Add(u.validity)
	if in.ExpiresAt != nil {
		if !in.ExpiresAt.After(now) {
			return entities.Quote{}, fmt.Errorf("%w: expires_at must be in the future", ErrInvalidQuote)
		}
		expiresAt = in.ExpiresAt.UTC()
	}

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		job, err := loadJobRequest(ctx, u.jobs, in.JobRequestID)
		if err != nil {
			return entities.Quote{}, err
		}
		if job.Status == entities.JobRequestStatusDraft && !caller.IsAdmin() {
			return entities.Quote{}, ErrJobRequestNotFound
		}
		if job.CustomerID == professionalID {
			return entities.Quote{}, fmt.Errorf("%w: cannot quote on own job request", access.ErrForbidden)
		}
		// Checked against each job version read: a quote committed by a
		// concurrent submission bumps the version and is seen on retry.
		if err := u.ensureNoActiveQuote(ctx, job.ID, professionalID); err != nil {
			return entities.Quote{}, err
		}
		if !job.Status.AcceptsQuotes() {
			return entities.Quote{}, fmt.Errorf("%w: job request is %s", ErrJobRequestNotAcceptingQuotes, job.Status)
		}
		if !job.HasQuoteCapacity() {
			return entities.Quote{}, ErrMaxQuotesReached
		}

		quote := entities.Quote{
			ID:                uuid.NewString(),
			JobRequestID:      job.ID,
			ProfessionalID:    professionalID,
			CustomerID:        job.CustomerID,
			Amount:            in.Amount,
			Message:           in.Message,
			EstimatedDuration: in.EstimatedDuration,
			MaterialsCost:     in.MaterialsCost,
			LaborCost:         in.LaborCost,
			IncludesMaterials: in.IncludesMaterials,
			ExpiresAt:         expiresAt,
			Status:            entities.QuoteStatusPending,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		quoted := job
		quoted.QuotesCount++
		quoted.Status = entities.JobRequestStatusQuoted
		quoted.UpdatedAt = now

		created, _, err := u.quotes.CreateWithJobRequest(ctx, quote, quoted, job.Version)
		if errors.Is(err, interfaces.ErrStaleJobRequest) {
			u.logger.Debug("job request changed while quoting, retrying",
				zap.String("job_request_id", job.ID), zap.Int("attempt", attempt+1))
			continue
		}
		if errors.Is(err, interfaces.ErrActiveQuoteExists) {
			return entities.Quote{}, ErrDuplicateQuote
		}
		if err != nil {
			return entities.Quote{}, err
		}

		u.metrics.IncQuoteSubmitted()
		u.logger.Info("quote submitted",
			zap.String("quote_id", created.ID),
			zap.String("job_request_id", created.JobRequestID),
			zap.String("professional_id", created.ProfessionalID),
		)
		notifyQuote(ctx, u.notifier, u.metrics, u.logger, entities.QuoteEventSubmitted, created, now)
		return created, nil
	}
	return entities.Quote{}, fmt.Errorf("%w: job request %s", ErrConcurrentModification, in.JobRequestID)
}

func (u *QuoteUseCase) ensureNoActiveQuote(ctx context.Context, jobRequestID, professionalID string) error {
	existing, err := u.quotes.List(ctx, interfaces.QuoteFilter{JobRequestID: jobRequestID, ProfessionalID: professionalID})
	if err != nil {
		return err
	}
	for _, q := range existing {
		if q.Status.Active() {
			return ErrDuplicateQuote
		}
	}
	return nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, caller *entities.Caller, id string) (entities.Quote, error) {
	if err := access.RequireAuthenticated(caller); err != nil {
		return entities.Quote{}, err
	}
	q, err := loadQuote(ctx, u.quotes, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := access.Authorize(caller, access.OpViewQuote, q.ProfessionalID, q.CustomerID); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (u *QuoteUseCase) List(ctx context.Context, caller *entities.Caller, q ListQuotesQuery) ([]entities.Quote, error) {
	if err := access.Authorize(caller, access.OpListQuotes); err != nil {
		return nil, err
	}
	if q.Status != "" && !q.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidQuery, q.Status)
	}
	filter := interfaces.QuoteFilter{
		JobRequestID:   strings.TrimSpace(q.JobRequestID),
		ProfessionalID: strings.TrimSpace(q.ProfessionalID),
		CustomerID:     strings.TrimSpace(q.CustomerID),
		Status:         q.Status,
	}

	switch caller.Role {
	case entities.RoleProfessional:
		if filter.ProfessionalID != "" && filter.ProfessionalID != caller.UserID {
			return nil, access.ErrForbidden
		}
		filter.ProfessionalID = caller.UserID
	case entities.RoleCustomer:
		if filter.CustomerID != "" && filter.CustomerID != caller.UserID {
			return nil, access.ErrForbidden
		}
		ownsJob := false
		if filter.JobRequestID != "" && !q.MyQuotes {
			job, err := u.jobs.GetByID(ctx, filter.JobRequestID)
			if err != nil {
				return nil, err
			}
			ownsJob = job.IsOwnedBy(caller.UserID)
		}
		if !ownsJob {
			filter.CustomerID = caller.UserID
		}
	case entities.RoleAdmin:
		if q.MyQuotes {
			filter.ProfessionalID = caller.UserID
		}
	}

	quotes, err := u.quotes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].CreatedAt.After(quotes[j].CreatedAt) })
	return quotes, nil
}

func (u *QuoteUseCase) Update(ctx context.Context, caller *entities.Caller, id string, in UpdateQuoteInput) (entities.Quote, error) {
	if err := access.RequireAuthenticated(caller); err != nil {
		return entities.Quote{}, err
	}
	if err := validate.Struct(in); err != nil {
		return entities.Quote{}, validationError(ErrInvalidQuote, err)
	}
	q, err := loadQuote(ctx, u.quotes, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := access.Authorize(caller, access.OpUpdateQuote, q.ProfessionalID); err != nil {
		return entities.Quote{}, err
	}
	if q.Status != entities.QuoteStatusPending {
		return entities.Quote{}, fmt.Errorf("%w: quote is %s", ErrInvalidQuoteState, q.Status)
	}

	now := u.now()
	patched := q
	if in.Amount != nil {
		patched.Amount = *in.Amount
	}
	if in.Message != nil {
		patched.Message = strings.TrimSpace(*in.Message)
	}
	if in.EstimatedDuration != nil {
		patched.EstimatedDuration = strings.TrimSpace(*in.EstimatedDuration)
	}
	if in.MaterialsCost != nil {
		patched.MaterialsCost = *in.MaterialsCost
	}
	if in.LaborCost != nil {
		patched.LaborCost = *in.LaborCost
	}
	if in.IncludesMaterials != nil {
		patched.IncludesMaterials = *in.IncludesMaterials
	}
	if in.ExpiresAt != nil {
		if !in.ExpiresAt.After(now) {
			return entities.Quote{}, fmt.Errorf("%w: expires_at must be in the future", ErrInvalidQuote)
		}
		patched.ExpiresAt = in.ExpiresAt.UTC()
	}
	patched.UpdatedAt = now

	updated, err := u.quotes.Update(ctx, patched, q)
	if errors.Is(err, interfaces.ErrStaleQuote) {
		return entities.Quote{}, staleQuoteError(ctx, u.quotes, q.ID)
	}
	if err != nil {
		return entities.Quote{}, err
	}
	return updated, nil
}
