package interfaces

import (
	"context"

	"trades_marketplace/internal/domain/entities"
)

// QuoteFilter narrows a quote listing. Zero values mean "any".
type QuoteFilter struct {
	JobRequestID   string
	ProfessionalID string
	CustomerID     string
	Status         entities.QuoteStatus
}

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// Updates take expected, the quote as the writer read it, and only apply
// while the stored quote still has its status and updated_at. A failed quote
// condition yields ErrStaleQuote. The *WithJobRequest methods also replace
// the job request in the same transaction, conditioned on
// expectedJobVersion; a failed job condition yields ErrStaleJobRequest.
type IQuoteRepository interface {
	// CreateWithJobRequest inserts q and replaces the job request. It returns
	// ErrActiveQuoteExists when the professional already holds a pending or
	// accepted quote on the job.
	CreateWithJobRequest(ctx context.Context, q entities.Quote, job entities.JobRequest, expectedJobVersion int64) (entities.Quote, entities.JobRequest, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context, filter QuoteFilter) ([]entities.Quote, error)
	ListByJobRequestID(ctx context.Context, jobRequestID string) ([]entities.Quote, error)
	Update(ctx context.Context, q, expected entities.Quote) (entities.Quote, error)
	UpdateWithJobRequest(ctx context.Context, q, expected entities.Quote, job entities.JobRequest, expectedJobVersion int64) (entities.Quote, entities.JobRequest, error)
}
