package interfaces

import (
	"context"

	"trades_marketplace/internal/domain/entities"
)

// JobRequestFilter narrows a job request listing. Zero values mean "any".
type JobRequestFilter struct {
	Category      string
	Subcategory   string
	Postcode      string // prefix match
	Status        entities.JobRequestStatus
	Priority      entities.JobPriority
	BudgetMin     int64
	BudgetMax     int64
	CustomerID    string
	IncludeDrafts bool
}

// IJobRequestRepository abstracts DynamoDB persistence for JobRequest.
//
// Lookups return a zero JobRequest (empty ID) when nothing matches.
// Save replaces the document only if its stored version still equals
// expectedVersion and returns the job with the incremented version.
type IJobRequestRepository interface {
	Create(ctx context.Context, j entities.JobRequest) (entities.JobRequest, error)
	GetByID(ctx context.Context, id string) (entities.JobRequest, error)
	List(ctx context.Context, filter JobRequestFilter) ([]entities.JobRequest, error)
	ListDraftsByContactEmail(ctx context.Context, email string) ([]entities.JobRequest, error)
	Save(ctx context.Context, j entities.JobRequest, expectedVersion int64) (entities.JobRequest, error)
}
