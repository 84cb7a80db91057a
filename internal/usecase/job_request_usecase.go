package usecase

import (
	"context"
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

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CreateJobRequestInput is the command for posting a job request.
// CustomerID is only honoured for admins posting on behalf of a customer.
type CreateJobRequestInput struct {
	CustomerID   string
	Category     string               `validate:"required,category"`
	Subcategory  string               `validate:"omitempty,max=64"`
	Title        string               `validate:"required,min=10,max=200"`
	Description  string               `validate:"required,min=30,max=5000"`
	Postcode     string               `validate:"required,postcode"`
	Address      string               `validate:"omitempty,max=300"`
	Priority     entities.JobPriority `validate:"omitempty,oneof=low medium high urgent"`
	BudgetMin    int64                `validate:"gte=0"`
	BudgetMax    int64                `validate:"gte=0"`
	ContactEmail string               `validate:"omitempty,email,max=254"`
	ContactPhone string               `validate:"omitempty,max=32"`
	ContactName  string               `validate:"omitempty,max=120"`
	MaxQuotes    int                  `validate:"gte=0,lte=50"`
}

// UpdateJobRequestInput is a partial update; nil fields are left untouched.
// CustomerID and Status are accepted only to be rejected when they differ.
type UpdateJobRequestInput struct {
	Category     *string               `validate:"omitempty,category"`
	Subcategory  *string               `validate:"omitempty,max=64"`
	Title        *string               `validate:"omitempty,min=10,max=200"`
	Description  *string               `validate:"omitempty,min=30,max=5000"`
	Postcode     *string               `validate:"omitempty,postcode"`
	Address      *string               `validate:"omitempty,max=300"`
	Priority     *entities.JobPriority `validate:"omitempty,oneof=low medium high urgent"`
	BudgetMin    *int64                `validate:"omitempty,gte=0"`
	BudgetMax    *int64                `validate:"omitempty,gte=0"`
	ContactEmail *string               `validate:"omitempty,email,max=254"`
	ContactPhone *string               `validate:"omitempty,max=32"`
	ContactName  *string               `validate:"omitempty,max=120"`
	MaxQuotes    *int                  `validate:"omitempty,gte=1,lte=50"`

	CustomerID *string
	Status     *string
}

// ListJobRequestsQuery carries listing filters and pagination.
type ListJobRequestsQuery struct {
	Category     string
	Subcategory  string
	Postcode     string
	Status       entities.JobRequestStatus
	Priority     entities.JobPriority
	BudgetMin    int64
	BudgetMax    int64
	CustomerOnly bool
	Page         int
	Limit        int
}

type JobRequestPage struct {
	Items []entities.JobRequest
	Page  int
	Limit int
	Total int
}

// IJobRequestUseCase exposes the job request store operations.
//
// Draft job requests belong to nobody until linked, so only admins can
// read, list or edit them.
type IJobRequestUseCase interface {
	Create(ctx context.Context, caller *entities.Caller, in CreateJobRequestInput) (entities.JobRequest, error)
	GetByID(ctx context.Context, caller *entities.Caller, id string) (entities.JobRequest, error)
	List(ctx context.Context, caller *entities.Caller, q ListJobRequestsQuery) (JobRequestPage, error)
	Update(ctx context.Context, caller *entities.Caller, id string, in UpdateJobRequestInput) (entities.JobRequest, error)
}

type JobRequestUseCase struct {
	repo   interfaces.IJobRequestRepository
	logger *zap.Logger
	now    func() time.Time
}

var _ IJobRequestUseCase = (*JobRequestUseCase)(nil)

func NewJobRequestUseCase(repo interfaces.IJobRequestRepository, logger *zap.Logger) *JobRequestUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobRequestUseCase{
		repo:   repo,
		logger: logger.Named("job_request"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (u *JobRequestUseCase) Create(ctx context.Context, caller *entities.Caller, in CreateJobRequestInput) (entities.JobRequest, error) {
	in = normalizeCreateJobRequest(in)
	if err := validate.Struct(in); err != nil {
		return entities.JobRequest{}, validationError(ErrInvalidJobRequest, err)
	}
	if !entities.ValidSubcategory(in.Category, in.Subcategory) {
		return entities.JobRequest{}, fmt.Errorf("%w: subcategory %q is not part of %q", ErrInvalidJobRequest, in.Subcategory, in.Category)
	}
	if in.BudgetMax > 0 && in.BudgetMax < in.BudgetMin {
		return entities.JobRequest{}, fmt.Errorf("%w: budget_max must be greater than or equal to budget_min", ErrInvalidJobRequest)
	}

	now := u.now()
	job := entities.JobRequest{
		ID:           uuid.NewString(),
		Category:     in.Category,
		Subcategory:  in.Subcategory,
		Title:        in.Title,
		Description:  in.Description,
		Postcode:     in.Postcode,
		Address:      in.Address,
		Priority:     in.Priority,
		BudgetMin:    in.BudgetMin,
		BudgetMax:    in.BudgetMax,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		ContactName:  in.ContactName,
		MaxQuotes:    in.MaxQuotes,
		Version:      1,
		PostedAt:     now,
		UpdatedAt:    now,
	}

	if caller == nil {
		// Guests post drafts that are linked to an account later by contact email.
		if job.ContactEmail == "" {
			return entities.JobRequest{}, fmt.Errorf("%w: contact_email is required when posting without an account", ErrInvalidJobRequest)
		}
		job.Status = entities.JobRequestStatusDraft
	} else {
		if err := access.Authorize(caller, access.OpCreateJobRequest); err != nil {
			return entities.JobRequest{}, err
		}
		job.CustomerID = caller.UserID
		if caller.IsAdmin() && in.CustomerID != "" {
			job.CustomerID = in.CustomerID
		}
		if job.ContactEmail == "" && job.CustomerID == caller.UserID {
			job.ContactEmail = entities.NormalizeEmail(caller.Email)
		}
		job.Status = entities.JobRequestStatusOpen
	}

	created, err := u.repo.Create(ctx, job)
	if err != nil {
		u.logger.Error("create failed", zap.String("job_request_id", job.ID), zap.Error(err))
		return entities.JobRequest{}, err
	}
	u.logger.Info("job request created",
		zap.String("job_request_id", created.ID),
		zap.String("status", string(created.Status)),
		zap.String("category", created.Category),
	)
	return created, nil
}

func (u *JobRequestUseCase) GetByID(ctx context.Context, caller *entities.Caller, id string) (entities.JobRequest, error) {
	job, err := loadJobRequest(ctx, u.repo, id)
	if err != nil {
		return entities.JobRequest{}, err
	}
	if job.Status == entities.JobRequestStatusDraft && !caller.IsAdmin() {
		return entities.JobRequest{}, ErrJobRequestNotFound
	}
	return job, nil
}

func (u *JobRequestUseCase) List(ctx context.Context, caller *entities.Caller, q ListJobRequestsQuery) (JobRequestPage, error) {
	if q.Status != "" && !q.Status.Valid() {
		return JobRequestPage{}, fmt.Errorf("%w: unknown status %q", ErrInvalidQuery, q.Status)
	}
	if q.Priority != "" && !q.Priority.Valid() {
		return JobRequestPage{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidQuery, q.Priority)
	}
	if q.BudgetMin < 0 || q.BudgetMax < 0 {
		return JobRequestPage{}, fmt.Errorf("%w: budget filters must be non-negative", ErrInvalidQuery)
	}
	page, limit := normalizePage(q.Page, q.Limit)

	filter := interfaces.JobRequestFilter{
		Category:      strings.ToLower(strings.TrimSpace(q.Category)),
		Subcategory:   strings.ToLower(strings.TrimSpace(q.Subcategory)),
		Postcode:      NormalizePostcode(q.Postcode),
		Status:        q.Status,
		Priority:      q.Priority,
		BudgetMin:     q.BudgetMin,
		BudgetMax:     q.BudgetMax,
		IncludeDrafts: caller.IsAdmin(),
	}
	if q.CustomerOnly {
		if err := access.Authorize(caller, access.OpListOwnJobRequests); err != nil {
			return JobRequestPage{}, err
		}
		filter.CustomerID = caller.UserID
	}
	if filter.Status == entities.JobRequestStatusDraft && !filter.IncludeDrafts {
		return JobRequestPage{Items: []entities.JobRequest{}, Page: page, Limit: limit}, nil
	}

	jobs, err := u.repo.List(ctx, filter)
	if err != nil {
		return JobRequestPage{}, err
	}
	sort.SliceStable(jobs, func(i, j int) bool { return jobs[i].PostedAt.After(jobs[j].PostedAt) })

	return JobRequestPage{Items: paginate(jobs, page, limit), Page: page, Limit: limit, Total: len(jobs)}, nil
}

func (u *JobRequestUseCase) Update(ctx context.Context, caller *entities.Caller, id string, in UpdateJobRequestInput) (entities.JobRequest, error) {
	if err := access.RequireAuthenticated(caller); err != nil {
		return entities.JobRequest{}, err
	}
	in = normalizeUpdateJobRequest(in)
	if err := validate.Struct(in); err != nil {
		return entities.JobRequest{}, validationError(ErrInvalidJobRequest, err)
	}

	updated, err := mutateJobRequest(ctx, u.repo, id, func(job entities.JobRequest) (entities.JobRequest, error) {
		if err := authorizeJobOwner(caller, access.OpUpdateJobRequest, job); err != nil {
			return job, err
		}
		if !job.Status.Editable() {
			return job, fmt.Errorf("%w: job request is %s", ErrInvalidJobRequestState, job.Status)
		}
		if in.CustomerID != nil && *in.CustomerID != job.CustomerID {
			return job, fmt.Errorf("%w: customer_id is only set by linking draft job requests", ErrImmutableField)
		}
		if in.Status != nil && *in.Status != string(job.Status) {
			return job, fmt.Errorf("%w: status changes go through the lifecycle endpoints", ErrImmutableField)
		}
		return applyJobRequestPatch(job, in, u.now())
	})
	if err != nil {
		return entities.JobRequest{}, err
	}
	u.logger.Info("job request updated", zap.String("job_request_id", updated.ID), zap.Int64("version", updated.Version))
	return updated, nil
}

func applyJobRequestPatch(job entities.JobRequest, in UpdateJobRequestInput, now time.Time) (entities.JobRequest, error) {
	if in.Category != nil {
		job.Category = *in.Category
		if in.Subcategory == nil {
			job.Subcategory = ""
		}
	}
	if in.Subcategory != nil {
		job.Subcategory = *in.Subcategory
	}
	if !entities.ValidSubcategory(job.Category, job.Subcategory) {
		return job, fmt.Errorf("%w: subcategory %q is not part of %q", ErrInvalidJobRequest, job.Subcategory, job.Category)
	}
	if in.Title != nil {
		job.Title = *in.Title
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.Postcode != nil {
		job.Postcode = *in.Postcode
	}
	if in.Address != nil {
		job.Address = *in.Address
	}
	if in.Priority != nil {
		job.Priority = *in.Priority
	}
	if in.BudgetMin != nil {
		job.BudgetMin = *in.BudgetMin
	}
	if in.BudgetMax != nil {
		job.BudgetMax = *in.BudgetMax
	}
	if job.BudgetMax > 0 && job.BudgetMax < job.BudgetMin {
		return job, fmt.Errorf("%w: budget_max must be greater than or equal to budget_min", ErrInvalidJobRequest)
	}
	if in.ContactEmail != nil {
		job.ContactEmail = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		job.ContactPhone = *in.ContactPhone
	}
	if in.ContactName != nil {
		job.ContactName = *in.ContactName
	}
	if in.MaxQuotes != nil {
		if *in.MaxQuotes < job.QuotesCount {
			return job, fmt.Errorf("%w: max_quotes cannot be lower than the %d quotes already received", ErrInvalidJobRequest, job.QuotesCount)
		}
		job.MaxQuotes = *in.MaxQuotes
	}
	job.UpdatedAt = now
	return job, nil
}

func normalizeCreateJobRequest(in CreateJobRequestInput) CreateJobRequestInput {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.Subcategory = strings.ToLower(strings.TrimSpace(in.Subcategory))
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Postcode = NormalizePostcode(in.Postcode)
	in.Address = strings.TrimSpace(in.Address)
	in.ContactEmail = entities.NormalizeEmail(in.ContactEmail)
	in.ContactPhone = strings.TrimSpace(in.ContactPhone)
	in.ContactName = strings.TrimSpace(in.ContactName)
	if in.Priority == "" {
		in.Priority = entities.JobPriorityMedium
	}
	if in.MaxQuotes == 0 {
		in.MaxQuotes = entities.DefaultMaxQuotes
	}
	return in
}

func normalizeUpdateJobRequest(in UpdateJobRequestInput) UpdateJobRequestInput {
	trim := func(p *string, f func(string) string) *string {
		if p == nil {
			return nil
		}
		v := f(*p)
		return &v
	}
	lower := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	in.Category = trim(in.Category, lower)
	in.Subcategory = trim(in.Subcategory, lower)
	in.Title = trim(in.Title, strings.TrimSpace)
	in.Description = trim(in.Description, strings.TrimSpace)
	in.Postcode = trim(in.Postcode, NormalizePostcode)
	in.Address = trim(in.Address, strings.TrimSpace)
	in.ContactEmail = trim(in.ContactEmail, entities.NormalizeEmail)
	in.ContactPhone = trim(in.ContactPhone, strings.TrimSpace)
	in.ContactName = trim(in.ContactName, strings.TrimSpace)
	in.CustomerID = trim(in.CustomerID, strings.TrimSpace)
	in.Status = trim(in.Status, strings.TrimSpace)
	return in
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func paginate[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
