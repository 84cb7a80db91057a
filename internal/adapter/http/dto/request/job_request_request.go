package request

import (
	"errors"

	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase"
)

var (
	// ErrContactEmailMismatch is returned when a payload carries both the
	// contact_email field and the legacy email field with different values.
	ErrContactEmailMismatch = errors.New("contact_email and email disagree")
)

// CreateJobRequestRequest is the payload for POST /v1/job-requests.
//
// Email is the legacy name of ContactEmail still sent by the guest wizard.
type CreateJobRequestRequest struct {
	CustomerID   string `json:"customer_id"`
	Category     string `json:"category"`
	Subcategory  string `json:"subcategory"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Postcode     string `json:"postcode"`
	Address      string `json:"address"`
	Priority     string `json:"priority"`
	BudgetMin    int64  `json:"budget_min"`
	BudgetMax    int64  `json:"budget_max"`
	ContactEmail string `json:"contact_email"`
	Email        string `json:"email"`
	ContactPhone string `json:"contact_phone"`
	ContactName  string `json:"contact_name"`
	MaxQuotes    int    `json:"max_quotes"`
}

func (r CreateJobRequestRequest) ResolveContactEmail() (string, error) {
	return resolveContactEmail(r.ContactEmail, r.Email)
}

func (r CreateJobRequestRequest) ToInput() (usecase.CreateJobRequestInput, error) {
	email, err := r.ResolveContactEmail()
	if err != nil {
		return usecase.CreateJobRequestInput{}, err
	}
	return usecase.CreateJobRequestInput{
		CustomerID:   r.CustomerID,
		Category:     r.Category,
		Subcategory:  r.Subcategory,
		Title:        r.Title,
		Description:  r.Description,
		Postcode:     r.Postcode,
		Address:      r.Address,
		Priority:     entities.JobPriority(r.Priority),
		BudgetMin:    r.BudgetMin,
		BudgetMax:    r.BudgetMax,
		ContactEmail: email,
		ContactPhone: r.ContactPhone,
		ContactName:  r.ContactName,
		MaxQuotes:    r.MaxQuotes,
	}, nil
}

// UpdateJobRequestRequest is the payload for PUT /v1/job-requests/:id.
// Absent fields are left unchanged.
type UpdateJobRequestRequest struct {
	Category     *string `json:"category"`
	Subcategory  *string `json:"subcategory"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Postcode     *string `json:"postcode"`
	Address      *string `json:"address"`
	Priority     *string `json:"priority"`
	BudgetMin    *int64  `json:"budget_min"`
	BudgetMax    *int64  `json:"budget_max"`
	ContactEmail *string `json:"contact_email"`
	Email        *string `json:"email"`
	ContactPhone *string `json:"contact_phone"`
	ContactName  *string `json:"contact_name"`
	MaxQuotes    *int    `json:"max_quotes"`
	CustomerID   *string `json:"customer_id"`
	Status       *string `json:"status"`
}

func (r UpdateJobRequestRequest) ResolveContactEmail() (*string, error) {
	if r.ContactEmail == nil && r.Email == nil {
		return nil, nil
	}
	var contact, legacy string
	if r.ContactEmail != nil {
		contact = *r.ContactEmail
	}
	if r.Email != nil {
		legacy = *r.Email
	}
	email, err := resolveContactEmail(contact, legacy)
	if err != nil {
		return nil, err
	}
	return &email, nil
}

func (r UpdateJobRequestRequest) ToInput() (usecase.UpdateJobRequestInput, error) {
	email, err := r.ResolveContactEmail()
	if err != nil {
		return usecase.UpdateJobRequestInput{}, err
	}
	in := usecase.UpdateJobRequestInput{
		Category:     r.Category,
		Subcategory:  r.Subcategory,
		Title:        r.Title,
		Description:  r.Description,
		Postcode:     r.Postcode,
		Address:      r.Address,
		BudgetMin:    r.BudgetMin,
		BudgetMax:    r.BudgetMax,
		ContactEmail: email,
		ContactPhone: r.ContactPhone,
		ContactName:  r.ContactName,
		MaxQuotes:    r.MaxQuotes,
		CustomerID:   r.CustomerID,
		Status:       r.Status,
	}
	if r.Priority != nil {
		p := entities.JobPriority(*r.Priority)
		in.Priority = &p
	}
	return in, nil
}

// ListJobRequestsRequest binds the GET /v1/job-requests query string.
type ListJobRequestsRequest struct {
	Category     string `form:"category"`
	Subcategory  string `form:"subcategory"`
	Postcode     string `form:"postcode" binding:"omitempty,max=8"`
	Status       string `form:"status"`
	Priority     string `form:"priority"`
	BudgetMin    int64  `form:"budget_min" binding:"gte=0"`
	BudgetMax    int64  `form:"budget_max" binding:"gte=0"`
	CustomerOnly bool   `form:"customer_only"`
	Page         int    `form:"page" binding:"gte=0"`
	Limit        int    `form:"limit" binding:"gte=0,lte=100"`
}

func (r ListJobRequestsRequest) ToQuery() usecase.ListJobRequestsQuery {
	return usecase.ListJobRequestsQuery{
		Category:     r.Category,
		Subcategory:  r.Subcategory,
		Postcode:     r.Postcode,
		Status:       entities.JobRequestStatus(r.Status),
		Priority:     entities.JobPriority(r.Priority),
		BudgetMin:    r.BudgetMin,
		BudgetMax:    r.BudgetMax,
		CustomerOnly: r.CustomerOnly,
		Page:         r.Page,
		Limit:        r.Limit,
	}
}

// resolveContactEmail merges the canonical and legacy email fields. Both are
// normalised before comparison.
func resolveContactEmail(contact, legacy string) (string, error) {
	contact = entities.NormalizeEmail(contact)
	legacy = entities.NormalizeEmail(legacy)
	switch {
	case contact != "" && legacy != "" && contact != legacy:
		return "", ErrContactEmailMismatch
	case contact != "":
		return contact, nil
	default:
		return legacy, nil
	}
}
