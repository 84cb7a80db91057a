package response

import (
	"time"

	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase"
)

type JobRequestResponse struct {
	ID                     string     `json:"id"`
	CustomerID             string     `json:"customer_id,omitempty"`
	Category               string     `json:"category"`
	Subcategory            string     `json:"subcategory,omitempty"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	Postcode               string     `json:"postcode"`
	Address                string     `json:"address,omitempty"`
	Priority               string     `json:"priority"`
	BudgetMin              int64      `json:"budget_min,omitempty"`
	BudgetMax              int64      `json:"budget_max,omitempty"`
	ContactEmail           string     `json:"contact_email,omitempty"`
	ContactPhone           string     `json:"contact_phone,omitempty"`
	ContactName            string     `json:"contact_name,omitempty"`
	Status                 string     `json:"status"`
	QuotesCount            int        `json:"quotes_count"`
	MaxQuotes              int        `json:"max_quotes"`
	AcceptedQuoteID        string     `json:"accepted_quote_id,omitempty"`
	AssignedProfessionalID string     `json:"assigned_professional_id,omitempty"`
	Version                int64      `json:"version"`
	PostedAt               time.Time  `json:"posted_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
	CompletedAt            *time.Time `json:"completed_at,omitempty"`
	CancelledAt            *time.Time `json:"cancelled_at,omitempty"`
}

func FromJobRequest(j entities.JobRequest) JobRequestResponse {
	return JobRequestResponse{
		ID:                     j.ID,
		CustomerID:             j.CustomerID,
		Category:               j.Category,
		Subcategory:            j.Subcategory,
		Title:                  j.Title,
		Description:            j.Description,
		Postcode:               j.Postcode,
		Address:                j.Address,
		Priority:               string(j.Priority),
		BudgetMin:              j.BudgetMin,
		BudgetMax:              j.BudgetMax,
		ContactEmail:           j.ContactEmail,
		ContactPhone:           j.ContactPhone,
		ContactName:            j.ContactName,
		Status:                 string(j.Status),
		QuotesCount:            j.QuotesCount,
		MaxQuotes:              j.MaxQuotes,
		AcceptedQuoteID:        j.AcceptedQuoteID,
		AssignedProfessionalID: j.AssignedProfessionalID,
		Version:                j.Version,
		PostedAt:               j.PostedAt,
		UpdatedAt:              j.UpdatedAt,
		CompletedAt:            j.CompletedAt,
		CancelledAt:            j.CancelledAt,
	}
}

type JobRequestListResponse struct {
	Items []JobRequestResponse `json:"items"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
	Total int                  `json:"total"`
}

func FromJobRequestPage(p usecase.JobRequestPage) JobRequestListResponse {
	items := make([]JobRequestResponse, 0, len(p.Items))
	for _, j := range p.Items {
		items = append(items, FromJobRequest(j))
	}
	return JobRequestListResponse{Items: items, Page: p.Page, Limit: p.Limit, Total: p.Total}
}

type LinkDraftJobsResponse struct {
	Linked int `json:"linked"`
}
