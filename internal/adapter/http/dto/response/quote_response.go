package response

import (
	"time"

	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase"
)

type QuoteResponse struct {
	ID                string     `json:"id"`
	JobRequestID      string     `json:"job_request_id"`
	ProfessionalID    string     `json:"professional_id"`
	CustomerID        string     `json:"customer_id"`
	Amount            int64      `json:"amount"`
	Message           string     `json:"message,omitempty"`
	EstimatedDuration string     `json:"estimated_duration,omitempty"`
	MaterialsCost     int64      `json:"materials_cost,omitempty"`
	LaborCost         int64      `json:"labor_cost,omitempty"`
	IncludesMaterials bool       `json:"includes_materials"`
	Status            string     `json:"status"`
	ExpiresAt         time.Time  `json:"expires_at"`
	AcceptedAt        *time.Time `json:"accepted_at,omitempty"`
	DeclinedAt        *time.Time `json:"declined_at,omitempty"`
	WithdrawnAt       *time.Time `json:"withdrawn_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:                q.ID,
		JobRequestID:      q.JobRequestID,
		ProfessionalID:    q.ProfessionalID,
		CustomerID:        q.CustomerID,
		Amount:            q.Amount,
		Message:           q.Message,
		EstimatedDuration: q.EstimatedDuration,
		MaterialsCost:     q.MaterialsCost,
		LaborCost:         q.LaborCost,
		IncludesMaterials: q.IncludesMaterials,
		Status:            string(q.Status),
		ExpiresAt:         q.ExpiresAt,
		AcceptedAt:        q.AcceptedAt,
		DeclinedAt:        q.DeclinedAt,
		WithdrawnAt:       q.WithdrawnAt,
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
	}
}

func FromQuotes(qs []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, FromQuote(q))
	}
	return out
}

type AcceptQuoteResponse struct {
	Quote            QuoteResponse      `json:"quote"`
	JobRequest       JobRequestResponse `json:"job_request"`
	DeclinedQuoteIDs []string           `json:"declined_quote_ids"`
}

func FromAcceptQuoteResult(r usecase.AcceptQuoteResult) AcceptQuoteResponse {
	return AcceptQuoteResponse{
		Quote:            FromQuote(r.Quote),
		JobRequest:       FromJobRequest(r.JobRequest),
		DeclinedQuoteIDs: nonNil(r.DeclinedQuoteIDs),
	}
}

type ReconcileResponse struct {
	JobRequest       JobRequestResponse `json:"job_request"`
	DeclinedQuoteIDs []string           `json:"declined_quote_ids"`
}

func FromReconcileResult(r usecase.ReconcileResult) ReconcileResponse {
	return ReconcileResponse{
		JobRequest:       FromJobRequest(r.JobRequest),
		DeclinedQuoteIDs: nonNil(r.DeclinedQuoteIDs),
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
