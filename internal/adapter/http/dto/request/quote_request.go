package request

import (
	"time"

	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase"
)

type CreateQuoteRequest struct {
	JobRequestID      string     `json:"job_request_id"`
	ProfessionalID    string     `json:"professional_id"`
	Amount            int64      `json:"amount"`
	Message           string     `json:"message"`
	EstimatedDuration string     `json:"estimated_duration"`
	MaterialsCost     int64      `json:"materials_cost"`
	LaborCost         int64      `json:"labor_cost"`
	IncludesMaterials bool       `json:"includes_materials"`
	ExpiresAt         *time.Time `json:"expires_at"`
}

func (r CreateQuoteRequest) ToInput() usecase.CreateQuoteInput {
	return usecase.CreateQuoteInput{
		JobRequestID:      r.JobRequestID,
		ProfessionalID:    r.ProfessionalID,
		Amount:            r.Amount,
		Message:           r.Message,
		EstimatedDuration: r.EstimatedDuration,
		MaterialsCost:     r.MaterialsCost,
		LaborCost:         r.LaborCost,
		IncludesMaterials: r.IncludesMaterials,
		ExpiresAt:         r.ExpiresAt,
	}
}

type UpdateQuoteRequest struct {
	Amount            *int64     `json:"amount"`
	Message           *string    `json:"message"`
	EstimatedDuration *string    `json:"estimated_duration"`
	MaterialsCost     *int64     `json:"materials_cost"`
	LaborCost         *int64     `json:"labor_cost"`
	IncludesMaterials *bool      `json:"includes_materials"`
	ExpiresAt         *time.Time `json:"expires_at"`
}

func (r UpdateQuoteRequest) ToInput() usecase.UpdateQuoteInput {
	return usecase.UpdateQuoteInput{
		Amount:            r.Amount,
		Message:           r.Message,
		EstimatedDuration: r.EstimatedDuration,
		MaterialsCost:     r.MaterialsCost,
		LaborCost:         r.LaborCost,
		IncludesMaterials: r.IncludesMaterials,
		ExpiresAt:         r.ExpiresAt,
	}
}

// ListQuotesRequest binds the GET /v1/quotes query string.
type ListQuotesRequest struct {
	JobRequestID   string `form:"job_request_id"`
	ProfessionalID string `form:"professional_id"`
	CustomerID     string `form:"customer_id"`
	Status         string `form:"status" binding:"omitempty,oneof=pending accepted declined withdrawn"`
	MyQuotes       bool   `form:"my_quotes"`
}

func (r ListQuotesRequest) ToQuery() usecase.ListQuotesQuery {
	return usecase.ListQuotesQuery{
		JobRequestID:   r.JobRequestID,
		ProfessionalID: r.ProfessionalID,
		CustomerID:     r.CustomerID,
		Status:         entities.QuoteStatus(r.Status),
		MyQuotes:       r.MyQuotes,
	}
}
