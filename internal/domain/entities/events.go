package entities

import "time"

type QuoteEventType string

const (
	QuoteEventSubmitted QuoteEventType = "submitted"
	QuoteEventAccepted  QuoteEventType = "accepted"
	QuoteEventDeclined  QuoteEventType = "declined"
	QuoteEventWithdrawn QuoteEventType = "withdrawn"
)

// QuoteEvent is published whenever a quote is created or leaves pending.
type QuoteEvent struct {
	Type           QuoteEventType `json:"type"`
	QuoteID        string         `json:"quote_id"`
	JobRequestID   string         `json:"job_request_id"`
	ProfessionalID string         `json:"professional_id"`
	CustomerID     string         `json:"customer_id"`
	Amount         int64          `json:"amount"`
	OccurredAt     time.Time      `json:"occurred_at"`
}

// NewQuoteEvent builds the event for q.
func NewQuoteEvent(t QuoteEventType, q Quote, at time.Time) QuoteEvent {
	return QuoteEvent{
		Type:           t,
		QuoteID:        q.ID,
		JobRequestID:   q.JobRequestID,
		ProfessionalID: q.ProfessionalID,
		CustomerID:     q.CustomerID,
		Amount:         q.Amount,
		OccurredAt:     at,
	}
}
