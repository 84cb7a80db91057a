package entities

import "time"

// QuoteStatus represents the lifecycle of a quote. All states but pending are terminal.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusDeclined  QuoteStatus = "declined"
	QuoteStatusWithdrawn QuoteStatus = "withdrawn"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusAccepted, QuoteStatusDeclined, QuoteStatusWithdrawn:
		return true
	}
	return false
}

// Active quotes count against a job's quotes_count.
func (s QuoteStatus) Active() bool {
	return s == QuoteStatusPending || s == QuoteStatusAccepted
}

func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	if s != QuoteStatusPending {
		return false
	}
	return target == QuoteStatusAccepted || target == QuoteStatusDeclined || target == QuoteStatusWithdrawn
}

// Quote is a professional's priced bid against a job request.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI job_request_id-index: job_request_id / created_at
//   - GSI professional_id-index: professional_id / created_at
//   - GSI customer_id-index: customer_id / created_at
//
// Amounts are integer minor units.
type Quote struct {
	ID                string `json:"id"`
	JobRequestID      string `json:"job_request_id"`
	ProfessionalID    string `json:"professional_id"`
	CustomerID        string `json:"customer_id"`
	Amount            int64  `json:"amount"`
	Message           string `json:"message,omitempty"`
	EstimatedDuration string `json:"estimated_duration,omitempty"`
	MaterialsCost     int64  `json:"materials_cost,omitempty"`
	LaborCost         int64  `json:"labor_cost,omitempty"`
	IncludesMaterials bool   `json:"includes_materials"`

	ExpiresAt time.Time   `json:"expires_at"`
	Status    QuoteStatus `json:"status"`

	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	DeclinedAt  *time.Time `json:"declined_at,omitempty"`
	WithdrawnAt *time.Time `json:"withdrawn_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (q Quote) ExpiredAt(now time.Time) bool {
	return !q.ExpiresAt.IsZero() && now.After(q.ExpiresAt)
}

// IsParticipant reports whether userID is the bidding professional or the job owner.
func (q Quote) IsParticipant(userID string) bool {
	return userID != "" && (q.ProfessionalID == userID || q.CustomerID == userID)
}

// WithStatus returns a copy of q moved to status at now, stamping the matching timestamp.
func (q Quote) WithStatus(status QuoteStatus, now time.Time) Quote {
	q.Status = status
	q.UpdatedAt = now
	switch status {
	case QuoteStatusAccepted:
		q.AcceptedAt = &now
	case QuoteStatusDeclined:
		q.DeclinedAt = &now
	case QuoteStatusWithdrawn:
		q.WithdrawnAt = &now
	}
	return q
}
