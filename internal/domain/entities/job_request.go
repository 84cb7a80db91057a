package entities

import "time"

// JobRequestStatus represents the lifecycle of a job request.
//
//	draft --(linked/submitted)--> open --(quote created)--> quoted --(quote accepted)--> accepted --(work finished)--> completed
//	open/quoted --(customer cancels)--> cancelled
//
// A quoted job goes back to open when its last active quote is withdrawn or declined.
type JobRequestStatus string

const (
	JobRequestStatusDraft     JobRequestStatus = "draft"
	JobRequestStatusOpen      JobRequestStatus = "open"
	JobRequestStatusQuoted    JobRequestStatus = "quoted"
	JobRequestStatusAccepted  JobRequestStatus = "accepted"
	JobRequestStatusCompleted JobRequestStatus = "completed"
	JobRequestStatusCancelled JobRequestStatus = "cancelled"
)

// DefaultMaxQuotes is applied when a job request does not set max_quotes.
const DefaultMaxQuotes = 10

func (s JobRequestStatus) Valid() bool {
	switch s {
	case JobRequestStatusDraft, JobRequestStatusOpen, JobRequestStatusQuoted,
		JobRequestStatusAccepted, JobRequestStatusCompleted, JobRequestStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows s -> target.
func (s JobRequestStatus) CanTransitionTo(target JobRequestStatus) bool {
	switch s {
	case JobRequestStatusDraft:
		return target == JobRequestStatusOpen
	case JobRequestStatusOpen:
		return target == JobRequestStatusQuoted || target == JobRequestStatusCancelled
	case JobRequestStatusQuoted:
		return target == JobRequestStatusAccepted ||
			target == JobRequestStatusCancelled ||
			target == JobRequestStatusOpen
	case JobRequestStatusAccepted:
		return target == JobRequestStatusCompleted
	}
	return false
}

// AcceptsQuotes reports whether professionals may still bid on the job.
func (s JobRequestStatus) AcceptsQuotes() bool {
	return s == JobRequestStatusOpen || s == JobRequestStatusQuoted
}

// Editable reports whether the job details may still be patched.
func (s JobRequestStatus) Editable() bool {
	return s == JobRequestStatusDraft || s == JobRequestStatusOpen || s == JobRequestStatusQuoted
}

type JobPriority string

const (
	JobPriorityLow    JobPriority = "low"
	JobPriorityMedium JobPriority = "medium"
	JobPriorityHigh   JobPriority = "high"
	JobPriorityUrgent JobPriority = "urgent"
)

func (p JobPriority) Valid() bool {
	switch p {
	case JobPriorityLow, JobPriorityMedium, JobPriorityHigh, JobPriorityUrgent:
		return true
	}
	return false
}

// JobRequest is a unit of work a customer wants performed.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI status-index: status / posted_at
//   - GSI customer_id-index: customer_id / posted_at
//   - GSI contact_email-index: contact_email
//
// Version is incremented on every write and every write is conditioned on
// the version the writer read.
type JobRequest struct {
	ID          string      `json:"id"`
	CustomerID  string      `json:"customer_id,omitempty"`
	Category    string      `json:"category"`
	Subcategory string      `json:"subcategory,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Postcode    string      `json:"postcode"`
	Address     string      `json:"address,omitempty"`
	Priority    JobPriority `json:"priority"`
	BudgetMin   int64       `json:"budget_min,omitempty"`
	BudgetMax   int64       `json:"budget_max,omitempty"`

	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`

	Status                 JobRequestStatus `json:"status"`
	QuotesCount            int              `json:"quotes_count"`
	MaxQuotes              int              `json:"max_quotes"`
	AcceptedQuoteID        string           `json:"accepted_quote_id,omitempty"`
	AssignedProfessionalID string           `json:"assigned_professional_id,omitempty"`
	Version                int64            `json:"version"`

	PostedAt    time.Time  `json:"posted_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// IsOwnedBy reports whether userID is the owning customer.
func (j JobRequest) IsOwnedBy(userID string) bool {
	return j.CustomerID != "" && j.CustomerID == userID
}

// HasQuoteCapacity reports whether another quote may be submitted.
func (j JobRequest) HasQuoteCapacity() bool {
	return j.QuotesCount < j.MaxQuotes
}
