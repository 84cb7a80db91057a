package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase/interfaces"
)

// memStore is an in-memory job request and quote store with the same
// conditional-write semantics as the DynamoDB repositories.
type memStore struct {
	mu     sync.Mutex
	jobs   map[string]entities.JobRequest
	quotes map[string]entities.Quote

	// failQuoteUpdate makes single-quote updates fail for the given ids.
	failQuoteUpdate map[string]error
}

var (
	_ interfaces.IJobRequestRepository = (*memStore)(nil)
	_ interfaces.IQuoteRepository      = (*memQuotes)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		jobs:            map[string]entities.JobRequest{},
		quotes:          map[string]entities.Quote{},
		failQuoteUpdate: map[string]error{},
	}
}

// memQuotes is the quote side of memStore. Both repository interfaces
// declare GetByID and List, so they live on distinct types.
type memQuotes struct{ s *memStore }

func (s *memStore) Quotes() *memQuotes { return &memQuotes{s: s} }

func (s *memStore) Create(_ context.Context, j entities.JobRequest) (entities.JobRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[j.ID]; ok {
		return entities.JobRequest{}, interfaces.ErrAlreadyExists
	}
	s.jobs[j.ID] = j
	return j, nil
}

func (s *memStore) GetByID(_ context.Context, id string) (entities.JobRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id], nil
}

func (s *memStore) List(_ context.Context, f interfaces.JobRequestFilter) ([]entities.JobRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []entities.JobRequest{}
	for _, j := range s.jobs {
		if j.Status == entities.JobRequestStatusDraft && !f.IncludeDrafts {
			continue
		}
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.Category != "" && j.Category != f.Category {
			continue
		}
		if f.CustomerID != "" && j.CustomerID != f.CustomerID {
			continue
		}
		if f.Postcode != "" && !strings.HasPrefix(j.Postcode, f.Postcode) {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (s *memStore) ListDraftsByContactEmail(_ context.Context, email string) ([]entities.JobRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []entities.JobRequest{}
	for _, j := range s.jobs {
		if j.ContactEmail == email && j.Status == entities.JobRequestStatusDraft {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *memStore) Save(_ context.Context, j entities.JobRequest, expectedVersion int64) (entities.JobRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveJobLocked(j, expectedVersion)
}

func (s *memStore) saveJobLocked(j entities.JobRequest, expectedVersion int64) (entities.JobRequest, error) {
	current, ok := s.jobs[j.ID]
	if !ok || current.Version != expectedVersion {
		return entities.JobRequest{}, interfaces.ErrStaleJobRequest
	}
	j.Version = expectedVersion + 1
	s.jobs[j.ID] = j
	return j, nil
}

func (q *memQuotes) CreateWithJobRequest(_ context.Context, quote entities.Quote, job entities.JobRequest, expectedJobVersion int64) (entities.Quote, entities.JobRequest, error) {
	s := q.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quotes[quote.ID]; ok {
		return entities.Quote{}, entities.JobRequest{}, interfaces.ErrStaleQuote
	}
	saved, err := s.saveJobLocked(job, expectedJobVersion)
	if err != nil {
		return entities.Quote{}, entities.JobRequest{}, err
	}
	s.quotes[quote.ID] = quote
	return quote, saved, nil
}

func (q *memQuotes) GetByID(_ context.Context, id string) (entities.Quote, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	return q.s.quotes[id], nil
}

func (q *memQuotes) List(_ context.Context, f interfaces.QuoteFilter) ([]entities.Quote, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	out := []entities.Quote{}
	for _, v := range q.s.quotes {
		if f.JobRequestID != "" && v.JobRequestID != f.JobRequestID {
			continue
		}
		if f.ProfessionalID != "" && v.ProfessionalID != f.ProfessionalID {
			continue
		}
		if f.CustomerID != "" && v.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (q *memQuotes) ListByJobRequestID(ctx context.Context, jobRequestID string) ([]entities.Quote, error) {
	return q.List(ctx, interfaces.QuoteFilter{JobRequestID: jobRequestID})
}

func (q *memQuotes) Update(_ context.Context, quote, expected entities.Quote) (entities.Quote, error) {
	s := q.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failQuoteUpdate[quote.ID]; err != nil {
		return entities.Quote{}, err
	}
	if !s.quoteUnchangedLocked(expected) {
		return entities.Quote{}, interfaces.ErrStaleQuote
	}
	s.quotes[quote.ID] = quote
	return quote, nil
}

func (q *memQuotes) UpdateWithJobRequest(_ context.Context, quote, expected entities.Quote, job entities.JobRequest, expectedJobVersion int64) (entities.Quote, entities.JobRequest, error) {
	s := q.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.quoteUnchangedLocked(expected) {
		return entities.Quote{}, entities.JobRequest{}, interfaces.ErrStaleQuote
	}
	saved, err := s.saveJobLocked(job, expectedJobVersion)
	if err != nil {
		return entities.Quote{}, entities.JobRequest{}, err
	}
	s.quotes[quote.ID] = quote
	return quote, saved, nil
}

func (s *memStore) quoteUnchangedLocked(expected entities.Quote) bool {
	current, ok := s.quotes[expected.ID]
	return ok && current.Status == expected.Status && current.UpdatedAt.Equal(expected.UpdatedAt)
}

func (s *memStore) activeQuotes(jobID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, q := range s.quotes {
		if q.JobRequestID == jobID && q.Status.Active() {
			n++
		}
	}
	return n
}

// recordingNotifier captures events in order.
type recordingNotifier struct {
	mu     sync.Mutex
	events []entities.QuoteEvent
	codes  map[string]string
	err    error
}

func (n *recordingNotifier) NotifyQuote(_ context.Context, e entities.QuoteEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return n.err
}

func (n *recordingNotifier) SendLoginCode(_ context.Context, email, code string, _ time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.codes == nil {
		n.codes = map[string]string{}
	}
	n.codes[email] = code
	return n.err
}

func (n *recordingNotifier) types() []entities.QuoteEventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]entities.QuoteEventType, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}
