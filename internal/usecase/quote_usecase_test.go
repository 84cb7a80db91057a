package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"trades_marketplace/internal/domain/access"
	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase/interfaces"
	mock_interfaces "trades_marketplace/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type quoteDeps struct {
	quotes   *mock_interfaces.MockIQuoteRepository
	jobs     *mock_interfaces.MockIJobRequestRepository
	notifier *mock_interfaces.MockINotifier
	metrics  *mock_interfaces.MockIMetrics
}

func newQuoteUseCase(t *testing.T) (*QuoteUseCase, quoteDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := quoteDeps{
		quotes:   mock_interfaces.NewMockIQuoteRepository(ctrl),
		jobs:     mock_interfaces.NewMockIJobRequestRepository(ctrl),
		notifier: mock_interfaces.NewMockINotifier(ctrl),
		metrics:  mock_interfaces.NewMockIMetrics(ctrl),
	}
	uc := NewQuoteUseCase(d.quotes, d.jobs, d.notifier, d.metrics, nil, 0)
	uc.now = func() time.Time { return fixedNow }
	return uc, d
}

func openJob() entities.JobRequest {
	return entities.JobRequest{
		ID:         "job-1",
		CustomerID: "cust-1",
		Category:   "plumbing",
		Status:     entities.JobRequestStatusOpen,
		MaxQuotes:  10,
		Version:    2,
	}
}

func TestQuoteUseCase_Create(t *testing.T) {
	input := CreateQuoteInput{JobRequestID: "job-1", Amount: 75000, Message: "Can start Monday"}

	t.Run("customers cannot quote", func(t *testing.T) {
		uc, _ := newQuoteUseCase(t)
		_, err := uc.Create(context.Background(), customerC, input)
		assert.ErrorIs(t, err, access.ErrForbidden)
	})

	t.Run("amount must be positive", func(t *testing.T) {
		uc, _ := newQuoteUseCase(t)
		in := input
		in.Amount = 0
		_, err := uc.Create(context.Background(), proP1, in)
		assert.ErrorIs(t, err, ErrInvalidQuote)
	})

	t.Run("expiry in the past", func(t *testing.T) {
		uc, _ := newQuoteUseCase(t)
		in := input
		past := fixedNow.Add(-time.Minute)
		in.ExpiresAt = &past
		_, err := uc.Create(context.Background(), proP1, in)
		assert.ErrorIs(t, err, ErrInvalidQuote)
	})

	t.Run("duplicate active quote", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(openJob(), nil)
		d.quotes.EXPECT().List(gomock.Any(), interfaces.QuoteFilter{JobRequestID: "job-1", ProfessionalID: "pro-1"}).
			Return([]entities.Quote{{ID: "q-0", Status: entities.QuoteStatusPending}}, nil)

		_, err := uc.Create(context.Background(), proP1, input)
		assert.ErrorIs(t, err, ErrDuplicateQuote)
	})

	t.Run("own job request", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		job := openJob()
		job.CustomerID = "pro-1"
		d.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(job, nil)

		_, err := uc.Create(context.Background(), proP1, input)
		assert.ErrorIs(t, err, access.ErrForbidden)
	})

	t.Run("active quote reserved by a concurrent submission", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(openJob(), nil)
		d.quotes.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
		d.quotes.EXPECT().CreateWithJobRequest(gomock.Any(), gomock.Any(), gomock.Any(), int64(2)).
			Return(entities.Quote{}, entities.JobRequest{}, interfaces.ErrActiveQuoteExists)

		_, err := uc.Create(context.Background(), proP1, input)
		assert.ErrorIs(t, err, ErrDuplicateQuote)
	})

	t.Run("job not accepting quotes", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		job := openJob()
		job.Status = entities.JobRequestStatusAccepted
		d.quotes.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
		d.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(job, nil)

		_, err := uc.Create(context.Background(), proP1, input)
		assert.ErrorIs(t, err, ErrJobRequestNotAcceptingQuotes)
	})

	t.Run("job at capacity", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		job := openJob()
		job.Status = entities.JobRequestStatusQuoted
		job.QuotesCount = 10
		d.quotes.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
		d.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(job, nil)

		_, err := uc.Create(context.Background(), proP1, input)
		assert.ErrorIs(t, err, ErrMaxQuotesReached)
	})

	t.Run("missing job", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(entities.JobRequest{}, nil)

		_, err := uc.Create(context.Background(), proP1, input)
		assert.ErrorIs(t, err, ErrJobRequestNotFound)
	})

	t.Run("success writes quote and job together", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.quotes.EXPECT().List(gomock.Any(), gomock.Any()).
			Return([]entities.Quote{{ID: "q-old", Status: entities.QuoteStatusWithdrawn}}, nil)
		d.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(openJob(), nil)
		d.quotes.EXPECT().CreateWithJobRequest(gomock.Any(), gomock.Any(), gomock.Any(), int64(2)).DoAndReturn(
			func(_ context.Context, q entities.Quote, j entities.JobRequest, _ int64) (entities.Quote, entities.JobRequest, error) {
				assert.Equal(t, entities.QuoteStatusPending, q.Status)
				assert.Equal(t, "pro-1", q.ProfessionalID)
				assert.Equal(t, "cust-1", q.CustomerID)
				assert.Equal(t, fixedNow.Add(DefaultQuoteValidity), q.ExpiresAt)
				assert.Equal(t, entities.JobRequestStatusQuoted, j.Status)
				assert.Equal(t, 1, j.QuotesCount)
				return q, j, nil
			},
		)
		d.metrics.EXPECT().IncQuoteSubmitted()
		d.notifier.EXPECT().NotifyQuote(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.QuoteEvent) error {
				assert.Equal(t, entities.QuoteEventSubmitted, e.Type)
				assert.Equal(t, "job-1", e.JobRequestID)
				return nil
			},
		)

		q, err := uc.Create(context.Background(), proP1, input)
		require.NoError(t, err)
		assert.NotEmpty(t, q.ID)
		assert.Equal(t, int64(75000), q.Amount)
	})

	t.Run("retries when the job changed concurrently", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.quotes.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
		full := openJob()
		full.Status = entities.JobRequestStatusQuoted
		full.QuotesCount = 10
		full.Version = 3

		gomock.InOrder(
			d.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(openJob(), nil),
			d.quotes.EXPECT().CreateWithJobRequest(gomock.Any(), gomock.Any(), gomock.Any(), int64(2)).
				Return(entities.Quote{}, entities.JobRequest{}, interfaces.ErrStaleJobRequest),
			d.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(full, nil),
		)

		_, err := uc.Create(context.Background(), proP1, input)
		assert.ErrorIs(t, err, ErrMaxQuotesReached)
	})

	t.Run("retry sees the quote committed by the winner", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		bumped := openJob()
		bumped.Status = entities.JobRequestStatusQuoted
		bumped.QuotesCount = 1
		bumped.Version = 3

		gomock.InOrder(
			d.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(openJob(), nil),
			d.quotes.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil),
			d.quotes.EXPECT().CreateWithJobRequest(gomock.Any(), gomock.Any(), gomock.Any(), int64(2)).
				Return(entities.Quote{}, entities.JobRequest{}, interfaces.ErrStaleJobRequest),
			d.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(bumped, nil),
			d.quotes.EXPECT().List(gomock.Any(), interfaces.QuoteFilter{JobRequestID: "job-1", ProfessionalID: "pro-1"}).
				Return([]entities.Quote{{ID: "q-winner", Status: entities.QuoteStatusPending}}, nil),
		)

		_, err := uc.Create(context.Background(), proP1, input)
		assert.ErrorIs(t, err, ErrDuplicateQuote)
	})

	t.Run("notification failure does not fail the quote", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.quotes.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
		d.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(openJob(), nil)
		d.quotes.EXPECT().CreateWithJobRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote, j entities.JobRequest, _ int64) (entities.Quote, entities.JobRequest, error) {
				return q, j, nil
			},
		)
		d.metrics.EXPECT().IncQuoteSubmitted()
		d.notifier.EXPECT().NotifyQuote(gomock.Any(), gomock.Any()).Return(errors.New("timeout"))
		d.metrics.EXPECT().IncNotificationFailure("quote.submitted")

		_, err := uc.Create(context.Background(), proP1, input)
		require.NoError(t, err)
	})
}

// barrierQuotes holds the first n List calls until all of them arrived, so
// concurrent submissions all pass their first duplicate check.
type barrierQuotes struct {
	*memQuotes
	mu      sync.Mutex
	pending int
	release chan struct{}
}

func newBarrierQuotes(q *memQuotes, n int) *barrierQuotes {
	return &barrierQuotes{memQuotes: q, pending: n, release: make(chan struct{})}
}

func (b *barrierQuotes) List(ctx context.Context, f interfaces.QuoteFilter) ([]entities.Quote, error) {
	out, err := b.memQuotes.List(ctx, f)
	b.mu.Lock()
	if b.pending == 0 {
		b.mu.Unlock()
		return out, err
	}
	b.pending--
	if b.pending == 0 {
		close(b.release)
	}
	b.mu.Unlock()
	<-b.release
	return out, err
}

func TestQuoteUseCase_ConcurrentDuplicateSubmissions(t *testing.T) {
	m := newMarketplace()
	job := m.postJob(t, customerC)

	uc := NewQuoteUseCase(newBarrierQuotes(m.store.Quotes(), 2), m.store, m.notifier, nil, nil, 0)
	uc.now = func() time.Time { return fixedNow }

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Create(context.Background(), proP1, CreateQuoteInput{JobRequestID: job.ID, Amount: 75000})
		}(i)
	}
	wg.Wait()

	var created, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrDuplicateQuote):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, duplicates)
	assert.Equal(t, 1, m.store.activeQuotes(job.ID))
	assert.Equal(t, 1, m.job(t, job.ID).QuotesCount)
}

func TestQuoteUseCase_DuplicateQuoteAgainstStore(t *testing.T) {
	m := newMarketplace()
	job := m.postJob(t, customerC)
	m.quote(t, proP1, job.ID, 75000)

	_, err := m.quotes.Create(context.Background(), proP1, CreateQuoteInput{JobRequestID: job.ID, Amount: 70000})
	assert.ErrorIs(t, err, ErrDuplicateQuote)
	assert.Equal(t, 1, m.job(t, job.ID).QuotesCount)
}

func TestQuoteUseCase_GetByID(t *testing.T) {
	quote := entities.Quote{ID: "q-1", ProfessionalID: "pro-1", CustomerID: "cust-1", Status: entities.QuoteStatusPending}

	t.Run("participants and admin", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(quote, nil).Times(3)

		for _, caller := range []*entities.Caller{proP1, customerC, adminA} {
			got, err := uc.GetByID(context.Background(), caller, "q-1")
			require.NoError(t, err)
			assert.Equal(t, quote, got)
		}
	})

	t.Run("outsiders are forbidden", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(quote, nil).Times(2)

		_, err := uc.GetByID(context.Background(), proP2, "q-1")
		assert.ErrorIs(t, err, access.ErrForbidden)
		_, err = uc.GetByID(context.Background(), otherCust, "q-1")
		assert.ErrorIs(t, err, access.ErrForbidden)
	})

	t.Run("guest", func(t *testing.T) {
		uc, _ := newQuoteUseCase(t)
		_, err := uc.GetByID(context.Background(), nil, "q-1")
		assert.ErrorIs(t, err, access.ErrUnauthenticated)
	})

	t.Run("not found", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.quotes.EXPECT().GetByID(gomock.Any(), "q-9").Return(entities.Quote{}, nil)
		_, err := uc.GetByID(context.Background(), adminA, "q-9")
		assert.ErrorIs(t, err, ErrQuoteNotFound)
	})
}

func TestQuoteUseCase_List(t *testing.T) {
	t.Run("professional is scoped to own quotes", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.quotes.EXPECT().List(gomock.Any(), interfaces.QuoteFilter{JobRequestID: "job-1", ProfessionalID: "pro-1"}).Return(nil, nil)

		_, err := uc.List(context.Background(), proP1, ListQuotesQuery{JobRequestID: "job-1"})
		require.NoError(t, err)

		_, err = uc.List(context.Background(), proP1, ListQuotesQuery{ProfessionalID: "pro-2"})
		assert.ErrorIs(t, err, access.ErrForbidden)
	})

	t.Run("job owner sees every quote on the job", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(openJob(), nil)
		d.quotes.EXPECT().List(gomock.Any(), interfaces.QuoteFilter{JobRequestID: "job-1"}).Return([]entities.Quote{
			{ID: "a", CreatedAt: fixedNow.Add(-time.Hour)},
			{ID: "b", CreatedAt: fixedNow},
		}, nil)

		quotes, err := uc.List(context.Background(), customerC, ListQuotesQuery{JobRequestID: "job-1"})
		require.NoError(t, err)
		require.Len(t, quotes, 2)
		assert.Equal(t, "b", quotes[0].ID)
	})

	t.Run("other customers only see their own", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(openJob(), nil)
		d.quotes.EXPECT().List(gomock.Any(), interfaces.QuoteFilter{JobRequestID: "job-1", CustomerID: "cust-2"}).Return(nil, nil)

		_, err := uc.List(context.Background(), otherCust, ListQuotesQuery{JobRequestID: "job-1"})
		require.NoError(t, err)
	})

	t.Run("admin my quotes", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.quotes.EXPECT().List(gomock.Any(), interfaces.QuoteFilter{ProfessionalID: "admin-1", Status: entities.QuoteStatusPending}).Return(nil, nil)

		_, err := uc.List(context.Background(), adminA, ListQuotesQuery{MyQuotes: true, Status: entities.QuoteStatusPending})
		require.NoError(t, err)
	})

	t.Run("invalid status", func(t *testing.T) {
		uc, _ := newQuoteUseCase(t)
		_, err := uc.List(context.Background(), adminA, ListQuotesQuery{Status: "open"})
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})
}

func TestQuoteUseCase_Update(t *testing.T) {
	pending := entities.Quote{ID: "q-1", ProfessionalID: "pro-1", CustomerID: "cust-1", Amount: 100, Status: entities.QuoteStatusPending}
	amount := int64(250)

	t.Run("only the owner", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(pending, nil)
		_, err := uc.Update(context.Background(), proP2, "q-1", UpdateQuoteInput{Amount: &amount})
		assert.ErrorIs(t, err, access.ErrForbidden)
	})

	t.Run("only while pending", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		accepted := pending
		accepted.Status = entities.QuoteStatusAccepted
		d.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(accepted, nil)
		_, err := uc.Update(context.Background(), proP1, "q-1", UpdateQuoteInput{Amount: &amount})
		assert.ErrorIs(t, err, ErrInvalidQuoteState)
	})

	t.Run("lost race to a status change", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		declined := pending
		declined.Status = entities.QuoteStatusDeclined
		gomock.InOrder(
			d.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(pending, nil),
			d.quotes.EXPECT().Update(gomock.Any(), gomock.Any(), pending).Return(entities.Quote{}, interfaces.ErrStaleQuote),
			d.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(declined, nil),
		)
		_, err := uc.Update(context.Background(), proP1, "q-1", UpdateQuoteInput{Amount: &amount})
		assert.ErrorIs(t, err, ErrInvalidQuoteState)
	})

	t.Run("lost race to another edit", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		edited := pending
		edited.UpdatedAt = fixedNow.Add(-time.Second)
		gomock.InOrder(
			d.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(pending, nil),
			d.quotes.EXPECT().Update(gomock.Any(), gomock.Any(), pending).Return(entities.Quote{}, interfaces.ErrStaleQuote),
			d.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(edited, nil),
		)
		_, err := uc.Update(context.Background(), proP1, "q-1", UpdateQuoteInput{Amount: &amount})
		assert.ErrorIs(t, err, ErrConcurrentModification)
	})

	t.Run("success", func(t *testing.T) {
		uc, d := newQuoteUseCase(t)
		d.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(pending, nil)
		d.quotes.EXPECT().Update(gomock.Any(), gomock.Any(), pending).DoAndReturn(
			func(_ context.Context, q, _ entities.Quote) (entities.Quote, error) { return q, nil },
		)
		got, err := uc.Update(context.Background(), proP1, "q-1", UpdateQuoteInput{Amount: &amount})
		require.NoError(t, err)
		assert.Equal(t, int64(250), got.Amount)
		assert.Equal(t, fixedNow, got.UpdatedAt)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		uc, _ := newQuoteUseCase(t)
		zero := int64(0)
		_, err := uc.Update(context.Background(), proP1, "q-1", UpdateQuoteInput{Amount: &zero})
		assert.ErrorIs(t, err, ErrInvalidQuote)
	})
}
