package metrics

import (
	"strings"
	"testing"
	"time"

	"trades_marketplace/internal/domain/entities"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_BusinessCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncQuoteSubmitted()
	m.IncQuoteSubmitted()
	m.IncQuoteTransition(entities.QuoteStatusAccepted)
	m.IncQuoteTransition(entities.QuoteStatusDeclined)
	m.IncQuoteTransition(entities.QuoteStatusDeclined)
	m.IncSiblingDeclineFailure()
	m.AddDraftsLinked(3)
	m.AddDraftsLinked(0)
	m.IncNotificationFailure("quote.accepted")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.QuotesSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuoteTransitions.WithLabelValues("accepted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.QuoteTransitions.WithLabelValues("declined")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SiblingDeclineFailures))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DraftsLinked))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationFailures.WithLabelValues("quote.accepted")))
}

func TestMetrics_ObserveHTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveHTTP("POST", "/v1/quotes/:id/accept", 200, 25*time.Millisecond)
	m.ObserveHTTP("GET", "", 404, time.Millisecond)

	expected := `
# HELP marketplace_http_requests_total HTTP requests served
# TYPE marketplace_http_requests_total counter
marketplace_http_requests_total{method="GET",route="unmatched",status="404"} 1
marketplace_http_requests_total{method="POST",route="/v1/quotes/:id/accept",status="200"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "marketplace_http_requests_total"))
	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPDuration))
}

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
