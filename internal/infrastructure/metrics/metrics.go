package metrics

import (
	"strconv"
	"time"

	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// Metrics holds the Prometheus collectors for the marketplace.
//
// Metrics:
//   - marketplace_quotes_submitted_total
//   - marketplace_quote_transitions_total{status}
//   - marketplace_sibling_decline_failures_total
//   - marketplace_drafts_linked_total
//   - marketplace_notification_failures_total{event}
//   - marketplace_http_requests_total{method,route,status}
//   - marketplace_http_request_duration_seconds{method,route}
type Metrics struct {
	QuotesSubmitted        prometheus.Counter
	QuoteTransitions       *prometheus.CounterVec
	SiblingDeclineFailures prometheus.Counter
	DraftsLinked           prometheus.Counter
	NotificationFailures   *prometheus.CounterVec

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

var _ interfaces.IMetrics = (*Metrics)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		QuotesSubmitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_submitted_total",
			Help:      "Total number of quotes submitted",
		}),
		QuoteTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_transitions_total",
			Help:      "Total number of quotes leaving pending, by target status",
		}, []string{"status"}),
		SiblingDeclineFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sibling_decline_failures_total",
			Help:      "Pending quotes that could not be declined after a settlement",
		}),
		DraftsLinked: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drafts_linked_total",
			Help:      "Guest draft job requests linked to an account",
		}),
		NotificationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Notifications that could not be delivered, by event",
		}, []string{"event"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) IncQuoteSubmitted() { m.QuotesSubmitted.Inc() }

func (m *Metrics) IncQuoteTransition(status entities.QuoteStatus) {
	m.QuoteTransitions.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) IncSiblingDeclineFailure() { m.SiblingDeclineFailures.Inc() }

func (m *Metrics) AddDraftsLinked(n int) {
	if n > 0 {
		m.DraftsLinked.Add(float64(n))
	}
}

func (m *Metrics) IncNotificationFailure(event string) {
	m.NotificationFailures.WithLabelValues(event).Inc()
}

// ObserveHTTP records one served request. route is the matched route
// template, not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
