package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OtherLabel stands in for country and category values outside the catalog.
const OtherLabel = "other"

var (
	// Headline fetches by outcome: success, error or superseded
	HeadlineFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newstv_headline_fetches_total",
			Help: "Total number of headline fetches by outcome",
		},
		[]string{"country", "category", "outcome"},
	)

	HeadlineFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newstv_headline_fetch_duration_seconds",
			Help:    "Headline fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"country", "category"},
	)

	HeadlineFetchesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newstv_headline_fetches_in_flight",
			Help: "Number of headline fetches currently outstanding",
		},
	)

	// View state transitions applied by the controller
	ViewStateTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newstv_view_state_transitions_total",
			Help: "Total number of view state transitions by kind",
		},
		[]string{"kind"},
	)

	HeadlinesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newstv_headlines_served_total",
			Help: "Total number of headlines delivered in success states",
		},
		[]string{"country", "category"},
	)

	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newstv_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newstv_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	StatePublishesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newstv_state_publishes_total",
			Help: "Total number of view states published to the broker",
		},
		[]string{"kind", "status"},
	)
)
