// Package metrics provides Prometheus metrics for the site backend.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog metrics
	CatalogFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wings_catalog_fetches_total",
			Help: "Total number of catalog snapshot fetches",
		},
		[]string{"source", "status"},
	)

	CatalogFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wings_catalog_fetch_duration_seconds",
			Help:    "Time taken to fetch the catalog snapshot",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wings_catalog_items",
			Help: "Number of parts in the current catalog snapshot",
		},
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wings_catalog_query_duration_seconds",
			Help:    "Time taken to run a catalog query over the snapshot",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// Localization metrics
	MissingTranslations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wings_missing_translations_total",
			Help: "Total number of lookups for keys absent from a language table",
		},
		[]string{"lang"},
	)

	// Form metrics
	FormSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wings_form_submissions_total",
			Help: "Total number of form submissions by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	RelayDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wings_form_relay_duration_seconds",
			Help:    "Duration of calls to the form relay",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RecordCatalogFetch records the outcome of one snapshot fetch.
func RecordCatalogFetch(source, status string, items int, duration time.Duration) {
	CatalogFetchesTotal.WithLabelValues(source, status).Inc()
	CatalogFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	CatalogItems.Set(float64(items))
}

// RecordSubmission records a form submission outcome.
func RecordSubmission(kind, status string) {
	FormSubmissions.WithLabelValues(kind, status).Inc()
}

// Timer is a helper for measuring duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
