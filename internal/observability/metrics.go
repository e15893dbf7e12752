package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the research network service.
// Metrics cover the upstream fetch, record ingestion, pipeline runs, and the
// HTTP read API. All collectors are registered via promauto with the default
// Prometheus registry.
type Metrics struct {
	// FetchRequestsTotal counts upstream catalog requests, labeled by source.
	FetchRequestsTotal *prometheus.CounterVec

	// FetchRequestsFailed counts failed upstream catalog requests, labeled by
	// source and error type.
	FetchRequestsFailed *prometheus.CounterVec

	// FetchDuration observes complete fetch duration in seconds by source.
	FetchDuration *prometheus.HistogramVec

	// FetchPages observes the number of pages requested per fetch by source.
	FetchPages *prometheus.HistogramVec

	// RecordsAccepted counts records that passed ingestion validation.
	RecordsAccepted prometheus.Counter

	// RecordsDropped counts malformed records dropped at ingestion.
	RecordsDropped prometheus.Counter

	// PipelineRuns counts aggregation pipeline runs.
	PipelineRuns prometheus.Counter

	// PipelineDuration observes pipeline run duration in seconds.
	PipelineDuration prometheus.Histogram

	// HTTPRequestsTotal counts API requests, labeled by route and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes API request duration in seconds by route.
	HTTPRequestDuration *prometheus.HistogramVec

	// HistogramLookups counts histogram-by-year lookups, labeled by outcome
	// ("found" or "not_found").
	HistogramLookups *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all collectors initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		FetchRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "Total number of upstream catalog fetches",
		}, []string{"source"}),
		FetchRequestsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_failed_total",
			Help:      "Total number of failed upstream catalog fetches",
		}, []string{"source", "error_type"}),
		FetchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of upstream catalog fetches in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"source"}),
		FetchPages: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_pages",
			Help:      "Number of pages requested per upstream fetch",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}, []string{"source"}),

		RecordsAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_accepted_total",
			Help:      "Total number of records accepted at ingestion",
		}),
		RecordsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_dropped_total",
			Help:      "Total number of malformed records dropped at ingestion",
		}),

		PipelineRuns: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Total number of aggregation pipeline runs",
		}),
		PipelineDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of aggregation pipeline runs in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),

		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of API requests by route and status",
		}, []string{"route", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of API requests in seconds by route",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),

		HistogramLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "histogram_lookups_total",
			Help:      "Total number of histogram-by-year lookups by outcome",
		}, []string{"outcome"}),
	}
}

// RecordFetch records a completed upstream fetch.
func (m *Metrics) RecordFetch(source string, pages int, durationSeconds float64) {
	m.FetchRequestsTotal.WithLabelValues(source).Inc()
	m.FetchDuration.WithLabelValues(source).Observe(durationSeconds)
	m.FetchPages.WithLabelValues(source).Observe(float64(pages))
}

// RecordFetchFailed records a failed upstream fetch.
func (m *Metrics) RecordFetchFailed(source, errorType string) {
	m.FetchRequestsFailed.WithLabelValues(source, errorType).Inc()
}

// RecordIngestion records the outcome of a normalization pass.
func (m *Metrics) RecordIngestion(accepted, dropped int) {
	m.RecordsAccepted.Add(float64(accepted))
	m.RecordsDropped.Add(float64(dropped))
}

// RecordPipelineRun records a completed pipeline run.
func (m *Metrics) RecordPipelineRun(durationSeconds float64) {
	m.PipelineRuns.Inc()
	m.PipelineDuration.Observe(durationSeconds)
}

// RecordHTTPRequest records a served API request.
func (m *Metrics) RecordHTTPRequest(route, status string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordHistogramLookup records a histogram-by-year lookup outcome.
func (m *Metrics) RecordHistogramLookup(found bool) {
	outcome := "found"
	if !found {
		outcome = "not_found"
	}
	m.HistogramLookups.WithLabelValues(outcome).Inc()
}
