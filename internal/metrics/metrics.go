package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "sparkgw"

var (
	JobsSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_submitted_total",
			Help:      "Total number of PySpark jobs submitted to Dataproc.",
		},
		[]string{"cluster"},
	)

	StatusQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_queries_total",
			Help:      "Total number of job status fetches, labeled by reported state.",
		},
		[]string{"state"},
	)

	ProviderErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Total number of failed provider calls, labeled by operation.",
		},
		[]string{"operation"},
	)

	ProviderCallLatencySeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_latency_seconds",
			Help:      "Latency of outbound Dataproc/GCS calls (seconds).",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"route", "method", "status"},
	)

	ResultObjectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_objects_total",
			Help:      "Result object reads, labeled by key and outcome (ok, missing, invalid).",
		},
		[]string{"key", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		JobsSubmittedTotal,
		StatusQueriesTotal,
		ProviderErrorsTotal,
		ProviderCallLatencySeconds,
		HTTPRequestDurationSeconds,
		ResultObjectsTotal,
	)
}
