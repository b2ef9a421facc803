// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Row flow metrics
	RowsFetched *prometheus.CounterVec
	RowsWritten *prometheus.CounterVec
	RowsSkipped *prometheus.CounterVec

	// Batch metrics
	BatchesProcessed *prometheus.CounterVec
	BatchSize        *prometheus.HistogramVec

	// Run metrics
	RunsTotal   *prometheus.CounterVec
	RunDuration *prometheus.HistogramVec

	// Tracker metrics
	Watermark *prometheus.GaugeVec

	// Retry metrics
	RetryAttempts *prometheus.CounterVec

	// Metadata metrics
	MetadataLookups *prometheus.CounterVec

	// Health metrics
	LastSuccessfulRun *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "tradebot_pipeline"
	}

	return &Metrics{
		RowsFetched: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rows",
			Name:      "fetched_total",
			Help:      "Total number of source rows fetched by process",
		}, []string{"process"}),
		RowsWritten: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rows",
			Name:      "written_total",
			Help:      "Total number of rows written to destination tables by process",
		}, []string{"process"}),
		RowsSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rows",
			Name:      "skipped_total",
			Help:      "Total number of rows skipped by process and reason",
		}, []string{"process", "reason"}),

		BatchesProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "batches",
			Name:      "processed_total",
			Help:      "Total number of batches processed by process",
		}, []string{"process"}),
		BatchSize: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "batches",
			Name:      "size_rows",
			Help:      "Number of source rows per batch",
			Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"process"}),

		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "runs",
			Name:      "total",
			Help:      "Total number of process runs by status",
		}, []string{"process", "status"}),
		RunDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "runs",
			Name:      "duration_seconds",
			Help:      "Process run duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"process"}),

		Watermark: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tracker",
			Name:      "watermark",
			Help:      "Last processed source id by table",
		}, []string{"table"}),

		RetryAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "retry",
			Name:      "attempts_total",
			Help:      "Total number of retried operations by name",
		}, []string{"operation"}),

		MetadataLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "metadata",
			Name:      "lookups_total",
			Help:      "Total number of token metadata lookups by outcome",
		}, []string{"outcome"}),

		LastSuccessfulRun: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of last successful run by process",
		}, []string{"process"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordBatch records one processed batch and its fetched row count.
func RecordBatch(process string, fetched int) {
	DefaultMetrics.BatchesProcessed.WithLabelValues(process).Inc()
	DefaultMetrics.BatchSize.WithLabelValues(process).Observe(float64(fetched))
	DefaultMetrics.RowsFetched.WithLabelValues(process).Add(float64(fetched))
}

// RecordWritten adds to the written rows counter.
func RecordWritten(process string, n int64) {
	DefaultMetrics.RowsWritten.WithLabelValues(process).Add(float64(n))
}

// RecordSkipped adds to the skipped rows counter.
func RecordSkipped(process, reason string, n int64) {
	DefaultMetrics.RowsSkipped.WithLabelValues(process, reason).Add(float64(n))
}

// RecordRun records a completed run.
func RecordRun(process, status string, durationSeconds float64) {
	DefaultMetrics.RunsTotal.WithLabelValues(process, status).Inc()
	DefaultMetrics.RunDuration.WithLabelValues(process).Observe(durationSeconds)
}

// UpdateWatermark updates the tracker watermark gauge.
func UpdateWatermark(table string, id int64) {
	DefaultMetrics.Watermark.WithLabelValues(table).Set(float64(id))
}

// RecordRetry increments the retry attempts counter.
func RecordRetry(operation string) {
	DefaultMetrics.RetryAttempts.WithLabelValues(operation).Inc()
}

// RecordMetadataLookup records a token metadata lookup outcome.
func RecordMetadataLookup(resolved bool, n int) {
	outcome := "resolved"
	if !resolved {
		outcome = "unresolved"
	}
	DefaultMetrics.MetadataLookups.WithLabelValues(outcome).Add(float64(n))
}
