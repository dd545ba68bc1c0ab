package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the report and bulk engines.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Rows produced by the join engine, by scope (admin, owner)
	ReportRows *prometheus.CounterVec

	// Store round trips issued by the join engine, by kind (persons_in, users_get_all)
	ChunkQueries *prometheus.CounterVec

	// Full aggregation latency
	ReportLatency prometheus.Histogram

	// Record writes by the bulk engine, by operation
	BulkWrites *prometheus.CounterVec

	// Sub-operations that failed and were skipped, by operation
	SkippedFailures *prometheus.CounterVec

	// Daily report mails by result (sent, failed, skipped)
	ReportMails *prometheus.CounterVec
}

// New registers all metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers all metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReportRows: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "olympia_report_rows_total",
			Help: "Total report rows built by scope",
		}, []string{"scope"}),

		ChunkQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "olympia_report_chunk_queries_total",
			Help: "Total chunked store queries issued by the join engine",
		}, []string{"kind"}),

		ReportLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "olympia_report_duration_seconds",
			Help:    "Duration of a full report aggregation",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		BulkWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "olympia_bulk_writes_total",
			Help: "Total record writes by bulk operation",
		}, []string{"operation"}), // operation: "patch_rows", "patch_contacts", "examine_numbers", "reset"

		SkippedFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "olympia_skipped_failures_total",
			Help: "Total best-effort sub-operations that failed and were skipped",
		}, []string{"operation"}),

		ReportMails: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "olympia_daily_report_mails_total",
			Help: "Daily report mails by result",
		}, []string{"result"}),
	}
}

// AddReportRows records rows produced for a scope.
func (m *Metrics) AddReportRows(scope string, n int) {
	if m != nil {
		m.ReportRows.WithLabelValues(scope).Add(float64(n))
	}
}

// IncChunkQuery records one chunked store query.
func (m *Metrics) IncChunkQuery(kind string) {
	if m != nil {
		m.ChunkQueries.WithLabelValues(kind).Inc()
	}
}

// ObserveReportLatency records the total aggregation duration.
func (m *Metrics) ObserveReportLatency(d time.Duration) {
	if m != nil {
		m.ReportLatency.Observe(d.Seconds())
	}
}

// AddBulkWrites records writes done by a bulk operation.
func (m *Metrics) AddBulkWrites(operation string, n int) {
	if m != nil {
		m.BulkWrites.WithLabelValues(operation).Add(float64(n))
	}
}

// IncSkippedFailure records a skipped best-effort failure.
func (m *Metrics) IncSkippedFailure(operation string) {
	if m != nil {
		m.SkippedFailures.WithLabelValues(operation).Inc()
	}
}

// IncReportMail records a daily report mail outcome.
func (m *Metrics) IncReportMail(result string) {
	if m != nil {
		m.ReportMails.WithLabelValues(result).Inc()
	}
}
