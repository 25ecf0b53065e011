package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics provides Prometheus metrics for reconciliation and ingest.
//
// All metrics use the asset_ prefix. Methods handle a nil receiver so
// components can run without metrics in tests and CLI commands.
type Metrics struct {
	// OperationsTotal counts engine operations by operation and result
	OperationsTotal *prometheus.CounterVec

	// OperationDuration tracks engine operation latency
	OperationDuration *prometheus.HistogramVec

	// AuditEntries holds the counts of the last audit by status
	AuditEntries *prometheus.GaugeVec

	// DegradedFoldersTotal counts folder listings that failed open
	DegradedFoldersTotal *prometheus.CounterVec

	// ObjectsDeletedTotal counts storage objects removed by source (delete, cleanup)
	ObjectsDeletedTotal *prometheus.CounterVec

	// UploadsTotal counts ingested uploads by media type
	UploadsTotal *prometheus.CounterVec

	// PosterFailuresTotal counts failed poster generations or poster uploads
	PosterFailuresTotal prometheus.Counter
}

// New creates and registers the metrics. Pass a nil registerer to create
// unregistered metrics.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asset_operations_total",
				Help: "Total reconciliation operations by operation and result",
			},
			[]string{"operation", "result"},
		),

		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "asset_operation_duration_seconds",
				Help:    "Reconciliation operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		AuditEntries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "asset_audit_entries",
				Help: "Entries reported by the last audit by status",
			},
			[]string{"status"},
		),

		DegradedFoldersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asset_degraded_folders_total",
				Help: "Folder listings that failed and were skipped",
			},
			[]string{"folder"},
		),

		ObjectsDeletedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asset_objects_deleted_total",
				Help: "Storage objects removed by source",
			},
			[]string{"source"},
		),

		UploadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asset_uploads_total",
				Help: "Ingested uploads by media type",
			},
			[]string{"type"},
		),

		PosterFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "asset_poster_failures_total",
				Help: "Poster generations or poster uploads that failed",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.OperationsTotal,
			m.OperationDuration,
			m.AuditEntries,
			m.DegradedFoldersTotal,
			m.ObjectsDeletedTotal,
			m.UploadsTotal,
			m.PosterFailuresTotal,
		)
	}

	return m
}

// ObserveOperation records the result and duration of an engine operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.OperationsTotal.WithLabelValues(operation, result).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordAudit stores the summary counts of an audit.
func (m *Metrics) RecordAudit(linked, orphan, missing int) {
	if m == nil {
		return
	}
	m.AuditEntries.WithLabelValues("linked").Set(float64(linked))
	m.AuditEntries.WithLabelValues("orphan").Set(float64(orphan))
	m.AuditEntries.WithLabelValues("missing").Set(float64(missing))
}

// FolderDegraded records a folder whose listing failed.
func (m *Metrics) FolderDegraded(folder string) {
	if m == nil {
		return
	}
	m.DegradedFoldersTotal.WithLabelValues(folder).Inc()
}

// ObjectsDeleted adds n removed objects for source.
func (m *Metrics) ObjectsDeleted(source string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ObjectsDeletedTotal.WithLabelValues(source).Add(float64(n))
}

// UploadRecorded counts an ingested upload.
func (m *Metrics) UploadRecorded(mediaType string) {
	if m == nil {
		return
	}
	m.UploadsTotal.WithLabelValues(mediaType).Inc()
}

// PosterFailed counts a failed poster.
func (m *Metrics) PosterFailed() {
	if m == nil {
		return
	}
	m.PosterFailuresTotal.Inc()
}
