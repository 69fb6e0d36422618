// Package metrics provides Prometheus metrics recording for internal packages.
// This package exists so storage code can record metrics without importing the CLI.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Storage operations
const (
	OpDownload = "download"
	OpUpload   = "upload"
	OpDecode   = "decode"
	OpEncode   = "encode"
)

var (
	// storageOpDuration tracks object storage operation duration in seconds
	storageOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "md_dataset_storage_operation_duration_seconds",
			Help:    "Object storage operation duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	// storageOpTotal tracks total storage operations
	storageOpTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "md_dataset_storage_operations_total",
			Help: "Total number of object storage operations",
		},
		[]string{"operation"},
	)

	// storageOpErrors tracks storage operation errors by error code
	storageOpErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "md_dataset_storage_operation_errors_total",
			Help: "Total number of failed object storage operations",
		},
		[]string{"operation", "code"},
	)

	// storageBytes tracks bytes moved to and from object storage
	storageBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "md_dataset_storage_bytes_total",
			Help: "Total bytes transferred to or from object storage",
		},
		[]string{"operation"},
	)

	// tablesHydrated tracks input tables loaded from storage
	tablesHydrated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "md_dataset_tables_hydrated_total",
			Help: "Total number of input tables hydrated from storage",
		},
	)
)

// RecordStorageOp records a completed storage operation
func RecordStorageOp(operation string, duration time.Duration, bytes int) {
	storageOpTotal.WithLabelValues(operation).Inc()
	storageOpDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if bytes > 0 {
		storageBytes.WithLabelValues(operation).Add(float64(bytes))
	}
}

// RecordStorageError records a failed storage operation
func RecordStorageError(operation, code string) {
	storageOpErrors.WithLabelValues(operation, code).Inc()
}

// RecordTableHydrated records one input table hydration
func RecordTableHydrated() {
	tablesHydrated.Inc()
}
