// Package metrics exposes Prometheus instrumentation for the analysis
// engine and the store layer.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the application
type Registry struct {
	// Analysis metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec

	// Snapshot metrics
	SnapshotPeople prometheus.Gauge
	SnapshotEdges  prometheus.Gauge

	// Store metrics
	StoreOperationsTotal   *prometheus.CounterVec
	StoreOperationDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}
	r.initAnalysisMetrics()
	r.initStoreMetrics()
	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

func (r *Registry) initAnalysisMetrics() {
	r.AnalysesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgmap_analyses_total",
			Help: "Total number of analysis runs",
		},
		[]string{"kind", "outcome"},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orgmap_analysis_duration_seconds",
			Help:    "Analysis run duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"kind"},
	)

	r.SnapshotPeople = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "orgmap_snapshot_people",
			Help: "People in the most recently materialized snapshot",
		},
	)

	r.SnapshotEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "orgmap_snapshot_edges",
			Help: "Undirected edges in the most recently materialized snapshot",
		},
	)
}

func (r *Registry) initStoreMetrics() {
	r.StoreOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgmap_store_operations_total",
			Help: "Total number of store operations",
		},
		[]string{"operation", "status"},
	)

	r.StoreOperationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orgmap_store_operation_duration_seconds",
			Help:    "Store operation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"operation"},
	)
}

// RecordAnalysis records one analysis run with its duration
func (r *Registry) RecordAnalysis(kind, outcome string, duration time.Duration) {
	r.AnalysesTotal.WithLabelValues(kind, outcome).Inc()
	r.AnalysisDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordSnapshot records the shape of a materialized snapshot
func (r *Registry) RecordSnapshot(people, edges int) {
	r.SnapshotPeople.Set(float64(people))
	r.SnapshotEdges.Set(float64(edges))
}

// RecordStoreOperation records a store operation
func (r *Registry) RecordStoreOperation(operation, status string, duration time.Duration) {
	r.StoreOperationsTotal.WithLabelValues(operation, status).Inc()
	r.StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
