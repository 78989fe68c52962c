package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store metrics
var (
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eog_rate_store_operations_total",
			Help: "Total number of attribute store backend calls",
		},
		[]string{"backend", "operation", "status"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eog_rate_store_operation_duration_seconds",
			Help:    "Attribute store backend call duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"backend", "operation"},
	)

	StoreCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eog_rate_store_cache_lookups_total",
			Help: "Directory view cache lookups by result",
		},
		[]string{"result"},
	)
)

// Walk and query metrics
var (
	WalkEntriesVisited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eog_rate_walk_entries_visited_total",
			Help: "Total number of files considered by the tree walker",
		},
	)

	WalkEntriesYielded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eog_rate_walk_entries_yielded_total",
			Help: "Total number of files produced by the tree walker",
		},
	)

	PredicateEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eog_rate_predicate_evaluations_total",
			Help: "Total number of predicate evaluations by outcome",
		},
		[]string{"outcome"},
	)
)

// Mutation metrics
var (
	MutationFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eog_rate_mutation_files_total",
			Help: "Total number of files processed by the mutation engine",
		},
		[]string{"result"}, // "written", "unchanged", "error"
	)

	MutationFieldWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eog_rate_mutation_field_writes_total",
			Help: "Total number of changed attributes by field",
		},
		[]string{"field"},
	)
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eog_rate_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eog_rate_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eog_rate_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)
