package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first scrape or textfile dump.
// Call this once at startup with the configured backend name.
func InitializeMetrics(backend string) {
	for _, op := range []string{"read_dir", "write_file"} {
		StoreOperationsTotal.WithLabelValues(backend, op, "success")
		StoreOperationsTotal.WithLabelValues(backend, op, "error")
		StoreOperationDuration.WithLabelValues(backend, op)
	}

	for _, result := range []string{"hit", "miss"} {
		StoreCacheLookups.WithLabelValues(result)
	}

	for _, outcome := range []string{"match", "reject", "error"} {
		PredicateEvaluations.WithLabelValues(outcome)
	}

	for _, result := range []string{"written", "unchanged", "error"} {
		MutationFilesTotal.WithLabelValues(result)
	}

	for _, field := range []string{"rating", "tags", "comment"} {
		MutationFieldWrites.WithLabelValues(field)
	}
}

// WriteTextfile writes the default registry in the Prometheus text format
// to path, atomically, for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
