// Package metrics provides Prometheus instrumentation for eog-rate.
//
// All metrics are prefixed with "eog_rate_".
//
// # Metric Categories
//
// ## Store Metrics
//
//   - StoreOperationsTotal: backend calls by backend, operation and status
//   - StoreOperationDuration: backend call latency by backend and operation
//   - StoreCacheLookups: directory view cache lookups by result (hit, miss)
//
// ## Walk and Query Metrics
//
//   - WalkEntriesVisited: files considered by the tree walker
//   - WalkEntriesYielded: files produced by the tree walker
//   - PredicateEvaluations: predicate results by outcome (match, reject, error)
//
// ## Mutation Metrics
//
//   - MutationFilesTotal: files processed by the mutation engine by result
//   - MutationFieldWrites: changed attributes by field (rating, tags, comment)
//
// ## HTTP Metrics
//
// Recorded by the middleware package in serve mode:
//   - HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight
//
// # Exporting
//
// The serve command exposes the default registry on /metrics. One-shot CLI
// invocations can dump it with WriteTextfile for the node_exporter textfile
// collector.
package metrics
