package metrics

import "eog-rate/internal/store"

// storeObserver implements store.Observer using the Prometheus metrics
// declared in this package.
type storeObserver struct{}

// NewStoreObserver creates an observer that records store metrics into the
// counters and histograms declared in metrics.go.
func NewStoreObserver() store.Observer {
	return &storeObserver{}
}

func (o *storeObserver) ObserveOperation(backend, operation string, durationSeconds float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	StoreOperationsTotal.WithLabelValues(backend, operation, status).Inc()
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(durationSeconds)
}

func (o *storeObserver) ObserveCache(hit bool) {
	if hit {
		StoreCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	StoreCacheLookups.WithLabelValues("miss").Inc()
}
