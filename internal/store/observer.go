package store

// Observer records store metrics. The metrics package provides the
// Prometheus implementation; keeping the interface here avoids an import
// cycle between the two packages.
type Observer interface {
	// ObserveOperation records one backend call. operation is "read_dir"
	// or "write_file".
	ObserveOperation(backend, operation string, durationSeconds float64, err error)

	// ObserveCache records a directory view lookup against the cache.
	ObserveCache(hit bool)
}

// defaultObserver is the package-level observer set at startup.
// If nil, metric recording is skipped (safe for tests).
var defaultObserver Observer

// SetObserver sets the package-level metrics observer.
func SetObserver(o Observer) {
	defaultObserver = o
}

func observe() Observer {
	return defaultObserver
}
