package handlers

import (
	"time"

	"eog-rate/internal/store"
)

// Handlers serves the attribute API for one root directory.
type Handlers struct {
	backend   store.Backend
	root      string
	startTime time.Time
}

// New creates handlers that expose root through backend. The backend must
// be safe for concurrent use.
func New(backend store.Backend, root string) *Handlers {
	return &Handlers{
		backend:   backend,
		root:      root,
		startTime: time.Now(),
	}
}

// newStore returns a store scoped to a single request.
func (h *Handlers) newStore() *store.Store {
	return store.New(h.backend, store.Options{Cache: true})
}
