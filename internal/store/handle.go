package store

import (
	"context"
	"sort"

	"eog-rate/internal/attrs"
)

// Handle is an in-memory copy of one file's record. Set and Delete only
// touch the copy; Commit persists it.
type Handle struct {
	store    *Store
	path     string
	dir      string
	name     string
	original attrs.Record
	current  attrs.Record
}

// Path returns the path the handle was loaded from.
func (h *Handle) Path() string {
	return h.path
}

// Record returns a copy of the current, possibly uncommitted, record.
func (h *Handle) Record() attrs.Record {
	return h.current.Clone()
}

// Get returns the current value of key.
func (h *Handle) Get(key string) (string, bool) {
	v, ok := h.current[key]
	return v, ok
}

// Set assigns key. Assigning an empty value deletes the key, so records
// never hold empty attribute strings.
func (h *Handle) Set(key, value string) {
	if value == "" {
		h.Delete(key)
		return
	}
	h.current[key] = value
}

// Delete removes key. Deleting an absent key is a no-op.
func (h *Handle) Delete(key string) {
	delete(h.current, key)
}

// Changed returns the keys whose value differs from the last committed
// state, sorted.
func (h *Handle) Changed() []string {
	var keys []string
	for k, v := range h.current {
		if old, ok := h.original[k]; !ok || old != v {
			keys = append(keys, k)
		}
	}
	for k := range h.original {
		if _, ok := h.current[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Dirty reports whether Commit would write anything.
func (h *Handle) Dirty() bool {
	return !h.current.Equal(h.original)
}

// Commit writes the record back when it changed and reports whether a
// write happened.
func (h *Handle) Commit(ctx context.Context) (bool, error) {
	if !h.Dirty() {
		return false, nil
	}

	if err := h.store.writeFile(ctx, h.dir, h.name, h.current.Clone()); err != nil {
		return false, &OpError{Op: "commit", Backend: h.store.backend.Name(), Path: h.path, Err: err}
	}
	h.original = h.current.Clone()
	return true, nil
}
