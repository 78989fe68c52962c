// Package memory provides an in-process attribute backend. It keeps no
// state across runs and counts backend calls, which makes it the backend of
// choice for tests.
package memory

import (
	"context"
	"sync"

	"eog-rate/internal/attrs"
)

// Backend stores records in nested maps keyed by directory and file name.
type Backend struct {
	mu     sync.Mutex
	dirs   map[string]map[string]attrs.Record
	reads  int
	writes int
}

// New creates an empty memory backend.
func New() *Backend {
	return &Backend{dirs: make(map[string]map[string]attrs.Record)}
}

// Name implements store.Backend.
func (b *Backend) Name() string {
	return "memory"
}

// ReadDir implements store.Backend.
func (b *Backend) ReadDir(ctx context.Context, dir string) (map[string]attrs.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.reads++

	out := make(map[string]attrs.Record, len(b.dirs[dir]))
	for name, rec := range b.dirs[dir] {
		out[name] = rec.Clone()
	}
	return out, nil
}

// WriteFile implements store.Backend.
func (b *Backend) WriteFile(ctx context.Context, dir, name string, rec attrs.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes++
	b.put(dir, name, rec)
	return nil
}

// Put seeds a record without counting it as a write.
func (b *Backend) Put(dir, name string, rec attrs.Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.put(dir, name, rec)
}

// Get returns the stored record for a file, bypassing the counters.
func (b *Backend) Get(dir, name string) (attrs.Record, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.dirs[dir][name]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Reads returns the number of ReadDir calls served.
func (b *Backend) Reads() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reads
}

// Writes returns the number of WriteFile calls served.
func (b *Backend) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

// Close implements store.Backend.
func (b *Backend) Close() error {
	return nil
}

func (b *Backend) put(dir, name string, rec attrs.Record) {
	if len(rec) == 0 {
		delete(b.dirs[dir], name)
		if len(b.dirs[dir]) == 0 {
			delete(b.dirs, dir)
		}
		return
	}
	if b.dirs[dir] == nil {
		b.dirs[dir] = make(map[string]attrs.Record)
	}
	b.dirs[dir][name] = rec.Clone()
}
