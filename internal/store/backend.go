package store

import (
	"context"

	"eog-rate/internal/attrs"
)

// Backend is the persistence layer holding attribute records.
//
// Directories are always passed as absolute, cleaned paths and names are
// plain file names within them.
type Backend interface {
	// Name identifies the backend in logs, errors and metrics.
	Name() string

	// ReadDir returns every record stored for files in dir. A directory
	// with nothing stored yields an empty map and no error.
	ReadDir(ctx context.Context, dir string) (map[string]attrs.Record, error)

	// WriteFile replaces the record of one file. An empty record removes
	// the file's entry entirely.
	WriteFile(ctx context.Context, dir, name string, rec attrs.Record) error

	// Close releases resources held by the backend.
	Close() error
}

// Reserver is implemented by backends that keep bookkeeping files next to
// the data, so directory walks can skip them.
type Reserver interface {
	Reserved(name string) bool
}
