// Package sidecar stores attribute records in one JSON file per directory,
// next to the files they describe. The file maps file names to their
// records:
//
//	{"IMG_0001.jpg": {"rating": "3", "tags": "beach, sunset"}}
//
// Directories without any records have no sidecar file at all.
package sidecar

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"eog-rate/internal/attrs"
	"eog-rate/internal/logging"
)

// DefaultFilename is the sidecar file name used when none is configured.
const DefaultFilename = ".dumbattr"

// defaultMode applies to newly created sidecar files.
const defaultMode fs.FileMode = 0o644

// Config holds sidecar backend options.
type Config struct {
	// Filename is the name of the per-directory sidecar file.
	Filename string `mapstructure:"filename"`
}

// Backend reads and writes sidecar files.
type Backend struct {
	filename string
	mu       sync.Mutex
}

// New creates a sidecar backend.
func New(cfg Config) *Backend {
	name := cfg.Filename
	if name == "" {
		name = DefaultFilename
	}
	return &Backend{filename: name}
}

// Name implements store.Backend.
func (b *Backend) Name() string {
	return "sidecar"
}

// Reserved reports whether name is the sidecar file itself.
func (b *Backend) Reserved(name string) bool {
	return name == b.filename
}

// ReadDir implements store.Backend.
func (b *Backend) ReadDir(ctx context.Context, dir string) (map[string]attrs.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.read(dir)
}

// WriteFile implements store.Backend. The sidecar is rewritten through a
// temporary file and a rename so readers never see a partial document.
func (b *Backend) WriteFile(ctx context.Context, dir, name string, rec attrs.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	records, err := b.read(dir)
	if err != nil {
		return err
	}

	if len(rec) == 0 {
		delete(records, name)
	} else {
		records[name] = rec.Clone()
	}

	path := filepath.Join(dir, b.filename)
	if len(records) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove sidecar file: %w", err)
		}
		return nil
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sidecar file: %w", err)
	}

	mode := defaultMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, b.filename+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create sidecar file: %w", err)
	}
	tmpPath := tmp.Name()

	// CreateTemp opens with 0600; the replacement keeps the old file's mode.
	err = tmp.Chmod(mode)
	if err == nil {
		_, err = tmp.Write(append(data, '\n'))
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			logging.Warn("failed to remove temporary sidecar %s: %v", tmpPath, rmErr)
		}
		return fmt.Errorf("failed to write sidecar file: %w", err)
	}
	return nil
}

// Close implements store.Backend.
func (b *Backend) Close() error {
	return nil
}

// read loads the sidecar for dir. Caller must hold mu.
func (b *Backend) read(dir string) (map[string]attrs.Record, error) {
	path := filepath.Join(dir, b.filename)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]attrs.Record), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sidecar file: %w", err)
	}

	records := make(map[string]attrs.Record)
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("corrupt sidecar file %s: %w", path, err)
	}
	if records == nil {
		records = make(map[string]attrs.Record)
	}
	return records, nil
}
