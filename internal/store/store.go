package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"eog-rate/internal/attrs"
	"eog-rate/internal/logging"
)

// Options configures a Store.
type Options struct {
	// Cache memoizes directory views for the lifetime of the Store.
	Cache bool
}

// Store is the metadata store adapter used by one command invocation.
type Store struct {
	backend Backend
	opts    Options
	views   map[string]*DirectoryView
}

// New wraps a backend. The Store does not own the backend; closing it is
// the caller's job.
func New(backend Backend, opts Options) *Store {
	return &Store{
		backend: backend,
		opts:    opts,
		views:   make(map[string]*DirectoryView),
	}
}

// BackendName returns the name of the wrapped backend.
func (s *Store) BackendName() string {
	return s.backend.Name()
}

// Reserved reports whether name is a bookkeeping file of the backend.
func (s *Store) Reserved(name string) bool {
	if r, ok := s.backend.(Reserver); ok {
		return r.Reserved(name)
	}
	return false
}

// View returns the records stored for dir. A directory without stored
// records yields an empty view.
func (s *Store) View(ctx context.Context, dir string) (*DirectoryView, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, &OpError{Op: "view", Path: dir, Err: err}
	}

	if s.opts.Cache {
		v, ok := s.views[abs]
		if o := observe(); o != nil {
			o.ObserveCache(ok)
		}
		if ok {
			return v, nil
		}
	}

	records, err := s.readDir(ctx, abs)
	if err != nil {
		return nil, &OpError{Op: "view", Backend: s.backend.Name(), Path: dir, Err: err}
	}

	v := newDirectoryView(abs, records)
	if s.opts.Cache {
		s.views[abs] = v
	}
	logging.Debug("Loaded %d record(s) for %s from %s store", v.Len(), abs, s.backend.Name())
	return v, nil
}

// Load returns a writable handle for the record of an existing file.
// The record is empty when nothing is stored yet.
func (s *Store) Load(ctx context.Context, path string) (*Handle, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &OpError{Op: "load", Path: path, Err: ErrNotFound}
		}
		return nil, &OpError{Op: "load", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &OpError{Op: "load", Path: path, Err: ErrNotRegularFile}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &OpError{Op: "load", Path: path, Err: err}
	}
	dir, name := filepath.Split(abs)
	dir = filepath.Clean(dir)

	view, err := s.View(ctx, dir)
	if err != nil {
		return nil, err
	}

	rec, ok := view.Get(name)
	if !ok {
		rec = attrs.Record{}
	}

	return &Handle{
		store:    s,
		path:     path,
		dir:      dir,
		name:     name,
		original: rec.Clone(),
		current:  rec,
	}, nil
}

func (s *Store) readDir(ctx context.Context, dir string) (map[string]attrs.Record, error) {
	start := time.Now()
	records, err := s.backend.ReadDir(ctx, dir)
	if o := observe(); o != nil {
		o.ObserveOperation(s.backend.Name(), "read_dir", time.Since(start).Seconds(), err)
	}
	return records, err
}

func (s *Store) writeFile(ctx context.Context, dir, name string, rec attrs.Record) error {
	start := time.Now()
	err := s.backend.WriteFile(ctx, dir, name, rec)
	if o := observe(); o != nil {
		o.ObserveOperation(s.backend.Name(), "write_file", time.Since(start).Seconds(), err)
	}
	if err != nil {
		return err
	}

	if v, ok := s.views[dir]; ok {
		v.put(name, rec)
	}
	return nil
}
