package walker

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"

	"eog-rate/internal/attrs"
	"eog-rate/internal/logging"
	"eog-rate/internal/metrics"
	"eog-rate/internal/store"
)

// Entry is one file produced by a walk.
type Entry struct {
	Path   string
	Record attrs.Record
}

// Walker walks roots against a store.
type Walker struct {
	Store *store.Store

	// RequirePresence skips files that have no rating, tags or comment.
	RequirePresence bool

	// Filter, when set, restricts directory walks to file names it accepts.
	// Single-file roots are always considered.
	Filter func(name string) bool
}

// Walk returns a lazy, single-pass sequence over the roots in order. The
// sequence stops after yielding the first error.
func (w *Walker) Walk(ctx context.Context, roots []string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for _, root := range roots {
			if !w.walkRoot(ctx, root, yield) {
				return
			}
		}
	}
}

// walkRoot reports whether the walk should continue.
func (w *Walker) walkRoot(ctx context.Context, root string, yield func(Entry, error) bool) bool {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = &store.OpError{Op: "walk", Path: root, Err: store.ErrNotFound}
		}
		yield(Entry{}, err)
		return false
	}

	if !info.IsDir() {
		return w.walkFile(ctx, root, yield)
	}

	stop := errors.New("stop")
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !w.walkDir(ctx, path, yield) {
			return stop
		}
		return nil
	})

	switch {
	case err == nil:
		return true
	case errors.Is(err, stop):
		return false
	default:
		yield(Entry{}, err)
		return false
	}
}

func (w *Walker) walkFile(ctx context.Context, path string, yield func(Entry, error) bool) bool {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	view, err := w.Store.View(ctx, dir)
	if err != nil {
		yield(Entry{}, err)
		return false
	}
	metrics.WalkEntriesVisited.Inc()

	rec, ok := view.Get(name)
	if !ok {
		rec = attrs.Record{}
	}
	if w.RequirePresence && !attrs.HasAny(rec) {
		return true
	}

	metrics.WalkEntriesYielded.Inc()
	return yield(Entry{Path: path, Record: rec}, nil)
}

// walkDir yields the files directly inside dir.
func (w *Walker) walkDir(ctx context.Context, dir string, yield func(Entry, error) bool) bool {
	view, err := w.Store.View(ctx, dir)
	if err != nil {
		yield(Entry{}, err)
		return false
	}

	// Nothing stored here, nothing can pass the presence filter
	if w.RequirePresence && view.Len() == 0 {
		return true
	}

	names, err := w.fileNames(dir)
	if err != nil {
		yield(Entry{}, err)
		return false
	}
	logging.Debug("Walking %s: %d candidate file(s)", dir, len(names))

	for _, name := range names {
		metrics.WalkEntriesVisited.Inc()

		rec, ok := view.Get(name)
		if !ok {
			if w.RequirePresence {
				continue
			}
			rec = attrs.Record{}
		}
		if w.RequirePresence && !attrs.HasAny(rec) {
			continue
		}

		metrics.WalkEntriesYielded.Inc()
		if !yield(Entry{Path: filepath.Join(dir, name), Record: rec}, nil) {
			return false
		}
	}
	return true
}

// fileNames lists the non-directory entries of dir in ascending order,
// leaving out backend bookkeeping files and names rejected by Filter.
// Records of files that no longer exist on disk are never reported.
func (w *Walker) fileNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !isFile(dir, entry) || w.Store.Reserved(name) {
			continue
		}
		if w.Filter != nil && !w.Filter(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// isFile reports whether entry is a regular file or a symlink that does
// not point to a directory.
func isFile(dir string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return false
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return true
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	if err != nil {
		// Dangling links still carry a name the store may know about
		return true
	}
	return !info.IsDir()
}
