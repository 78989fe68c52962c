//go:build linux

package xattr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"eog-rate/internal/attrs"
)

// ReadDir implements store.Backend.
func (b *Backend) ReadDir(ctx context.Context, dir string) (map[string]attrs.Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	records := make(map[string]attrs.Record)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}
		rec, err := b.readFile(filepath.Join(dir, entry.Name()))
		if errors.Is(err, unix.ENOENT) {
			// Dangling symlink, or removed since the listing
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(rec) > 0 {
			records[entry.Name()] = rec
		}
	}
	return records, nil
}

// WriteFile implements store.Backend.
func (b *Backend) WriteFile(ctx context.Context, dir, name string, rec attrs.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(dir, name)
	current, err := b.readFile(path)
	if err != nil {
		return err
	}

	for key := range current {
		if _, keep := rec[key]; keep {
			continue
		}
		if err := unix.Removexattr(path, b.prefix+key); err != nil && !errors.Is(err, unix.ENODATA) {
			return fmt.Errorf("failed to remove attribute %s: %w", key, err)
		}
	}

	for key, value := range rec {
		if old, ok := current[key]; ok && old == value {
			continue
		}
		if err := unix.Setxattr(path, b.prefix+key, []byte(value), 0); err != nil {
			return fmt.Errorf("failed to set attribute %s: %w", key, err)
		}
	}
	return nil
}

// readFile returns the prefixed attributes of one file. Filesystems
// without extended attribute support read as empty.
func (b *Backend) readFile(path string) (attrs.Record, error) {
	size, err := unix.Listxattr(path, nil)
	if err != nil {
		if errors.Is(err, unix.ENOTSUP) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list attributes of %s: %w", path, err)
	}
	if size == 0 {
		return nil, nil
	}

	buf := make([]byte, size)
	size, err = unix.Listxattr(path, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to list attributes of %s: %w", path, err)
	}

	rec := make(attrs.Record)
	for _, key := range b.splitNames(buf[:size]) {
		value, err := getxattr(path, b.prefix+key)
		if errors.Is(err, unix.ENODATA) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read attribute %s of %s: %w", key, path, err)
		}
		rec[key] = value
	}
	return rec, nil
}

func getxattr(path, attr string) (string, error) {
	size, err := unix.Getxattr(path, attr, nil)
	if err != nil {
		return "", err
	}
	if size == 0 {
		return "", nil
	}
	buf := make([]byte, size)
	size, err = unix.Getxattr(path, attr, buf)
	if err != nil {
		return "", err
	}
	return string(buf[:size]), nil
}
