//go:build !linux

package xattr

import (
	"context"
	"errors"

	"eog-rate/internal/attrs"
)

var errUnsupported = errors.New("xattr store is only supported on linux")

// ReadDir implements store.Backend.
func (b *Backend) ReadDir(context.Context, string) (map[string]attrs.Record, error) {
	return nil, errUnsupported
}

// WriteFile implements store.Backend.
func (b *Backend) WriteFile(context.Context, string, string, attrs.Record) error {
	return errUnsupported
}
