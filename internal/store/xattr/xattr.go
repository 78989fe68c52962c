// Package xattr stores attribute records as extended attributes on the
// files themselves, under the "user." namespace:
//
//	user.eog-rate.rating  = "3"
//	user.eog-rate.tags    = "beach, sunset"
//
// Records travel with the files when they are copied with tools that
// preserve extended attributes.
package xattr

import "strings"

// DefaultPrefix namespaces the attributes written by this backend.
const DefaultPrefix = "user.eog-rate."

// Config holds xattr backend options.
type Config struct {
	// Prefix is prepended to every record key.
	Prefix string `mapstructure:"prefix"`
}

// Backend reads and writes extended attributes.
type Backend struct {
	prefix string
}

// New creates an xattr backend.
func New(cfg Config) *Backend {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Backend{prefix: prefix}
}

// Name implements store.Backend.
func (b *Backend) Name() string {
	return "xattr"
}

// Close implements store.Backend.
func (b *Backend) Close() error {
	return nil
}

// splitNames parses the NUL separated list returned by listxattr and keeps
// the keys below the backend prefix.
func (b *Backend) splitNames(buf []byte) []string {
	var keys []string
	for _, attr := range strings.Split(string(buf), "\x00") {
		if key, ok := strings.CutPrefix(attr, b.prefix); ok && key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
