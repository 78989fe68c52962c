// Package badger stores attribute records in an embedded BadgerDB.
//
// Keys are "attr:" + dir + NUL + name and values are the JSON encoded
// record, so a directory view is a single prefix scan.
package badger

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"

	"eog-rate/internal/attrs"
)

const (
	prefixAttr = "attr:"
	separator  = "\x00"
)

// Config holds badger backend options.
type Config struct {
	// Path is the database directory.
	Path string `mapstructure:"path"`

	// InMemory keeps everything in memory; Path is ignored.
	InMemory bool `mapstructure:"in_memory"`
}

// Backend is an attribute store backed by BadgerDB.
type Backend struct {
	db *badger.DB
}

// New opens the database described by cfg.
func New(cfg Config) (*Backend, error) {
	var opts badger.Options
	switch {
	case cfg.InMemory:
		opts = badger.DefaultOptions("").WithInMemory(true)
	case cfg.Path != "":
		opts = badger.DefaultOptions(cfg.Path)
	default:
		return nil, errors.New("badger store: path is required")
	}

	// Records are tiny; compression and badger's own chatter are not useful
	opts = opts.WithLoggingLevel(badger.WARNING)
	opts = opts.WithCompression(options.None)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB at %s: %w", cfg.Path, err)
	}
	return &Backend{db: db}, nil
}

func keyDirPrefix(dir string) []byte {
	return []byte(prefixAttr + dir + separator)
}

func keyFile(dir, name string) []byte {
	return []byte(prefixAttr + dir + separator + name)
}

// Name implements store.Backend.
func (b *Backend) Name() string {
	return "badger"
}

// ReadDir implements store.Backend.
func (b *Backend) ReadDir(ctx context.Context, dir string) (map[string]attrs.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make(map[string]attrs.Record)
	prefix := keyDirPrefix(dir)

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			name := string(item.Key()[len(prefix):])
			err := item.Value(func(val []byte) error {
				var rec attrs.Record
				if err := json.Unmarshal(val, &rec); err != nil {
					return fmt.Errorf("corrupt record for %q: %w", name, err)
				}
				records[name] = rec
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// WriteFile implements store.Backend.
func (b *Backend) WriteFile(ctx context.Context, dir, name string, rec attrs.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := keyFile(dir, name)
	return b.db.Update(func(txn *badger.Txn) error {
		if len(rec) == 0 {
			return txn.Delete(key)
		}
		val, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		return txn.Set(key, val)
	})
}

// Close implements store.Backend.
func (b *Backend) Close() error {
	return b.db.Close()
}
