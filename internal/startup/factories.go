package startup

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"eog-rate/internal/store"
	"eog-rate/internal/store/badger"
	"eog-rate/internal/store/memory"
	"eog-rate/internal/store/sidecar"
	"eog-rate/internal/store/sqlite"
	"eog-rate/internal/store/xattr"
)

// OpenBackend creates the backend selected by cfg.Type, decoding its
// options from the matching map. The caller closes the backend.
func OpenBackend(ctx context.Context, cfg *StoreConfig) (store.Backend, error) {
	switch cfg.Type {
	case "sidecar":
		var c sidecar.Config
		if err := decode(cfg.Sidecar, &c); err != nil {
			return nil, fmt.Errorf("failed to decode sidecar store config: %w", err)
		}
		return sidecar.New(c), nil

	case "sqlite":
		var c sqlite.Config
		if err := decode(cfg.SQLite, &c); err != nil {
			return nil, fmt.Errorf("failed to decode sqlite store config: %w", err)
		}
		b, err := sqlite.New(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite store: %w", err)
		}
		return b, nil

	case "badger":
		var c badger.Config
		if err := decode(cfg.Badger, &c); err != nil {
			return nil, fmt.Errorf("failed to decode badger store config: %w", err)
		}
		b, err := badger.New(c)
		if err != nil {
			return nil, fmt.Errorf("failed to create badger store: %w", err)
		}
		return b, nil

	case "xattr":
		var c xattr.Config
		if err := decode(cfg.Xattr, &c); err != nil {
			return nil, fmt.Errorf("failed to decode xattr store config: %w", err)
		}
		return xattr.New(c), nil

	case "memory":
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unknown store type: %q", cfg.Type)
	}
}

func decode(options map[string]any, out any) error {
	if options == nil {
		return nil
	}
	return mapstructure.Decode(options, out)
}
