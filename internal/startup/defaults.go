package startup

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultLogLevel        = "info"
	defaultStoreType       = "sidecar"
	defaultListen          = "127.0.0.1:8080"
	defaultRoot            = "."
	defaultShutdownTimeout = 10 * time.Second
	defaultLogMaxSizeMB    = 10
	defaultLogMaxBackups   = 3
)

// defaultValues are registered with viper so every scalar key can be
// overridden from the environment.
func defaultValues() map[string]any {
	return map[string]any{
		"logging.level":            defaultLogLevel,
		"logging.file":             "",
		"logging.max_size_mb":      defaultLogMaxSizeMB,
		"logging.max_backups":      defaultLogMaxBackups,
		"logging.max_age_days":     0,
		"logging.compress":         false,
		"store.type":               defaultStoreType,
		"display.comment_width":    0,
		"server.listen":            defaultListen,
		"server.root":              defaultRoot,
		"server.shutdown_timeout":  defaultShutdownTimeout,
		"server.log_health_checks": false,
		"metrics.textfile":         "",
	}
}

// ApplyDefaults fills in zero values left after unmarshalling and
// normalizes names.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyStoreDefaults(&cfg.Store)
	applyServerDefaults(&cfg.Server)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = defaultLogLevel
	}
	cfg.Level = strings.ToLower(cfg.Level)

	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = defaultLogMaxSizeMB
	}
}

func applyStoreDefaults(cfg *StoreConfig) {
	if cfg.Type == "" {
		cfg.Type = defaultStoreType
	}
	cfg.Type = strings.ToLower(cfg.Type)

	// Database-backed stores default to the user's data directory
	if cfg.SQLite == nil {
		cfg.SQLite = map[string]any{}
	}
	if _, ok := cfg.SQLite["path"]; !ok {
		cfg.SQLite["path"] = filepath.Join(getDataDir(), "attributes.db")
	}

	if cfg.Badger == nil {
		cfg.Badger = map[string]any{}
	}
	if _, ok := cfg.Badger["path"]; !ok {
		cfg.Badger["path"] = filepath.Join(getDataDir(), "badger")
	}
}

func applyServerDefaults(cfg *ServerConfig) {
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	if cfg.Root == "" {
		cfg.Root = defaultRoot
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
}
