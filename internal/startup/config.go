package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Logging configures the leveled logger.
	Logging LoggingConfig `mapstructure:"logging"`

	// Store selects and configures the attribute store backend.
	Store StoreConfig `mapstructure:"store"`

	// Display configures list and query output.
	Display DisplayConfig `mapstructure:"display"`

	// Server configures the HTTP API of the serve command.
	Server ServerConfig `mapstructure:"server"`

	// Metrics configures Prometheus export for one-shot commands.
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LoggingConfig controls log level and the optional log file.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn warning error"`

	// File, when set, receives a copy of the log output, rotated by size.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// StoreConfig selects the backend by Type and carries the type-specific
// options, decoded by the backend factory.
type StoreConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=sidecar sqlite badger xattr memory"`

	Sidecar map[string]any `mapstructure:"sidecar"`
	SQLite  map[string]any `mapstructure:"sqlite"`
	Badger  map[string]any `mapstructure:"badger"`
	Xattr   map[string]any `mapstructure:"xattr"`
}

// DisplayConfig controls the detail output.
type DisplayConfig struct {
	// CommentWidth truncates comments to this many characters. 0 disables
	// truncation, -1 uses the terminal width.
	CommentWidth int `mapstructure:"comment_width" validate:"gte=-1"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Listen          string        `mapstructure:"listen" validate:"required"`
	Root            string        `mapstructure:"root" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	LogHealthChecks bool          `mapstructure:"log_health_checks"`
}

// MetricsConfig configures metrics export.
type MetricsConfig struct {
	// Textfile is written in the Prometheus text format when a one-shot
	// command exits.
	Textfile string `mapstructure:"textfile"`
}

// flagKeys maps command-line flags onto configuration keys. Flags only
// override the configuration when they are given.
var flagKeys = map[string]string{
	"log-level":     "logging.level",
	"log-file":      "logging.file",
	"store":         "store.type",
	"comment-width": "display.comment_width",
	"metrics-file":  "metrics.textfile",
	"listen":        "server.listen",
	"root":          "server.root",
}

// Load reads configuration in this order of precedence: flags, EOG_RATE_*
// environment variables, the config file, defaults. An empty configPath
// looks for config.yaml in the user's config directory; a missing default
// file is not an error.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if err := readConfigFile(v, configPath); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("EOG_RATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Scalar keys must be known to viper for environment overrides to
	// reach Unmarshal.
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func readConfigFile(v *viper.Viper, configPath string) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && configPath == "" {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "eog-rate")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "eog-rate")
}

func getDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "eog-rate")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".local", "share", "eog-rate")
}

// GetDefaultConfigPath returns the config file used when none is given.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}
