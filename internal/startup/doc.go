// Package startup handles configuration loading, backend construction and
// lifecycle logging.
//
// # Configuration
//
// Configuration is loaded with [Load] from, in order of precedence:
// command-line flags, EOG_RATE_* environment variables, a YAML file
// ($XDG_CONFIG_HOME/eog-rate/config.yaml by default) and built-in defaults.
//
//	logging:
//	  level: info            # EOG_RATE_LOGGING_LEVEL
//	  file: ""               # copy logs to a rotated file
//	store:
//	  type: sidecar          # sidecar, sqlite, badger, xattr or memory
//	  sidecar:
//	    filename: .dumbattr
//	  sqlite:
//	    path: ~/.local/share/eog-rate/attributes.db
//	display:
//	  comment_width: 0       # -1 follows the terminal width
//	server:
//	  listen: 127.0.0.1:8080
//	  root: .
//	metrics:
//	  textfile: ""
//
// The type-specific store sections are decoded by [OpenBackend] with
// mapstructure, so each backend owns its option names.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Lifecycle Logging
//
// The serve command logs its lifecycle through this package:
//   - [LogBanner]: Version and system information
//   - [LogConfig]: Effective configuration
//   - [LogStoreInit]: Backend initialization timing
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated]: Graceful shutdown start
//   - [LogShutdownComplete]: Shutdown completion
package startup
