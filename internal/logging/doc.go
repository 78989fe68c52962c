// Package logging provides a simple leveled logging interface for eog-rate.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The level defaults to the DEBUG and LOG_LEVEL environment variables and
// is normally replaced from configuration with Configure. Log output goes
// to stderr so it never mixes with listing output on stdout; a log file,
// rotated with lumberjack, can be added alongside.
package logging
