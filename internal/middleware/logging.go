package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"eog-rate/internal/logging"
)

// FilesHeader carries the number of files a handler listed or wrote. The
// access log reports it as x-files.
const FilesHeader = "X-Eog-Rate-Files"

// w3cFields is the #Fields directive for the access log.
const w3cFields = "#Fields: date time c-ip cs-method cs-uri-stem sc-status sc-bytes time-taken x-backend x-path x-query x-files"

// responseWriter records the status and size of a response.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
	wroteHeader  bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

// LoggingConfig holds configuration for the access log
type LoggingConfig struct {
	// SkipPaths are path prefixes that are never logged
	SkipPaths       []string
	LogHealthChecks bool

	// Backend names the attribute store, logged as x-backend.
	Backend string
}

// DefaultLoggingConfig skips /metrics and health checks.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{SkipPaths: []string{"/metrics"}}
}

var healthCheckPaths = map[string]bool{
	"/health": true,
	"/livez":  true,
}

// Logger returns middleware writing one W3C extended log line per request.
// Besides the standard fields it records the store backend, the path and
// query parameters of attribute requests, and the file count reported by
// the handler through FilesHeader.
func Logger(config LoggingConfig) func(http.Handler) http.Handler {
	logging.Println(w3cFields)
	backend := w3cValue(config.Backend)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldSkip(r.URL.Path, config) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			logging.Println(accessLine(r, wrapped, backend, time.Since(start)))
		})
	}
}

func accessLine(r *http.Request, rw *responseWriter, backend string, d time.Duration) string {
	now := time.Now().UTC()
	q := r.URL.Query()

	return fmt.Sprintf("%s %s %s %s %s %d %d %d %s %s %s %s",
		now.Format("2006-01-02"),
		now.Format("15:04:05"),
		w3cValue(clientIP(r)),
		w3cValue(r.Method),
		w3cValue(r.URL.Path),
		rw.statusCode,
		rw.bytesWritten,
		d.Milliseconds(),
		backend,
		w3cValue(q.Get("path")),
		w3cValue(q.Get("query")),
		w3cValue(rw.Header().Get(FilesHeader)),
	)
}

func shouldSkip(path string, config LoggingConfig) bool {
	for _, skipPath := range config.SkipPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return !config.LogHealthChecks && healthCheckPaths[path]
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// w3cValue renders one field: "-" when empty, quoted with doubled quotes
// when it contains blanks. Control characters are dropped and line breaks
// become spaces so a request cannot forge log lines.
func w3cValue(s string) string {
	s = sanitizeLogField(s)
	if s == "" {
		return "-"
	}
	if strings.ContainsAny(s, " \t\"") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func sanitizeLogField(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r':
			b.WriteRune(' ')
		case r < 0x20 && r != '\t', r == 0x7f:
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
