package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"eog-rate/internal/logging"

	"github.com/goccy/go-json"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}

// resolvePath maps a request path onto the served root. An empty path is
// the root itself.
func (h *Handlers) resolvePath(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("path must be relative: %q", rel)
	}

	full := filepath.Join(h.root, filepath.FromSlash(rel))
	if !isSubPath(h.root, full) {
		return "", fmt.Errorf("path escapes root: %q", rel)
	}
	return full, nil
}

// relativePath is the inverse of resolvePath, using forward slashes.
func (h *Handlers) relativePath(full string) string {
	rel, err := filepath.Rel(h.root, full)
	if err != nil {
		return full
	}
	return filepath.ToSlash(rel)
}

func isSubPath(parent, child string) bool {
	parent, _ = filepath.Abs(parent)
	child, _ = filepath.Abs(child)
	if child == parent {
		return true
	}
	return strings.HasPrefix(child, strings.TrimSuffix(parent, string(filepath.Separator))+string(filepath.Separator))
}
