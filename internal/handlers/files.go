package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"eog-rate/internal/attrs"
	"eog-rate/internal/logging"
	"eog-rate/internal/mediatypes"
	"eog-rate/internal/middleware"
	"eog-rate/internal/mutation"
	"eog-rate/internal/predicate"
	"eog-rate/internal/store"
	"eog-rate/internal/walker"

	"github.com/goccy/go-json"
)

// maxModifyBody bounds the size of a modify request.
const maxModifyBody = 1 << 20

// FileEntry is the JSON form of one file's attributes.
type FileEntry struct {
	Path     string   `json:"path"`
	Rating   int      `json:"rating"`
	Tags     []string `json:"tags"`
	Comment  string   `json:"comment,omitempty"`
	MimeType string   `json:"mimeType,omitempty"`
}

// ModifyRequest is the body of POST /api/files/modify.
type ModifyRequest struct {
	Paths []string `json:"paths"`
	mutation.Changes
}

// ModifyResponse reports the outcome of a modify request.
type ModifyResponse struct {
	Modified []mutation.FileResult `json:"modified"`
	Written  int                   `json:"written"`
}

func (h *Handlers) newEntry(path string, rec attrs.Record) FileEntry {
	return FileEntry{
		Path:     h.relativePath(path),
		Rating:   attrs.Rating(rec),
		Tags:     attrs.Tags(rec).Sorted(),
		Comment:  attrs.Comment(rec, 0),
		MimeType: mediatypes.GetMimeType(path),
	}
}

// ListFiles walks a directory below the root and returns the matching files.
//
// Query parameters:
//   - path: directory or file relative to the root (default: the root)
//   - query: predicate expression, e.g. "r >= 2 and 'cat' in t"
//   - all: include files without any attributes
//   - images: only consider image files
func (h *Handlers) ListFiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	target, err := h.resolvePath(q.Get("path"))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var prog *predicate.Program
	if expr := q.Get("query"); expr != "" {
		prog, err = predicate.Compile(expr)
		if err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	wk := &walker.Walker{
		Store:           h.newStore(),
		RequirePresence: !queryBool(q.Get("all")),
	}
	if queryBool(q.Get("images")) {
		wk.Filter = mediatypes.IsImage
	}

	entries := make([]FileEntry, 0)
	for entry, err := range wk.Walk(r.Context(), []string{target}) {
		if err != nil {
			h.writeStoreError(w, "list", err)
			return
		}
		if prog != nil {
			ok, err := prog.Match(entry.Record)
			if err != nil {
				writeJSONError(w, fmt.Sprintf("%s: %v", h.relativePath(entry.Path), err), http.StatusBadRequest)
				return
			}
			if !ok {
				continue
			}
		}
		entries = append(entries, h.newEntry(entry.Path, entry.Record))
	}

	logging.Debug("ListFiles %q: %d file(s)", q.Get("path"), len(entries))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(middleware.FilesHeader, strconv.Itoa(len(entries)))
	writeJSON(w, entries)
}

// GetFile returns the attributes of a single file.
func (h *Handlers) GetFile(w http.ResponseWriter, r *http.Request) {
	rel := r.URL.Query().Get("path")
	if rel == "" {
		writeJSONError(w, "path is required", http.StatusBadRequest)
		return
	}

	target, err := h.resolvePath(rel)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	handle, err := h.newStore().Load(r.Context(), target)
	if err != nil {
		h.writeStoreError(w, "get", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.newEntry(target, handle.Record()))
}

// ModifyFiles applies one set of changes to every listed file.
func (h *Handlers) ModifyFiles(w http.ResponseWriter, r *http.Request) {
	var req ModifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxModifyBody)).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Paths) == 0 {
		writeJSONError(w, "paths is required", http.StatusBadRequest)
		return
	}
	if req.Changes.Empty() {
		writeJSONError(w, "no changes requested", http.StatusBadRequest)
		return
	}

	targets := make([]string, 0, len(req.Paths))
	for _, rel := range req.Paths {
		target, err := h.resolvePath(rel)
		if err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		targets = append(targets, target)
	}

	result, err := mutation.Apply(r.Context(), h.newStore(), targets, req.Changes)
	if err != nil {
		h.writeStoreError(w, "modify", err)
		return
	}

	for i := range result.Files {
		result.Files[i].Path = h.relativePath(result.Files[i].Path)
	}

	logging.Info("Modified %d file(s), %d written", len(result.Files), result.Written())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(middleware.FilesHeader, strconv.Itoa(result.Written()))
	writeJSON(w, ModifyResponse{
		Modified: result.Files,
		Written:  result.Written(),
	})
}

// writeStoreError maps store errors onto HTTP status codes without
// exposing absolute paths.
func (h *Handlers) writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, "file not found", http.StatusNotFound)
	case errors.Is(err, store.ErrNotRegularFile):
		writeJSONError(w, "not a regular file", http.StatusBadRequest)
	default:
		logging.Error("%s failed: %v", op, err)
		writeJSONError(w, "failed to access attribute store", http.StatusInternalServerError)
	}
}

func queryBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
