package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eog-rate/internal/attrs"
	"eog-rate/internal/middleware"
	"eog-rate/internal/store/memory"
)

// setupRoot creates a served root holding:
//
//	a.jpg      rating 1
//	b.txt      tags "x"
//	c.jpg      rating 3, tags "cat, dog"
//	d.png      (no attributes)
//	sub/e.jpg  rating 2, comment "nice"
func setupRoot(t *testing.T) (*Handlers, *memory.Backend, string) {
	t.Helper()

	root := t.TempDir()
	for _, name := range []string{"a.jpg", "b.txt", "c.jpg", "d.png", "sub/e.jpg"} {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	backend := memory.New()
	backend.Put(root, "a.jpg", attrs.Record{attrs.KeyRating: "1"})
	backend.Put(root, "b.txt", attrs.Record{attrs.KeyTags: "x"})
	backend.Put(root, "c.jpg", attrs.Record{attrs.KeyRating: "3", attrs.KeyTags: "cat, dog"})
	backend.Put(filepath.Join(root, "sub"), "e.jpg", attrs.Record{attrs.KeyRating: "2", attrs.KeyComment: "nice"})

	return New(backend, root), backend, root
}

func listFiles(t *testing.T, h *Handlers, params url.Values) (*httptest.ResponseRecorder, []FileEntry) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/files?"+params.Encode(), http.NoBody)
	w := httptest.NewRecorder()
	h.ListFiles(w, req)

	var entries []FileEntry
	if w.Code == http.StatusOK {
		if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
	}
	return w, entries
}

func entryPaths(entries []FileEntry) string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return strings.Join(paths, ",")
}

// =============================================================================
// ListFiles Tests
// =============================================================================

func TestListFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params url.Values
		want   string
	}{
		{
			name:   "Attributed files only",
			params: url.Values{},
			want:   "a.jpg,b.txt,c.jpg,sub/e.jpg",
		},
		{
			name:   "All files",
			params: url.Values{"all": {"true"}},
			want:   "a.jpg,b.txt,c.jpg,d.png,sub/e.jpg",
		},
		{
			name:   "Images only",
			params: url.Values{"all": {"1"}, "images": {"true"}},
			want:   "a.jpg,c.jpg,d.png,sub/e.jpg",
		},
		{
			name:   "Query",
			params: url.Values{"query": {"r >= 2"}},
			want:   "c.jpg,sub/e.jpg",
		},
		{
			name:   "Query on tags",
			params: url.Values{"query": {"'cat' in t or 'x' in tags"}},
			want:   "b.txt,c.jpg",
		},
		{
			name:   "Subdirectory",
			params: url.Values{"path": {"sub"}},
			want:   "sub/e.jpg",
		},
		{
			name:   "Single file",
			params: url.Values{"path": {"d.png"}, "all": {"true"}},
			want:   "d.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := setupRoot(t)

			w, entries := listFiles(t, h, tt.params)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
			}
			if got := entryPaths(entries); got != tt.want {
				t.Errorf("paths = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListFilesEntryFields(t *testing.T) {
	t.Parallel()

	h, _, _ := setupRoot(t)

	_, entries := listFiles(t, h, url.Values{"query": {"r == 3"}})
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.Rating != 3 {
		t.Errorf("Rating = %d, want 3", e.Rating)
	}
	if strings.Join(e.Tags, ",") != "cat,dog" {
		t.Errorf("Tags = %v, want [cat dog]", e.Tags)
	}
	if e.MimeType != "image/jpeg" {
		t.Errorf("MimeType = %q, want image/jpeg", e.MimeType)
	}
}

func TestListFilesEmptyIsArray(t *testing.T) {
	t.Parallel()

	h, _, _ := setupRoot(t)

	req := httptest.NewRequest(http.MethodGet, "/api/files?query=r+%3E+10", http.NoBody)
	w := httptest.NewRecorder()
	h.ListFiles(w, req)

	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
	if got := w.Header().Get(middleware.FilesHeader); got != "0" {
		t.Errorf("%s = %q, want 0", middleware.FilesHeader, got)
	}
}

func TestListFilesReportsCount(t *testing.T) {
	t.Parallel()

	h, _, _ := setupRoot(t)

	w, entries := listFiles(t, h, url.Values{"query": {"r >= 2"}})
	if len(entries) != 2 {
		t.Fatalf("entries = %s, want c.jpg and sub/e.jpg", entryPaths(entries))
	}
	if got := w.Header().Get(middleware.FilesHeader); got != "2" {
		t.Errorf("%s = %q, want 2", middleware.FilesHeader, got)
	}
}

func TestListFilesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params url.Values
		status int
	}{
		{"Syntax error", url.Values{"query": {"r >="}}, http.StatusBadRequest},
		{"Unknown function", url.Values{"query": {"nope(r)"}}, http.StatusBadRequest},
		{"Evaluation error", url.Values{"query": {"r + c"}}, http.StatusBadRequest},
		{"Escaping path", url.Values{"path": {"../"}}, http.StatusBadRequest},
		{"Absolute path", url.Values{"path": {"/etc"}}, http.StatusBadRequest},
		{"Missing path", url.Values{"path": {"missing"}}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := setupRoot(t)

			w, _ := listFiles(t, h, tt.params)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

// =============================================================================
// GetFile Tests
// =============================================================================

func TestGetFile(t *testing.T) {
	t.Parallel()

	h, _, _ := setupRoot(t)

	req := httptest.NewRequest(http.MethodGet, "/api/file?path=sub/e.jpg", http.NoBody)
	w := httptest.NewRecorder()
	h.GetFile(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var e FileEntry
	if err := json.NewDecoder(w.Body).Decode(&e); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if e.Path != "sub/e.jpg" || e.Rating != 2 || e.Comment != "nice" {
		t.Errorf("entry = %+v", e)
	}
	if len(e.Tags) != 0 {
		t.Errorf("Tags = %v, want none", e.Tags)
	}
}

func TestGetFileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"No path", "", http.StatusBadRequest},
		{"Missing file", "path=nope.jpg", http.StatusNotFound},
		{"Directory", "path=sub", http.StatusBadRequest},
		{"Escaping path", "path=../x", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := setupRoot(t)

			req := httptest.NewRequest(http.MethodGet, "/api/file?"+tt.query, http.NoBody)
			w := httptest.NewRecorder()
			h.GetFile(w, req)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

// =============================================================================
// ModifyFiles Tests
// =============================================================================

func modifyFiles(t *testing.T, h *Handlers, body string) (*httptest.ResponseRecorder, ModifyResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/files/modify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ModifyFiles(w, req)

	var resp ModifyResponse
	if w.Code == http.StatusOK {
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
	}
	return w, resp
}

func TestModifyFiles(t *testing.T) {
	t.Parallel()

	h, backend, root := setupRoot(t)

	body := `{"paths":["a.jpg","d.png"],"addTags":["sunset"],"rating":4}`
	w, resp := modifyFiles(t, h, body)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp.Written != 2 {
		t.Errorf("Written = %d, want 2", resp.Written)
	}
	if got := w.Header().Get(middleware.FilesHeader); got != "2" {
		t.Errorf("%s = %q, want 2", middleware.FilesHeader, got)
	}
	if len(resp.Modified) != 2 || resp.Modified[0].Path != "a.jpg" || resp.Modified[1].Path != "d.png" {
		t.Errorf("Modified = %+v", resp.Modified)
	}

	rec, ok := backend.Get(root, "d.png")
	if !ok {
		t.Fatal("expected record for d.png")
	}
	if rec[attrs.KeyRating] != "4" || rec[attrs.KeyTags] != "sunset" {
		t.Errorf("d.png record = %v", rec)
	}

	// Same request again changes nothing
	writes := backend.Writes()
	w, resp = modifyFiles(t, h, body)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if resp.Written != 0 {
		t.Errorf("Written = %d on repeat, want 0", resp.Written)
	}
	if backend.Writes() != writes {
		t.Errorf("backend writes grew from %d to %d", writes, backend.Writes())
	}
}

func TestModifyFilesClearsFields(t *testing.T) {
	t.Parallel()

	h, backend, root := setupRoot(t)

	w, resp := modifyFiles(t, h, `{"paths":["sub/e.jpg"],"rating":0,"comment":""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp.Written != 1 {
		t.Errorf("Written = %d, want 1", resp.Written)
	}

	if rec, ok := backend.Get(filepath.Join(root, "sub"), "e.jpg"); ok && attrs.HasAny(rec) {
		t.Errorf("expected e.jpg to be cleared, got %v", rec)
	}
}

func TestModifyFilesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Invalid JSON", `{`, http.StatusBadRequest},
		{"No paths", `{"rating":1}`, http.StatusBadRequest},
		{"No changes", `{"paths":["a.jpg"]}`, http.StatusBadRequest},
		{"Escaping path", `{"paths":["../a.jpg"],"rating":1}`, http.StatusBadRequest},
		{"Missing file", `{"paths":["nope.jpg"],"rating":1}`, http.StatusNotFound},
		{"Directory", `{"paths":["sub"],"rating":1}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := setupRoot(t)

			w, _ := modifyFiles(t, h, tt.body)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.status, w.Body.String())
			}
		})
	}
}
