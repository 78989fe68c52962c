package main

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eog-rate/internal/attrs"
	"eog-rate/internal/handlers"
	"eog-rate/internal/startup"
	"eog-rate/internal/store/memory"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.Backend, string) {
	t.Helper()

	root := t.TempDir()
	for _, name := range []string{"a.jpg", "b.jpg"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	backend := memory.New()
	backend.Put(root, "a.jpg", attrs.Record{attrs.KeyRating: "2"})

	router := setupRouter(handlers.New(backend, root))
	srv := httptest.NewServer(wrapHandler(router, backend.Name(), false))
	t.Cleanup(srv.Close)
	return srv, backend, root
}

func TestSetupRouterRoutes(t *testing.T) {
	router := setupRouter(handlers.New(memory.New(), t.TempDir()))

	routes, err := startup.GetRoutes(router)
	if err != nil {
		t.Fatalf("GetRoutes: %v", err)
	}

	got := make(map[string]bool)
	for _, r := range routes {
		got[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"HEAD /health",
		"GET /livez",
		"GET /version",
		"GET /metrics",
		"GET /api/files",
		"POST /api/files/modify",
		"GET /api/file",
	} {
		if !got[want] {
			t.Errorf("route %q not registered", want)
		}
	}
}

func TestServeListAndModify(t *testing.T) {
	srv, backend, root := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/files")
	if err != nil {
		t.Fatalf("GET /api/files: %v", err)
	}
	defer resp.Body.Close()

	var entries []handlers.FileEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "a.jpg" || entries[0].Rating != 2 {
		t.Errorf("entries = %+v", entries)
	}

	body := strings.NewReader(`{"paths":["b.jpg"],"addTags":["cat"]}`)
	resp, err = http.Post(srv.URL+"/api/files/modify", "application/json", body)
	if err != nil {
		t.Fatalf("POST /api/files/modify: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if rec, ok := backend.Get(root, "b.jpg"); !ok || rec[attrs.KeyTags] != "cat" {
		t.Errorf("b.jpg record = %v", rec)
	}
}

func TestServeMethodNotAllowed(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/files/modify")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestServeCompressesJSON(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/files?all=true", http.NoBody)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Accept-Encoding", "gzip")

	// A transport with compression disabled leaves the body untouched.
	client := &http.Client{Transport: &http.Transport{DisableCompression: true}}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("Content-Encoding") != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", resp.Header.Get("Content-Encoding"))
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	data, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"b.jpg"`) {
		t.Errorf("body = %s", data)
	}
}
