package startup

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.GoVersion == "" {
		t.Error("Expected GoVersion to be set")
	}
	if info.OS == "" {
		t.Error("Expected OS to be set")
	}
	if info.Arch == "" {
		t.Error("Expected Arch to be set")
	}

	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
}

func TestGetRouteGroup(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/files", "api/files"},
		{"/api/files/modify", "api/files"},
		{"/api/file", "api/file"},
		{"/health", "health"},
		{"/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := getRouteGroup(tt.path); got != tt.want {
				t.Errorf("getRouteGroup(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestGetRoutes(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/files", func(_ http.ResponseWriter, _ *http.Request) {}).Methods("GET").Name("files")
	r.HandleFunc("/health", func(_ http.ResponseWriter, _ *http.Request) {})

	routes, err := GetRoutes(r)
	if err != nil {
		t.Fatalf("GetRoutes: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("got %d routes, want 2", len(routes))
	}
	if routes[0].Method != "GET" || routes[0].Path != "/api/files" || routes[0].Name != "files" {
		t.Errorf("routes[0] = %+v", routes[0])
	}
	if routes[1].Method != "*" {
		t.Errorf("routes[1].Method = %q, want *", routes[1].Method)
	}
}

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()

	root, err := ResolveRoot(dir)
	if err != nil {
		t.Fatalf("ResolveRoot: %v", err)
	}
	if root != dir {
		t.Errorf("root = %q, want %q", root, dir)
	}

	if _, err := ResolveRoot(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing root")
	}
}
