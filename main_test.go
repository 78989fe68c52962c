package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupTree creates empty files under a temp directory and a config file
// selecting the sidecar store. It returns the directory and config path.
func setupTree(t *testing.T, files ...string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create parent of %s: %v", f, err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", f, err)
		}
	}

	config := filepath.Join(t.TempDir(), "config.yaml")
	content := "logging:\n  level: error\nstore:\n  type: sidecar\n"
	if err := os.WriteFile(config, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return dir, config
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()

	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("eog-rate %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func lines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestModifyThenList(t *testing.T) {
	dir, config := setupTree(t, "a.jpg", "b.jpg", "c.jpg")
	a := filepath.Join(dir, "a.jpg")
	c := filepath.Join(dir, "c.jpg")

	mustExecute(t, "--config", config, "--rating", "3", "--tag", "cat", "--tag", "dog", a)
	mustExecute(t, "--config", config, "--comment", "sunset", c)

	got := lines(mustExecute(t, "--config", config, dir))
	want := []string{
		"*** " + a + "\t [cat, dog]",
		"    " + c + "\t #sunset",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("list output:\n%q\nwant:\n%q", got, want)
	}
}

func TestListAll(t *testing.T) {
	dir, config := setupTree(t, "a.jpg", "b.jpg", "notes.txt", "sub/c.png")
	mustExecute(t, "--config", config, "--rating", "1", filepath.Join(dir, "b.jpg"))

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"Attributed only", []string{"-p", dir}, []string{"b.jpg"}},
		{"All", []string{"-p", "-a", dir}, []string{"a.jpg", "b.jpg", "notes.txt", "sub/c.png"}},
		{"All images", []string{"-p", "--all", "--images", dir}, []string{"a.jpg", "b.jpg", "sub/c.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", config}, tt.args...)
			got := lines(mustExecute(t, args...))

			want := make([]string, len(tt.want))
			for i, w := range tt.want {
				want[i] = filepath.Join(dir, w)
			}
			if strings.Join(got, ",") != strings.Join(want, ",") {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	dir, config := setupTree(t, "a.jpg", "b.jpg", "c.jpg", "d.jpg")
	for name, rating := range map[string]string{"a.jpg": "1", "c.jpg": "2", "d.jpg": "5"} {
		mustExecute(t, "--config", config, "--rating", rating, filepath.Join(dir, name))
	}
	mustExecute(t, "--config", config, "--tag", "beach", filepath.Join(dir, "d.jpg"))

	tests := []struct {
		query string
		want  []string
	}{
		{"r >= 2", []string{"c.jpg", "d.jpg"}},
		{"'beach' in t", []string{"d.jpg"}},
		{"not t", []string{"a.jpg", "c.jpg"}},
		{"r > 10", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := lines(mustExecute(t, "--config", config, "-p", "-q", tt.query, dir))

			var want []string
			for _, w := range tt.want {
				want = append(want, filepath.Join(dir, w))
			}
			if strings.Join(got, ",") != strings.Join(want, ",") {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestClearAndSetTags(t *testing.T) {
	dir, config := setupTree(t, "a.jpg")
	a := filepath.Join(dir, "a.jpg")

	mustExecute(t, "--config", config, "--tag", "x", "--tag", "y", a)
	mustExecute(t, "--config", config, "--set-tags", "z", "--tag", "ignored", "--untag", "z", a)

	got := mustExecute(t, "--config", config, "-q", "t == {'z'}", "-p", dir)
	if strings.TrimSpace(got) != a {
		t.Errorf("expected set-tags to win, got %q", got)
	}

	mustExecute(t, "--config", config, "--set-tags", "", a)
	if got := mustExecute(t, "--config", config, "-p", dir); got != "" {
		t.Errorf("expected no attributed files, got %q", got)
	}

	mustExecute(t, "--config", config, "--rating", "4", a)
	mustExecute(t, "--config", config, "--rating", "0", a)
	if got := mustExecute(t, "--config", config, "-p", dir); got != "" {
		t.Errorf("expected rating to be cleared, got %q", got)
	}
}

func TestErrors(t *testing.T) {
	dir, config := setupTree(t, "a.jpg")
	mustExecute(t, "--config", config, "--rating", "2", filepath.Join(dir, "a.jpg"))

	tests := []struct {
		name string
		args []string
	}{
		{"No paths", []string{"--config", config}},
		{"Missing path", []string{"--config", config, filepath.Join(dir, "missing")}},
		{"Syntax error", []string{"--config", config, "-q", "r >=", dir}},
		{"Evaluation error", []string{"--config", config, "-q", "r + c", dir}},
		{"Query with modification", []string{"--config", config, "-q", "r", "--rating", "1", dir}},
		{"Modify missing file", []string{"--config", config, "--rating", "1", filepath.Join(dir, "nope.jpg")}},
		{"Unknown store", []string{"--config", config, "--store", "nosuch", dir}},
		{"Missing config", []string{"--config", filepath.Join(dir, "nope.yaml"), dir}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if out != "" {
				t.Errorf("expected no output, got %q", out)
			}
		})
	}
}

func TestMetricsFile(t *testing.T) {
	dir, config := setupTree(t, "a.jpg")
	path := filepath.Join(t.TempDir(), "eog-rate.prom")

	mustExecute(t, "--config", config, "--metrics-file", path, "-a", dir)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(data), "eog_rate_walk_entries_visited_total") {
		t.Errorf("metrics file lacks walk counters:\n%s", data)
	}
}

func TestVersionCommand(t *testing.T) {
	out := mustExecute(t, "version")
	if !strings.HasPrefix(out, "eog-rate ") {
		t.Errorf("version output = %q", out)
	}
}

func TestCommentWidth(t *testing.T) {
	tests := []struct {
		configured int
		want       int
	}{
		{0, 0},
		{20, 20},
		{-1, 0}, // not a terminal
	}

	for _, tt := range tests {
		if got := commentWidth(tt.configured, &bytes.Buffer{}); got != tt.want {
			t.Errorf("commentWidth(%d) = %d, want %d", tt.configured, got, tt.want)
		}
	}
}
