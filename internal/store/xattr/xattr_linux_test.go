//go:build linux

package xattr

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"

	"eog-rate/internal/attrs"
	"eog-rate/internal/store"
	"eog-rate/internal/store/storetest"
)

// requireXattrSupport skips the test when the temp filesystem rejects
// user extended attributes (tmpfs on older kernels, some containers).
func requireXattrSupport(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "check")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := unix.Setxattr(path, DefaultPrefix+"check", []byte("1"), 0); err != nil {
		if errors.Is(err, unix.ENOTSUP) || errors.Is(err, unix.EPERM) {
			t.Skipf("user extended attributes not supported: %v", err)
		}
		t.Fatalf("setting a test attribute failed: %v", err)
	}
}

func TestXattrBackendConformance(t *testing.T) {
	requireXattrSupport(t)

	suite := &storetest.BackendTestSuite{
		NewBackend: func(t *testing.T) store.Backend {
			return New(Config{})
		},
	}
	suite.Run(t)
}

func TestForeignAttributesIgnored(t *testing.T) {
	requireXattrSupport(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpg")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := unix.Setxattr(path, "user.other.rating", []byte("9"), 0); err != nil {
		t.Fatalf("Setxattr: %v", err)
	}

	records, err := New(Config{}).ReadDir(t.Context(), dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("attributes outside the prefix should be ignored, got %v", records)
	}
}

func TestReadDirSkipsDanglingSymlinks(t *testing.T) {
	requireXattrSupport(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.jpg"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("missing.jpg", filepath.Join(dir, "gone.jpg")); err != nil {
		t.Fatalf("Symlink: %v", err)
	}

	b := New(Config{})
	if err := b.WriteFile(t.Context(), dir, "a.jpg", attrs.Record{attrs.KeyRating: "3"}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	records, err := b.ReadDir(t.Context(), dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(records) != 1 || records["a.jpg"][attrs.KeyRating] != "3" {
		t.Errorf("records = %v, want only a.jpg rated 3", records)
	}
}
