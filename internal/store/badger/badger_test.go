package badger

import (
	"context"
	"testing"

	"eog-rate/internal/attrs"
	"eog-rate/internal/store"
	"eog-rate/internal/store/storetest"
)

func TestBadgerBackendConformance(t *testing.T) {
	suite := &storetest.BackendTestSuite{
		NewBackend: func(t *testing.T) store.Backend {
			b, err := New(Config{InMemory: true})
			if err != nil {
				t.Fatalf("failed to open badger: %v", err)
			}
			return b
		},
	}
	suite.Run(t)
}

func TestNewRequiresPath(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected an error without path or in_memory")
	}
}

func TestPrefixDoesNotLeakIntoSiblingDirectories(t *testing.T) {
	b, err := New(Config{InMemory: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()
	ctx := context.Background()

	// "/photos" must not see records of "/photos2"
	if err := b.WriteFile(ctx, "/photos2", "a.jpg", attrs.Record{attrs.KeyRating: "1"}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	records, err := b.ReadDir(ctx, "/photos")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %v", records)
	}
}

func TestPersistsOnDisk(t *testing.T) {
	path := t.TempDir()
	ctx := context.Background()

	b, err := New(Config{Path: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := b.WriteFile(ctx, "/d", "x.jpg", attrs.Record{attrs.KeyTags: "a"}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err = New(Config{Path: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()

	records, err := b.ReadDir(ctx, "/d")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if records["x.jpg"][attrs.KeyTags] != "a" {
		t.Errorf("record not persisted: %v", records)
	}
}
