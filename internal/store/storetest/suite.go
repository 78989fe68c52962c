// Package storetest holds a conformance suite every store.Backend must pass.
package storetest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eog-rate/internal/attrs"
	"eog-rate/internal/store"
)

// BackendTestSuite tests the Backend contract, not implementation details.
type BackendTestSuite struct {
	// NewBackend creates a fresh backend for each test. The suite closes it.
	NewBackend func(t *testing.T) store.Backend
}

// Run executes all tests in the suite.
func (suite *BackendTestSuite) Run(test *testing.T) {
	test.Run("ReadDir_Empty", suite.TestReadDirEmpty)
	test.Run("WriteFile_RoundTrip", suite.TestWriteFileRoundTrip)
	test.Run("WriteFile_Replaces", suite.TestWriteFileReplaces)
	test.Run("WriteFile_EmptyRemoves", suite.TestWriteFileEmptyRemoves)
	test.Run("Directories_Isolated", suite.TestDirectoriesIsolated)
	test.Run("Names_Special", suite.TestSpecialNames)
	test.Run("Store_Integration", suite.TestStoreIntegration)
}

func (suite *BackendTestSuite) backend(test *testing.T) store.Backend {
	test.Helper()
	b := suite.NewBackend(test)
	test.Cleanup(func() {
		assert.NoError(test, b.Close())
	})
	return b
}

// dirWithFiles creates a temporary directory holding empty files.
func dirWithFiles(test *testing.T, names ...string) string {
	test.Helper()
	dir := test.TempDir()
	for _, name := range names {
		require.NoError(test, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	return dir
}

// TestReadDirEmpty verifies a directory without data yields an empty map.
func (suite *BackendTestSuite) TestReadDirEmpty(test *testing.T) {
	b := suite.backend(test)
	dir := dirWithFiles(test, "a.jpg")

	records, err := b.ReadDir(test.Context(), dir)

	require.NoError(test, err)
	assert.Empty(test, records)
}

// TestWriteFileRoundTrip verifies written records are read back unchanged.
func (suite *BackendTestSuite) TestWriteFileRoundTrip(test *testing.T) {
	b := suite.backend(test)
	dir := dirWithFiles(test, "a.jpg", "b.jpg")
	ctx := test.Context()

	rec := attrs.Record{attrs.KeyRating: "3", attrs.KeyTags: "beach, sunset", attrs.KeyComment: "keeper"}
	require.NoError(test, b.WriteFile(ctx, dir, "a.jpg", rec))

	records, err := b.ReadDir(ctx, dir)
	require.NoError(test, err)
	assert.Len(test, records, 1, "only the written file should have a record")
	assert.Equal(test, rec, records["a.jpg"])
}

// TestWriteFileReplaces verifies a write replaces the whole record.
func (suite *BackendTestSuite) TestWriteFileReplaces(test *testing.T) {
	b := suite.backend(test)
	dir := dirWithFiles(test, "a.jpg")
	ctx := test.Context()

	require.NoError(test, b.WriteFile(ctx, dir, "a.jpg", attrs.Record{attrs.KeyRating: "1", attrs.KeyTags: "x"}))
	require.NoError(test, b.WriteFile(ctx, dir, "a.jpg", attrs.Record{attrs.KeyRating: "2"}))

	records, err := b.ReadDir(ctx, dir)
	require.NoError(test, err)
	assert.Equal(test, attrs.Record{attrs.KeyRating: "2"}, records["a.jpg"])
}

// TestWriteFileEmptyRemoves verifies an empty record removes the entry.
func (suite *BackendTestSuite) TestWriteFileEmptyRemoves(test *testing.T) {
	b := suite.backend(test)
	dir := dirWithFiles(test, "a.jpg", "b.jpg")
	ctx := test.Context()

	require.NoError(test, b.WriteFile(ctx, dir, "a.jpg", attrs.Record{attrs.KeyRating: "1"}))
	require.NoError(test, b.WriteFile(ctx, dir, "b.jpg", attrs.Record{attrs.KeyRating: "2"}))
	require.NoError(test, b.WriteFile(ctx, dir, "a.jpg", attrs.Record{}))

	records, err := b.ReadDir(ctx, dir)
	require.NoError(test, err)
	assert.NotContains(test, records, "a.jpg")
	assert.Contains(test, records, "b.jpg")

	// Removing an entry that does not exist is not an error
	require.NoError(test, b.WriteFile(ctx, dir, "a.jpg", attrs.Record{}))
}

// TestDirectoriesIsolated verifies records are scoped to their directory.
func (suite *BackendTestSuite) TestDirectoriesIsolated(test *testing.T) {
	b := suite.backend(test)
	parent := dirWithFiles(test, "a.jpg")
	child := filepath.Join(parent, "sub")
	require.NoError(test, os.Mkdir(child, 0o755))
	require.NoError(test, os.WriteFile(filepath.Join(child, "a.jpg"), nil, 0o644))
	ctx := test.Context()

	require.NoError(test, b.WriteFile(ctx, parent, "a.jpg", attrs.Record{attrs.KeyRating: "1"}))
	require.NoError(test, b.WriteFile(ctx, child, "a.jpg", attrs.Record{attrs.KeyRating: "2"}))

	parentRecords, err := b.ReadDir(ctx, parent)
	require.NoError(test, err)
	childRecords, err := b.ReadDir(ctx, child)
	require.NoError(test, err)

	assert.Equal(test, "1", parentRecords["a.jpg"][attrs.KeyRating])
	assert.Equal(test, "2", childRecords["a.jpg"][attrs.KeyRating])
	assert.Len(test, parentRecords, 1)
}

// TestSpecialNames verifies names with spaces, commas and unicode survive.
func (suite *BackendTestSuite) TestSpecialNames(test *testing.T) {
	names := []string{"my photo.jpg", "a,b.png", "ünïcode 日本.jpg"}
	b := suite.backend(test)
	dir := dirWithFiles(test, names...)
	ctx := test.Context()

	for i, name := range names {
		rec := attrs.Record{attrs.KeyComment: "comment, with\ttab " + name, attrs.KeyRating: string(rune('1' + i))}
		require.NoError(test, b.WriteFile(ctx, dir, name, rec))
	}

	records, err := b.ReadDir(ctx, dir)
	require.NoError(test, err)
	require.Len(test, records, len(names))
	for i, name := range names {
		assert.Equal(test, string(rune('1'+i)), records[name][attrs.KeyRating], name)
		assert.Equal(test, "comment, with\ttab "+name, records[name][attrs.KeyComment], name)
	}
}

// TestStoreIntegration drives the backend through the Store adapter.
func (suite *BackendTestSuite) TestStoreIntegration(test *testing.T) {
	b := suite.backend(test)
	dir := dirWithFiles(test, "a.jpg", "b.jpg")
	ctx := test.Context()
	s := store.New(b, store.Options{Cache: true})

	h, err := s.Load(ctx, filepath.Join(dir, "b.jpg"))
	require.NoError(test, err)
	h.Set(attrs.KeyTags, "x, y")
	written, err := h.Commit(ctx)
	require.NoError(test, err)
	assert.True(test, written)

	// A fresh store sees the committed data
	view, err := store.New(b, store.Options{}).View(ctx, dir)
	require.NoError(test, err)
	assert.Equal(test, []string{"b.jpg"}, view.Names())
	rec, ok := view.Get("b.jpg")
	require.True(test, ok)
	assert.Equal(test, "x, y", rec[attrs.KeyTags])
}
