package store

import (
	"iter"

	"github.com/tidwall/btree"

	"eog-rate/internal/attrs"
)

// DirectoryView is a read-only snapshot of the records stored for one
// directory. It only contains files the backend holds data for and
// iterates them in ascending file name order.
type DirectoryView struct {
	dir     string
	entries *btree.Map[string, attrs.Record]
}

func newDirectoryView(dir string, records map[string]attrs.Record) *DirectoryView {
	v := &DirectoryView{
		dir:     dir,
		entries: btree.NewMap[string, attrs.Record](0),
	}
	for name, rec := range records {
		if len(rec) == 0 {
			continue
		}
		v.entries.Set(name, rec.Clone())
	}
	return v
}

// Dir returns the absolute directory the view belongs to.
func (v *DirectoryView) Dir() string {
	return v.dir
}

// Len returns the number of files with stored records.
func (v *DirectoryView) Len() int {
	return v.entries.Len()
}

// Get returns a copy of the record stored for name.
func (v *DirectoryView) Get(name string) (attrs.Record, bool) {
	rec, ok := v.entries.Get(name)
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Names returns the file names in ascending order.
func (v *DirectoryView) Names() []string {
	return v.entries.Keys()
}

// All iterates file names and record copies in ascending name order.
func (v *DirectoryView) All() iter.Seq2[string, attrs.Record] {
	return func(yield func(string, attrs.Record) bool) {
		v.entries.Scan(func(name string, rec attrs.Record) bool {
			return yield(name, rec.Clone())
		})
	}
}

// put replaces the cached record for name after a commit.
func (v *DirectoryView) put(name string, rec attrs.Record) {
	if len(rec) == 0 {
		v.entries.Delete(name)
		return
	}
	v.entries.Set(name, rec.Clone())
}
