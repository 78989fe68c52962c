package xattr

import (
	"reflect"
	"testing"
)

func TestSplitNames(t *testing.T) {
	b := New(Config{})
	buf := []byte("user.eog-rate.rating\x00security.selinux\x00user.eog-rate.tags\x00user.eog-rate.\x00")

	got := b.splitNames(buf)
	want := []string{"rating", "tags"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitNames() = %v, want %v", got, want)
	}
}

func TestCustomPrefix(t *testing.T) {
	b := New(Config{Prefix: "user.photos."})
	got := b.splitNames([]byte("user.photos.comment\x00user.eog-rate.rating\x00"))
	if len(got) != 1 || got[0] != "comment" {
		t.Errorf("splitNames() = %v", got)
	}
}
