package format

import (
	"bytes"
	"errors"
	"testing"

	"eog-rate/internal/attrs"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name  string
		rec   attrs.Record
		width int
		want  string
	}{
		{"no attributes", nil, 0, "    a/b.jpg"},
		{"one star", attrs.Record{attrs.KeyRating: "1"}, 0, "  * a/b.jpg"},
		{"three stars", attrs.Record{attrs.KeyRating: "3"}, 0, "*** a/b.jpg"},
		{"wide rating", attrs.Record{attrs.KeyRating: "5"}, 0, "***** a/b.jpg"},
		{"negative rating", attrs.Record{attrs.KeyRating: "-2"}, 0, "    a/b.jpg"},
		{"tags", attrs.Record{attrs.KeyTags: "z, a"}, 0, "    a/b.jpg\t [a, z]"},
		{"comment", attrs.Record{attrs.KeyComment: "nice"}, 0, "    a/b.jpg\t #nice"},
		{
			name: "everything",
			rec:  attrs.Record{attrs.KeyRating: "2", attrs.KeyTags: "cat", attrs.KeyComment: "nice"},
			want: " ** a/b.jpg\t [cat]\t #nice",
		},
		{"truncated comment", attrs.Record{attrs.KeyComment: "abcdef"}, 5, "    a/b.jpg\t #ab..."},
		{"comment fits", attrs.Record{attrs.KeyComment: "abc"}, 5, "    a/b.jpg\t #abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Line("a/b.jpg", tt.rec, tt.width); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinter(t *testing.T) {
	rec := attrs.Record{attrs.KeyRating: "1", attrs.KeyTags: "x"}

	var detail bytes.Buffer
	if err := NewPrinter(&detail, false, 0).Print("p.jpg", rec); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if want := "  * p.jpg\t [x]\n"; detail.String() != want {
		t.Errorf("detail = %q, want %q", detail.String(), want)
	}

	var paths bytes.Buffer
	p := NewPrinter(&paths, true, 0)
	for _, path := range []string{"p.jpg", "q.jpg"} {
		if err := p.Print(path, rec); err != nil {
			t.Fatalf("Print: %v", err)
		}
	}
	if want := "p.jpg\nq.jpg\n"; paths.String() != want {
		t.Errorf("path only = %q, want %q", paths.String(), want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestPrinterWriteError(t *testing.T) {
	if err := NewPrinter(failingWriter{}, true, 0).Print("p.jpg", nil); err == nil {
		t.Error("expected write error")
	}
}
