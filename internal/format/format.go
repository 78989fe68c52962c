// Package format renders walk results for the terminal.
package format

import (
	"fmt"
	"io"
	"strings"

	"eog-rate/internal/attrs"
	"eog-rate/internal/tags"
)

// Line renders one file in detail form: right-aligned stars and the path,
// then the tags and comment when present, separated by tabs.
// A positive commentWidth truncates the comment to that many runes.
func Line(path string, rec attrs.Record, commentWidth int) string {
	rating := attrs.Rating(rec)
	stars := ""
	if rating > 0 {
		stars = strings.Repeat("*", rating)
	}

	parts := []string{fmt.Sprintf("%3s %s", stars, path)}
	if t := attrs.Tags(rec); t.Len() > 0 {
		parts = append(parts, " ["+tags.Render(t)+"]")
	}
	if c := attrs.Comment(rec, commentWidth); c != "" {
		parts = append(parts, " #"+c)
	}
	return strings.Join(parts, "\t")
}

// Printer writes one line per file.
type Printer struct {
	w            io.Writer
	pathOnly     bool
	commentWidth int
}

// NewPrinter creates a printer. With pathOnly set only paths are printed.
func NewPrinter(w io.Writer, pathOnly bool, commentWidth int) *Printer {
	return &Printer{w: w, pathOnly: pathOnly, commentWidth: commentWidth}
}

// Print writes the line for one file.
func (p *Printer) Print(path string, rec attrs.Record) error {
	line := path
	if !p.pathOnly {
		line = Line(path, rec, p.commentWidth)
	}
	_, err := fmt.Fprintln(p.w, line)
	return err
}
