package mutation

import (
	"context"
	"strconv"

	"eog-rate/internal/attrs"
	"eog-rate/internal/logging"
	"eog-rate/internal/metrics"
	"eog-rate/internal/store"
	"eog-rate/internal/tags"
)

// Changes describes what to do to every target file. Nil pointers and
// empty lists leave the corresponding field untouched.
type Changes struct {
	// AddTags are added to the current tags, then RemoveTags are removed,
	// so a tag in both lists ends up removed.
	AddTags    []string `json:"addTags,omitempty"`
	RemoveTags []string `json:"removeTags,omitempty"`

	// SetTags replaces the tag set outright, ignoring AddTags and
	// RemoveTags. It uses the stored text form: "a, b".
	SetTags *string `json:"setTags,omitempty"`

	// Rating of zero clears the rating.
	Rating *int `json:"rating,omitempty"`

	// Comment of "" clears the comment.
	Comment *string `json:"comment,omitempty"`
}

// Empty reports whether c would not touch any field.
func (c Changes) Empty() bool {
	return len(c.AddTags) == 0 &&
		len(c.RemoveTags) == 0 &&
		c.SetTags == nil &&
		c.Rating == nil &&
		c.Comment == nil
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path string `json:"path"`
	// Fields lists the attribute keys that changed, sorted.
	Fields  []string `json:"fields,omitempty"`
	Written bool     `json:"written"`
}

// Result collects the files processed by Apply, in order.
type Result struct {
	Files []FileResult `json:"files"`
}

// Written returns the number of files whose record was written.
func (r Result) Written() int {
	n := 0
	for _, f := range r.Files {
		if f.Written {
			n++
		}
	}
	return n
}

// Apply changes every file in paths, in order. It stops at the first
// error and returns the files completed so far alongside it.
func Apply(ctx context.Context, s *store.Store, paths []string, c Changes) (Result, error) {
	var result Result
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		fr, err := ApplyFile(ctx, s, path, c)
		if err != nil {
			metrics.MutationFilesTotal.WithLabelValues("error").Inc()
			return result, err
		}
		result.Files = append(result.Files, fr)
	}
	return result, nil
}

// ApplyFile changes a single file.
func ApplyFile(ctx context.Context, s *store.Store, path string, c Changes) (FileResult, error) {
	h, err := s.Load(ctx, path)
	if err != nil {
		return FileResult{}, err
	}

	rec := h.Record()
	applyTags(h, rec, c)
	applyRating(h, rec, c)
	if c.Comment != nil && rec[attrs.KeyComment] != *c.Comment {
		h.Set(attrs.KeyComment, *c.Comment)
	}

	fields := h.Changed()
	written, err := h.Commit(ctx)
	if err != nil {
		return FileResult{}, err
	}

	if written {
		metrics.MutationFilesTotal.WithLabelValues("written").Inc()
		for _, f := range fields {
			metrics.MutationFieldWrites.WithLabelValues(f).Inc()
		}
		logging.Debug("Updated %v for %s", fields, path)
	} else {
		metrics.MutationFilesTotal.WithLabelValues("unchanged").Inc()
	}

	return FileResult{Path: path, Fields: fields, Written: written}, nil
}

func applyTags(h *store.Handle, rec attrs.Record, c Changes) {
	if c.SetTags == nil && len(c.AddTags) == 0 && len(c.RemoveTags) == 0 {
		return
	}

	current := attrs.Tags(rec)
	var next tags.Set
	if c.SetTags != nil {
		next = tags.Parse(*c.SetTags)
	} else {
		next = current.Clone()
		for _, t := range c.AddTags {
			next.Add(t)
		}
		for _, t := range c.RemoveTags {
			next.Remove(t)
		}
	}

	if next.Equal(current) {
		return
	}
	h.Set(attrs.KeyTags, tags.Render(next))
}

func applyRating(h *store.Handle, rec attrs.Record, c Changes) {
	if c.Rating == nil {
		return
	}
	if *c.Rating == 0 {
		h.Delete(attrs.KeyRating)
		return
	}
	if _, ok := rec[attrs.KeyRating]; ok && attrs.Rating(rec) == *c.Rating {
		return
	}
	h.Set(attrs.KeyRating, strconv.Itoa(*c.Rating))
}
