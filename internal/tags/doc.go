// Package tags implements the tag set attached to a file and its textual
// form.
//
// Tags are stored as a single comma-separated string. Parsing trims every
// piece and drops empty ones, so "a, , b," and "b,a" describe the same set.
// The canonical rendering sorts the tags and joins them with ", ", which
// makes Parse(Render(s)) == s for every set produced by this package.
//
// The empty set has no textual representation of its own: callers delete
// the stored key instead of writing an empty string.
package tags
