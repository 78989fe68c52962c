package attrs

import (
	"maps"
	"strconv"
	"strings"

	"eog-rate/internal/tags"
)

// Record keys.
const (
	KeyRating  = "rating"
	KeyTags    = "tags"
	KeyComment = "comment"
)

// Keys lists the attributes managed by this tool, in display order.
var Keys = []string{KeyRating, KeyTags, KeyComment}

// ellipsis marks a truncated comment.
const ellipsis = "..."

// Record holds the raw attribute strings stored for one file.
type Record map[string]string

// Clone returns an independent copy of r. A nil record clones to an empty one.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	maps.Copy(out, r)
	return out
}

// Equal reports whether both records hold the same keys and values.
func (r Record) Equal(other Record) bool {
	return maps.Equal(r, other)
}

// Attributes is the decoded form of a Record.
type Attributes struct {
	Rating  int
	Tags    tags.Set
	Comment string
}

// Decode extracts all typed attributes from a record.
func Decode(r Record) Attributes {
	return Attributes{
		Rating:  Rating(r),
		Tags:    Tags(r),
		Comment: Comment(r, 0),
	}
}

// Rating returns the stored rating, or 0 when it is missing or not an integer.
func Rating(r Record) int {
	s, ok := r[KeyRating]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Tags returns the stored tag set, empty when the key is missing.
func Tags(r Record) tags.Set {
	s, ok := r[KeyTags]
	if !ok {
		return tags.New()
	}
	return tags.Parse(s)
}

// Comment returns the stored comment. When maxLength is positive and the
// comment is longer than maxLength runes, it is cut so that the result,
// ellipsis included, is exactly maxLength runes long.
func Comment(r Record, maxLength int) string {
	c := r[KeyComment]
	if maxLength <= 0 {
		return c
	}
	runes := []rune(c)
	if len(runes) <= maxLength {
		return c
	}
	if maxLength < len(ellipsis) {
		return ellipsis[:maxLength]
	}
	return string(runes[:maxLength-len(ellipsis)]) + ellipsis
}

// HasAny reports whether the record carries a rating, tags or a comment.
func HasAny(r Record) bool {
	for _, k := range Keys {
		if _, ok := r[k]; ok {
			return true
		}
	}
	return false
}
