package tags

import (
	"sort"
	"strings"
)

// Separator is the character tags are split on when parsing.
const Separator = ","

// joiner is used by Render between sorted tags.
const joiner = ", "

// Set is an unordered collection of non-blank, trimmed tags.
// The zero value is an empty set ready to use for reads; use New or Parse
// before adding to it.
type Set map[string]struct{}

// New returns a set holding the given tags. Blank tags are dropped and
// every tag is trimmed.
func New(tags ...string) Set {
	s := make(Set, len(tags))
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Parse splits text on commas into a set.
func Parse(text string) Set {
	s := make(Set)
	for _, piece := range strings.Split(text, Separator) {
		s.Add(piece)
	}
	return s
}

// Render returns the canonical text for s: tags sorted and joined with ", ".
// The empty set renders as "".
func Render(s Set) string {
	return strings.Join(s.Sorted(), joiner)
}

// String implements fmt.Stringer using the canonical rendering.
func (s Set) String() string {
	return Render(s)
}

// Add inserts a tag after trimming it. Blank tags are ignored.
// It reports whether the set changed.
func (s Set) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	if _, ok := s[tag]; ok {
		return false
	}
	s[tag] = struct{}{}
	return true
}

// Remove deletes a tag (trimmed) and reports whether it was present.
func (s Set) Remove(tag string) bool {
	tag = strings.TrimSpace(tag)
	if _, ok := s[tag]; !ok {
		return false
	}
	delete(s, tag)
	return true
}

// Contains reports whether tag is a member of s.
func (s Set) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Len returns the number of tags.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the tags in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold exactly the same tags.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for t := range s {
		if _, ok := other[t]; !ok {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every tag of s is also in other.
func (s Set) SubsetOf(other Set) bool {
	if len(s) > len(other) {
		return false
	}
	for t := range s {
		if _, ok := other[t]; !ok {
			return false
		}
	}
	return true
}

// Union returns a new set with the tags of both sets.
func (s Set) Union(other Set) Set {
	out := s.Clone()
	for t := range other {
		out[t] = struct{}{}
	}
	return out
}

// Intersect returns a new set with the tags present in both sets.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for t := range s {
		if _, ok := other[t]; ok {
			out[t] = struct{}{}
		}
	}
	return out
}

// Difference returns a new set with the tags of s that are not in other.
func (s Set) Difference(other Set) Set {
	out := make(Set)
	for t := range s {
		if _, ok := other[t]; !ok {
			out[t] = struct{}{}
		}
	}
	return out
}
