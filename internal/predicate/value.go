package predicate

import (
	"strconv"
	"strings"

	"eog-rate/internal/tags"
)

// Kind is the dynamic type of a Value.
type Kind int

const (
	KindInt Kind = iota
	KindString
	KindBool
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindSet:
		return "set"
	default:
		return "unknown"
	}
}

// Value is the result of evaluating an expression.
type Value struct {
	kind Kind
	i    int
	s    string
	set  tags.Set
}

func intValue(i int) Value       { return Value{kind: KindInt, i: i} }
func stringValue(s string) Value { return Value{kind: KindString, s: s} }
func setValue(s tags.Set) Value  { return Value{kind: KindSet, set: s} }

func boolValue(b bool) Value {
	if b {
		return Value{kind: KindBool, i: 1}
	}
	return Value{kind: KindBool}
}

// Kind returns the dynamic type of v.
func (v Value) Kind() Kind { return v.kind }

// Truth reports whether v counts as true: non-zero numbers, non-empty
// strings and non-empty sets.
func (v Value) Truth() bool {
	switch v.kind {
	case KindInt, KindBool:
		return v.i != 0
	case KindString:
		return v.s != ""
	case KindSet:
		return v.set.Len() > 0
	}
	return false
}

// numeric reports whether v takes part in integer arithmetic. Booleans
// count as 0 and 1.
func (v Value) numeric() bool {
	return v.kind == KindInt || v.kind == KindBool
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindString:
		return strconv.Quote(v.s)
	case KindBool:
		if v.i != 0 {
			return "True"
		}
		return "False"
	case KindSet:
		items := v.set.Sorted()
		for i, item := range items {
			items[i] = strconv.Quote(item)
		}
		return "{" + strings.Join(items, ", ") + "}"
	}
	return "<invalid>"
}

// equal compares values the way the query language does: numbers and
// booleans compare numerically, everything else only equals a value of
// the same kind.
func equal(a, b Value) bool {
	switch {
	case a.numeric() && b.numeric():
		return a.i == b.i
	case a.kind != b.kind:
		return false
	case a.kind == KindString:
		return a.s == b.s
	case a.kind == KindSet:
		return a.set.Equal(b.set)
	}
	return false
}
