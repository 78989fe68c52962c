package predicate

import "strings"

type builtin struct {
	name  string
	arity int
	call  func(pos int, args []Value) (Value, error)
}

// functions are callable by bare name.
var functions = map[string]*builtin{
	"len": {name: "len", arity: 1, call: builtinLen},
	"lower": {name: "lower", arity: 1, call: func(pos int, args []Value) (Value, error) {
		return mapString(pos, "lower", args[0], strings.ToLower)
	}},
	"upper": {name: "upper", arity: 1, call: func(pos int, args []Value) (Value, error) {
		return mapString(pos, "upper", args[0], strings.ToUpper)
	}},
}

// opHelpers are callable as op.<name>.
var opHelpers = map[string]*builtin{
	"eq":       comparisonHelper("eq", "=="),
	"ne":       comparisonHelper("ne", "!="),
	"lt":       comparisonHelper("lt", "<"),
	"le":       comparisonHelper("le", "<="),
	"gt":       comparisonHelper("gt", ">"),
	"ge":       comparisonHelper("ge", ">="),
	"contains": {name: "op.contains", arity: 2, call: opContains},
	"not_": {name: "op.not_", arity: 1, call: func(_ int, args []Value) (Value, error) {
		return boolValue(!args[0].Truth()), nil
	}},
	"truth": {name: "op.truth", arity: 1, call: func(_ int, args []Value) (Value, error) {
		return boolValue(args[0].Truth()), nil
	}},
	"and_": binaryHelper("and_", "&"),
	"or_":  binaryHelper("or_", "|"),
	"add":  binaryHelper("add", "+"),
	"sub":  binaryHelper("sub", "-"),
}

func comparisonHelper(name, op string) *builtin {
	return &builtin{name: "op." + name, arity: 2, call: func(pos int, args []Value) (Value, error) {
		ok, err := compare(pos, op, args[0], args[1])
		if err != nil {
			return Value{}, err
		}
		return boolValue(ok), nil
	}}
}

func binaryHelper(name, op string) *builtin {
	return &builtin{name: "op." + name, arity: 2, call: func(pos int, args []Value) (Value, error) {
		return arith(pos, op, args[0], args[1])
	}}
}

func builtinLen(pos int, args []Value) (Value, error) {
	switch v := args[0]; v.kind {
	case KindString:
		return intValue(len([]rune(v.s))), nil
	case KindSet:
		return intValue(v.set.Len()), nil
	default:
		return Value{}, evalErrorf(pos, "len() of %s", v.kind)
	}
}

func mapString(pos int, name string, v Value, fn func(string) string) (Value, error) {
	if v.kind != KindString {
		return Value{}, evalErrorf(pos, "%s() of %s", name, v.kind)
	}
	return stringValue(fn(v.s)), nil
}

// opContains follows the argument order of "contains(a, b)": b in a.
func opContains(pos int, args []Value) (Value, error) {
	ok, err := contains(pos, args[0], args[1])
	if err != nil {
		return Value{}, err
	}
	return boolValue(ok), nil
}
