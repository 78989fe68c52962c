package predicate

import (
	"math"
	"strings"

	"eog-rate/internal/tags"
)

// eval evaluates n against b.
func eval(n Node, b *Binding) (Value, error) {
	switch n := n.(type) {
	case *Literal:
		return n.Value, nil

	case *Variable:
		switch n.Name {
		case "rating":
			return intValue(b.Rating), nil
		case "tags":
			return setValue(b.Tags.Clone()), nil
		default:
			return stringValue(b.Comment), nil
		}

	case *Unary:
		x, err := eval(n.X, b)
		if err != nil {
			return Value{}, err
		}
		if n.Op == "not" {
			return boolValue(!x.Truth()), nil
		}
		if !x.numeric() {
			return Value{}, evalErrorf(n.At, "bad operand type for unary -: %s", x.kind)
		}
		if x.i == math.MinInt {
			return Value{}, evalErrorf(n.At, "integer overflow in -%d", x.i)
		}
		return intValue(-x.i), nil

	case *Binary:
		return evalBinary(n, b)

	case *Compare:
		return evalCompare(n, b)

	case *SetLit:
		set := make(tags.Set, len(n.Elems))
		for _, elem := range n.Elems {
			v, err := eval(elem, b)
			if err != nil {
				return Value{}, err
			}
			if v.kind != KindString {
				return Value{}, evalErrorf(elem.Pos(), "set elements must be strings, got %s", v.kind)
			}
			set[v.s] = struct{}{}
		}
		return setValue(set), nil

	case *Call:
		args := make([]Value, len(n.Args))
		for i, arg := range n.Args {
			v, err := eval(arg, b)
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		return n.Func.call(n.At, args)
	}
	return Value{}, evalErrorf(n.Pos(), "unsupported expression %s", n)
}

func evalBinary(n *Binary, b *Binding) (Value, error) {
	x, err := eval(n.X, b)
	if err != nil {
		return Value{}, err
	}

	// and/or short-circuit and yield an operand, not a bool
	switch n.Op {
	case "and":
		if !x.Truth() {
			return x, nil
		}
		return eval(n.Y, b)
	case "or":
		if x.Truth() {
			return x, nil
		}
		return eval(n.Y, b)
	}

	y, err := eval(n.Y, b)
	if err != nil {
		return Value{}, err
	}
	return arith(n.At, n.Op, x, y)
}

func evalCompare(n *Compare, b *Binding) (Value, error) {
	x, err := eval(n.Operands[0], b)
	if err != nil {
		return Value{}, err
	}
	for i, op := range n.Ops {
		y, err := eval(n.Operands[i+1], b)
		if err != nil {
			return Value{}, err
		}
		ok, err := compare(n.Operands[i+1].Pos(), op, x, y)
		if err != nil {
			return Value{}, err
		}
		if !ok {
			return boolValue(false), nil
		}
		x = y
	}
	return boolValue(true), nil
}

// arith applies one of the operators + - | & to x and y.
func arith(pos int, op string, x, y Value) (Value, error) {
	switch {
	case x.kind == KindBool && y.kind == KindBool && (op == "|" || op == "&"):
		if op == "|" {
			return boolValue(x.Truth() || y.Truth()), nil
		}
		return boolValue(x.Truth() && y.Truth()), nil

	case x.numeric() && y.numeric():
		switch op {
		case "+":
			sum := x.i + y.i
			if (y.i > 0 && sum < x.i) || (y.i < 0 && sum > x.i) {
				return Value{}, evalErrorf(pos, "integer overflow in %d + %d", x.i, y.i)
			}
			return intValue(sum), nil
		case "-":
			diff := x.i - y.i
			if (y.i > 0 && diff > x.i) || (y.i < 0 && diff < x.i) {
				return Value{}, evalErrorf(pos, "integer overflow in %d - %d", x.i, y.i)
			}
			return intValue(diff), nil
		case "|":
			return intValue(x.i | y.i), nil
		case "&":
			return intValue(x.i & y.i), nil
		}

	case x.kind == KindSet && y.kind == KindSet:
		switch op {
		case "|":
			return setValue(x.set.Union(y.set)), nil
		case "&":
			return setValue(x.set.Intersect(y.set)), nil
		case "-":
			return setValue(x.set.Difference(y.set)), nil
		}

	case x.kind == KindString && y.kind == KindString && op == "+":
		return stringValue(x.s + y.s), nil
	}
	return Value{}, evalErrorf(pos, "unsupported operand types for %s: %s and %s", op, x.kind, y.kind)
}

// compare applies a comparison operator. Sets order by inclusion.
func compare(pos int, op string, x, y Value) (bool, error) {
	switch op {
	case "==":
		return equal(x, y), nil
	case "!=":
		return !equal(x, y), nil
	case "in":
		return contains(pos, y, x)
	case "not in":
		ok, err := contains(pos, y, x)
		return !ok, err
	}

	switch {
	case x.numeric() && y.numeric():
		return order(op, x.i, y.i), nil
	case x.kind == KindString && y.kind == KindString:
		return order(op, x.s, y.s), nil
	case x.kind == KindSet && y.kind == KindSet:
		switch op {
		case "<=":
			return x.set.SubsetOf(y.set), nil
		case "<":
			return x.set.SubsetOf(y.set) && !x.set.Equal(y.set), nil
		case ">=":
			return y.set.SubsetOf(x.set), nil
		case ">":
			return y.set.SubsetOf(x.set) && !x.set.Equal(y.set), nil
		}
	}
	return false, evalErrorf(pos, "%s not supported between %s and %s", op, x.kind, y.kind)
}

func order[T int | string](op string, a, b T) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	default:
		return a >= b
	}
}

// contains reports whether item is in container: set membership or
// substring.
func contains(pos int, container, item Value) (bool, error) {
	switch container.kind {
	case KindSet:
		switch item.kind {
		case KindString:
			return container.set.Contains(item.s), nil
		case KindInt, KindBool:
			return false, nil
		}
	case KindString:
		if item.kind == KindString {
			return strings.Contains(container.s, item.s), nil
		}
	}
	return false, evalErrorf(pos, "in not supported between %s and %s", item.kind, container.kind)
}
