package predicate

import (
	"strings"
)

// Node is a compiled expression.
type Node interface {
	Pos() int
	String() string
}

// Literal is a constant int, string or bool.
type Literal struct {
	At    int
	Value Value
}

// Variable is one of the per-file bindings.
type Variable struct {
	At   int
	Name string // canonical name: rating, tags or comment
}

// Unary is "-X" or "not X".
type Unary struct {
	At int
	Op string // "-" or "not"
	X  Node
}

// Binary is an arithmetic, set or logical operator.
type Binary struct {
	At   int
	Op   string // "+", "-", "|", "&", "and", "or"
	X, Y Node
}

// Compare is a comparison chain such as "1 <= r < 4".
type Compare struct {
	At       int
	Ops      []string // "==", "!=", "<", "<=", ">", ">=", "in", "not in"
	Operands []Node   // len(Ops)+1
}

// SetLit is a set literal written with braces or brackets.
type SetLit struct {
	At    int
	Elems []Node
}

// Call is a call of a builtin function or op helper.
type Call struct {
	At   int
	Func *builtin
	Args []Node
}

func (n *Literal) Pos() int  { return n.At }
func (n *Variable) Pos() int { return n.At }
func (n *Unary) Pos() int    { return n.At }
func (n *Binary) Pos() int   { return n.At }
func (n *Compare) Pos() int  { return n.At }
func (n *SetLit) Pos() int   { return n.At }
func (n *Call) Pos() int     { return n.At }

func (n *Literal) String() string  { return n.Value.String() }
func (n *Variable) String() string { return n.Name }

func (n *Unary) String() string {
	if n.Op == "not" {
		return "(not " + n.X.String() + ")"
	}
	return "(" + n.Op + n.X.String() + ")"
}

func (n *Binary) String() string {
	return "(" + n.X.String() + " " + n.Op + " " + n.Y.String() + ")"
}

func (n *Compare) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(n.Operands[0].String())
	for i, op := range n.Ops {
		b.WriteString(" " + op + " ")
		b.WriteString(n.Operands[i+1].String())
	}
	b.WriteString(")")
	return b.String()
}

func (n *SetLit) String() string {
	return "{" + joinNodes(n.Elems) + "}"
}

func (n *Call) String() string {
	return n.Func.name + "(" + joinNodes(n.Args) + ")"
}

func joinNodes(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}
