package predicate

import (
	"eog-rate/internal/attrs"
	"eog-rate/internal/logging"
	"eog-rate/internal/metrics"
)

// Binding holds the values an expression can see for one file.
type Binding attrs.Attributes

// Bind decodes a stored record into a Binding.
func Bind(rec attrs.Record) Binding {
	return Binding(attrs.Decode(rec))
}

// Program is a compiled expression. It holds no per-file state and may be
// evaluated any number of times.
type Program struct {
	src  string
	root Node
}

// Compile parses expr. Unknown names, unknown op helpers and wrong
// argument counts are rejected here, before any file is looked at.
func Compile(expr string) (*Program, error) {
	root, err := parse(expr)
	if err != nil {
		return nil, err
	}
	logging.Debug("Compiled query %q as %s", expr, root)
	return &Program{src: expr, root: root}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Program {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source expression.
func (p *Program) String() string {
	return p.src
}

// Root returns the syntax tree.
func (p *Program) Root() Node {
	return p.root
}

// Value evaluates the program and returns the raw result.
func (p *Program) Value(b Binding) (Value, error) {
	return eval(p.root, &b)
}

// Eval evaluates the program and reports whether the result is truthy.
func (p *Program) Eval(b Binding) (bool, error) {
	v, err := p.Value(b)
	if err != nil {
		return false, err
	}
	return v.Truth(), nil
}

// Match evaluates the program against a stored record and records the
// outcome.
func (p *Program) Match(rec attrs.Record) (bool, error) {
	ok, err := p.Eval(Bind(rec))
	switch {
	case err != nil:
		metrics.PredicateEvaluations.WithLabelValues("error").Inc()
	case ok:
		metrics.PredicateEvaluations.WithLabelValues("match").Inc()
	default:
		metrics.PredicateEvaluations.WithLabelValues("reject").Inc()
	}
	return ok, err
}
