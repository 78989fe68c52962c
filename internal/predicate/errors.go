package predicate

import "fmt"

// SyntaxError reports an expression that cannot be compiled.
type SyntaxError struct {
	Expr string
	Pos  int // byte offset into Expr
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid query %q: %s at column %d", e.Expr, e.Msg, e.Pos+1)
}

// EvalError reports an expression that failed while being evaluated for
// one file, typically an operator applied to values of the wrong type.
type EvalError struct {
	Pos int
	Msg string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("query evaluation failed at column %d: %s", e.Pos+1, e.Msg)
}

func evalErrorf(pos int, format string, args ...any) *EvalError {
	return &EvalError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
