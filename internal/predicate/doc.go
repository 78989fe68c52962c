// Package predicate compiles and evaluates query expressions over a file's
// rating, tags and comment.
//
// Expressions use a small grammar:
//
//	r >= 2 and 'holiday' in t
//	not tags or op.contains(t, 'print')
//	len(t & {'cat', 'dog'}) > 0 || lower(c) == 'keep'
//
// The variables rating (r), tags (t) and comment (c) are bound per file.
// The op namespace exposes the comparison and set helpers eq, ne, lt, le,
// gt, ge, contains, not_, truth, and_, or_, add and sub; len, lower and
// upper are available as plain functions.
//
// An expression is compiled once into a Program and then evaluated per
// file. Evaluation only reads the binding it is given; there is no way to
// reach files, the environment or process state from an expression.
// Unknown names and wrong argument counts are reported by Compile as a
// *SyntaxError; type mismatches at run time are reported as an *EvalError.
package predicate
