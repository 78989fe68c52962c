// Package walker enumerates files and their attribute records below a set
// of roots.
//
// Each root is either a single file, yielded once, or a directory that is
// walked recursively. Within a directory files come in ascending name
// order and directories are visited in lexical order, so the output is
// deterministic for a given tree.
//
// With RequirePresence set, files without a rating, tags or a comment are
// skipped. The list and query commands use this by default so a walk over a
// large photo tree only reports curated files.
package walker
