// Command eog-rate lists, queries and modifies per-file ratings, tags and
// comments kept outside the files themselves.
//
// # Usage
//
//	eog-rate [flags] PATH...
//
// Without modification flags every PATH is walked recursively and each file
// that has a rating, tags or a comment is printed, one per line:
//
//	***  photos/beach.jpg	 [sea, summer]	 #first day
//
// The -a flag includes files without attributes, -p prints paths only and
// --images limits directory walks to image files.
//
// # Queries
//
// The -q flag takes an expression evaluated against each file. The
// variables rating (r), tags (t) and comment (c) are bound per file:
//
//	eog-rate -q "r >= 3" .
//	eog-rate -q "'cat' in t and not 'dog' in t" .
//	eog-rate -q "t & {'a', 'b'} and len(c) > 0" .
//
// An expression that fails to compile aborts before any output. One that
// fails while evaluating a file aborts the walk.
//
// # Modifying
//
// Any of --tag, --untag, --set-tags, --rating or --comment applies the
// change to every named file. Directories are not walked. Only fields that
// change are written, and a rating of 0 or an empty comment clears the field.
//
// # Stores
//
// Attributes are kept in one of several stores, chosen with --store or the
// store.type configuration key:
//
//   - sidecar: a .dumbattr JSON file per directory (default)
//   - sqlite: one database for all directories
//   - badger: an embedded key-value store
//   - xattr: extended attributes on the files themselves
//   - memory: nothing is persisted
//
// # Serving
//
// "eog-rate serve" exposes a directory over HTTP:
//
//   - GET /api/files?path=&query=&all=&images=
//   - GET /api/file?path=
//   - POST /api/files/modify
//   - GET /health, /livez, /version, /metrics
//
// The server handles SIGINT and SIGTERM by draining in-flight requests
// within server.shutdown_timeout.
//
// # Related Packages
//
//   - [eog-rate/internal/store]: attribute store and backends
//   - [eog-rate/internal/walker]: directory traversal
//   - [eog-rate/internal/predicate]: query language
//   - [eog-rate/internal/mutation]: attribute changes
//   - [eog-rate/internal/startup]: configuration and lifecycle logging
//   - [eog-rate/internal/handlers]: HTTP handlers
package main
