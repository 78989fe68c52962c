// Package store adapts a pluggable attribute backend to the operations the
// rest of eog-rate needs.
//
// A Backend is the external key/value persistence layer: per directory it
// maps file names to attribute records. The Store built on top of it offers
// two access paths:
//
//   - Load returns a Handle for one existing file. Changes made through the
//     handle stay in memory until Commit, which writes the record back only
//     when something actually changed.
//   - View returns a read-only DirectoryView of every record stored for a
//     directory, ordered by file name, for bulk listing.
//
// With Options.Cache set, views are memoized for the lifetime of the Store,
// which is meant to be a single command invocation. Committed handles
// refresh the cached view so later reads in the same invocation see them.
//
// A Store is not safe for concurrent use; create one per invocation.
// Backends must tolerate concurrent use by several stores.
//
// Backend implementations live in the subpackages memory, sidecar, sqlite,
// badger and xattr.
package store
