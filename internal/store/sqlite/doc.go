// Package sqlite stores attribute records in a single SQLite database.
//
// Every attribute is one row keyed by (dir, name, key), so a directory view
// is a single indexed query. The database uses WAL mode so listing commands
// can run while another invocation writes.
package sqlite
