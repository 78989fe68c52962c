// Package handlers provides the HTTP handlers behind "eog-rate serve".
//
// It includes handlers for:
//   - Listing and querying file attributes under the served root
//   - Reading the attributes of a single file
//   - Modifying ratings, tags and comments
//   - Health checks, version information and Prometheus metrics
//
// Every request path is relative to the served root and is rejected when it
// resolves outside of it. Each request works against its own store, so
// directory views are never shared between requests.
package handlers
