// Package middleware provides HTTP middleware for the eog-rate API server.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics keyed by route template
//   - gzip compression of JSON responses
package middleware
