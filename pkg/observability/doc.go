// Package observability provides Prometheus metrics, request logging and
// health reporting for the HTTP server.
package observability
