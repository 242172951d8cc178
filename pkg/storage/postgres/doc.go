// Package postgres handles the PostgreSQL connection lifecycle and schema
// migrations for the service.
package postgres
