// Package api wires the HTTP surface: the public authentication endpoints,
// the guarded business routes and the operational endpoints.
package api
