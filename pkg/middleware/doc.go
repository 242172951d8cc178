// Package middleware provides the authentication and authorization guards
// applied to protected routes.
//
// Authenticate extracts and verifies the bearer token, attaching the decoded
// claims to the request context. RequireRoles runs after Authenticate and
// rejects requests whose resolved role name is not in the route's
// allow-list. The allow-list check is purely name-based: renaming a role in
// the store changes authorization outcomes without a redeploy.
package middleware
