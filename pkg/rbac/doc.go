// Package rbac resolves role ids to role records for name-based route
// authorization.
//
// Roles are effectively static reference data, so the resolver caches each
// role for the lifetime of the process: once cached, a role is never
// re-fetched. Role edits made directly in the store require a process
// restart (or an explicit cache bust) to become visible.
package rbac
