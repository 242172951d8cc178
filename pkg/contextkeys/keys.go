// Package contextkeys provides centralized context key definitions.
//
// All context keys used across the application must be defined here to
// prevent typos and make key usage discoverable.
package contextkeys

// Key is the type for context keys to prevent collisions
type Key string

const (
	// ClaimsKey contains *auth.Claims.
	// Set by: middleware.Authenticate
	// Required by: middleware.RequireRoles, all protected handlers
	ClaimsKey Key = "auth_claims"
)
