// Package auth provides password hashing and bearer token services.
//
// Passwords are hashed with bcrypt behind the PasswordHasher interface so the
// algorithm can be swapped without touching callers. Tokens are signed JWTs
// carrying the account id, document and role id; they are stateless, so the
// only revocation mechanism is expiry.
package auth
