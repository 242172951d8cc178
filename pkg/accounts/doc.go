// Package accounts implements the account/profile domain: registration,
// login and profile retrieval over a PostgreSQL store.
//
// An Account is the credential record (document + hashed password + role
// reference). A Profile is the user-facing personal record, created
// atomically with its Account and never independently. Response mapping
// functions never expose the password field.
package accounts
