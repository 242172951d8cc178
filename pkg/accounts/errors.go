package accounts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateDocument is returned when an account with the same
	// document already exists, active or not.
	ErrDuplicateDocument = errors.New("document already exists")

	// ErrDuplicateEmail is returned when a profile with the same email
	// already exists.
	ErrDuplicateEmail = errors.New("email is already registered")

	// ErrInvalidCredentials covers both an unknown document and a wrong
	// password. The two cases are deliberately indistinguishable to avoid
	// leaking which documents exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDeactivated is returned for logins against a soft-deleted
	// account. Unlike ErrInvalidCredentials this is a reportable state.
	ErrAccountDeactivated = errors.New("account is deactivated")

	// ErrIdentityNotFound is returned when an authenticated account has no
	// resolvable profile or role.
	ErrIdentityNotFound = errors.New("user or role not found")
)

// ValidationError reports every violated field, not just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, field+": "+reason)
	}
	return "invalid request data: " + strings.Join(parts, "; ")
}

// WeakPasswordError enumerates every unmet password policy rule.
type WeakPasswordError struct {
	Violations []string
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("password does not meet security requirements: %s", strings.Join(e.Violations, "; "))
}
