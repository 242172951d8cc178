package auth

import "errors"

var (
	// ErrInvalidToken covers any token that fails signature or structural
	// verification, including attacker-controlled garbage.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when the token verified but its expiry
	// has passed.
	ErrExpiredToken = errors.New("token expired")

	// ErrHashingFailure signals a system-level hashing problem, not a
	// password mismatch.
	ErrHashingFailure = errors.New("password hashing failure")
)
