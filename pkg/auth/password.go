package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher defines the minimal hashing interface so the algorithm can
// be swapped (e.g. to argon2) without touching the flows that use it.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) (bool, error)
}

// BcryptHasher hashes passwords with bcrypt. The cost factor is process-wide
// configuration, never request-controllable.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher creates a hasher with the given cost. A zero cost falls
// back to the bcrypt default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

// Hash returns the salted bcrypt hash of plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.Cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashingFailure, err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. Comparison is
// constant-time inside bcrypt. A mismatch returns (false, nil); only a
// malformed stored hash produces an error.
func (h *BcryptHasher) Verify(plaintext, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrHashingFailure, err)
}
