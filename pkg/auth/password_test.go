package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher(4) // minimum cost keeps tests fast

	hashed, err := hasher.Hash("Str0ng!Pass")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ng!Pass", hashed)

	ok, err := hasher.Verify("Str0ng!Pass", hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong-password", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewBcryptHasher(4)

	h1, err := hasher.Hash("same-password")
	require.NoError(t, err)
	h2, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestBcryptHasher_MalformedStoredHash(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Verify("password", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHashingFailure)
}

func TestNewBcryptHasher_ZeroCostDefaults(t *testing.T) {
	hasher := NewBcryptHasher(0)
	assert.NotZero(t, hasher.Cost)
}
