package auth_test

import (
	"testing"

	"github.com/clinicare/clinic-backend/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2idHasher_HashAndVerify(t *testing.T) {
	hasher := auth.NewArgon2idHasher()

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")
	assert.NotContains(t, hash, "secret123")

	valid, err := hasher.Verify("secret123", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = hasher.Verify("wrongpassword", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestArgon2idHasher_SaltIsPerCall(t *testing.T) {
	hasher := auth.NewArgon2idHasher()

	first, err := hasher.Hash("secret123")
	require.NoError(t, err)
	second, err := hasher.Hash("secret123")
	require.NoError(t, err)

	// Same password, different salt, different output
	assert.NotEqual(t, first, second)

	for _, hash := range []string{first, second} {
		valid, err := hasher.Verify("secret123", hash)
		require.NoError(t, err)
		assert.True(t, valid)
	}
}

func TestArgon2idHasher_EmptyPassword(t *testing.T) {
	hasher := auth.NewArgon2idHasher()

	_, err := hasher.Hash("")
	assert.ErrorIs(t, err, auth.ErrEmptyPassword)
}

func TestArgon2idHasher_MalformedHash(t *testing.T) {
	hasher := auth.NewArgon2idHasher()

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "not a hash", hash: "plaintext"},
		{name: "wrong algorithm", hash: "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{name: "bad salt encoding", hash: "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{name: "missing segments", hash: "$argon2id$v=19$m=65536,t=1,p=4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := hasher.Verify("anything", tt.hash)
			assert.ErrorIs(t, err, auth.ErrInvalidHash)
			assert.False(t, valid)
		})
	}
}
