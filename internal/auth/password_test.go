package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "hunter2!", hash)

	assert.True(t, CheckPassword("hunter2!", hash))
	assert.False(t, CheckPassword("hunter3!", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("same-password", first))
	assert.True(t, CheckPassword("same-password", second))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	// Legacy plaintext values stored in the hash column never match.
	assert.False(t, CheckPassword("password", "password"))
	assert.False(t, CheckPassword("password", ""))
	assert.False(t, CheckPassword("password", "not-a-bcrypt-hash"))
}

func TestRandomPassword(t *testing.T) {
	first, err := RandomPassword(24)
	require.NoError(t, err)
	assert.Len(t, first, 24)

	second, err := RandomPassword(24)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
