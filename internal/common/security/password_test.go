package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CheckPasswordHash("secret1", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same password must differ")
	assert.True(t, CheckPasswordHash("secret1", h1))
	assert.True(t, CheckPasswordHash("secret1", h2))
}

func TestCheckPasswordHash_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.False(t, CheckPasswordHash("secret2", hash))
}

func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPasswordHash("secret1", "not-a-bcrypt-hash"))
	assert.False(t, CheckPasswordHash("secret1", ""))
}

func TestHashPassword_DefaultCost(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
