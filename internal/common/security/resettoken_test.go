package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/common"
)

func TestResetTokens_RoundTrip(t *testing.T) {
	t.Parallel()

	rt := NewResetTokens([]byte("super-secret"), 30*time.Minute)

	tok, err := rt.Issue(7)
	require.NoError(t, err)

	userID, err := rt.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)

	// Stateless verification: the same token stays valid on repeat checks.
	userID, err = rt.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestResetTokens_Expired(t *testing.T) {
	t.Parallel()

	rt := NewResetTokens([]byte("super-secret"), 30*time.Minute)

	tok, err := rt.IssueWithTTL(7, -1*time.Second)
	require.NoError(t, err)

	_, err = rt.Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestResetTokens_ZeroTTLInvalidImmediately(t *testing.T) {
	t.Parallel()

	rt := NewResetTokens([]byte("super-secret"), 30*time.Minute)

	tok, err := rt.IssueWithTTL(7, 0)
	require.NoError(t, err)

	_, err = rt.Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestResetTokens_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewResetTokens([]byte("right-secret"), time.Hour)
	verifier := NewResetTokens([]byte("wrong-secret"), time.Hour)

	tok, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestResetTokens_Malformed(t *testing.T) {
	t.Parallel()

	rt := NewResetTokens([]byte("super-secret"), time.Hour)

	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		_, err := rt.Verify(tok)
		assert.ErrorIs(t, err, common.ErrInvalidToken, "token %q", tok)
	}
}

func TestNewResetTokens_DefaultTTL(t *testing.T) {
	t.Parallel()

	rt := NewResetTokens([]byte("super-secret"), 0)
	assert.Equal(t, DefaultResetTTL, rt.ttl)
}
