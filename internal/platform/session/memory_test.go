package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/common"
)

func TestMemoryStore_CreateAndResolve(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(6*time.Hour, 720*time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, 7, false)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	got, err := store.Resolve(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.False(t, got.Remember)
}

func TestMemoryStore_RememberExtendsHorizon(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Hour, 720*time.Hour)
	ctx := context.Background()

	short, err := store.Create(ctx, 1, false)
	require.NoError(t, err)
	long, err := store.Create(ctx, 1, true)
	require.NoError(t, err)

	assert.True(t, long.ExpiresAt.After(short.ExpiresAt))
}

func TestMemoryStore_ExpiryIsLazy(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Hour, 720*time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, 7, false)
	require.NoError(t, err)

	// Advance the clock past the short-session horizon.
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = store.Resolve(ctx, sess.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemoryStore_Destroy(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Hour, 720*time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, 7, false)
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, sess.ID))

	_, err = store.Resolve(ctx, sess.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Destroying an unknown session is a no-op.
	assert.NoError(t, store.Destroy(ctx, "missing"))
}
