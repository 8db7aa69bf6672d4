package prefs

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	mr := miniredis.RunT(t)
	return NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestResetReferenceRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ref := time.Date(2026, 8, 15, 12, 30, 0, 0, time.UTC)
	require.NoError(t, store.SetResetReference(ctx, 1, ref))

	got, err := store.ResetReference(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.True(t, got.Equal(ref))
}

func TestResetReferenceUnset(t *testing.T) {
	store := newTestStore(t)

	got, err := store.ResetReference(context.Background(), 1)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestResetReferencePerUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ref := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SetResetReference(ctx, 1, ref))

	got, err := store.ResetReference(ctx, 2)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestClearResetReference(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetResetReference(ctx, 1, time.Now()))
	require.NoError(t, store.ClearResetReference(ctx, 1))

	got, err := store.ResetReference(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, got)
}
