package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestOTPStore_PutVerifyConsumes(t *testing.T) {
	setupMiniredis(t)
	store := NewOTPStore(DefaultOTPTTL)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", "123456"))
	require.NoError(t, store.Verify(ctx, "user-1", "123456"))

	// Consumed on first successful verify
	err := store.Verify(ctx, "user-1", "123456")
	require.ErrorIs(t, err, ErrOTPNotFound)
}

func TestOTPStore_WrongCodeKeepsStored(t *testing.T) {
	setupMiniredis(t)
	store := NewOTPStore(DefaultOTPTTL)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-2", "111111"))
	require.ErrorIs(t, store.Verify(ctx, "user-2", "000000"), ErrOTPNotFound)

	// The right code still works after a wrong guess
	require.NoError(t, store.Verify(ctx, "user-2", "111111"))
}

func TestOTPStore_Expires(t *testing.T) {
	mr := setupMiniredis(t)
	store := NewOTPStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-3", "222222"))
	mr.FastForward(2 * time.Minute)

	require.ErrorIs(t, store.Verify(ctx, "user-3", "222222"), ErrOTPNotFound)
}

func TestOTPStore_PutReplacesPrevious(t *testing.T) {
	setupMiniredis(t)
	store := NewOTPStore(DefaultOTPTTL)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-4", "111111"))
	require.NoError(t, store.Put(ctx, "user-4", "222222"))

	require.ErrorIs(t, store.Verify(ctx, "user-4", "111111"), ErrOTPNotFound)
	require.NoError(t, store.Verify(ctx, "user-4", "222222"))
}

func TestReviewLock_AcquireRelease(t *testing.T) {
	setupMiniredis(t)
	lock := NewReviewLock(time.Minute)
	ctx := context.Background()

	ok, err := lock.Acquire(ctx, "c-1")
	require.NoError(t, err)
	require.True(t, ok)

	// Second holder is refused while the lock is held
	ok, err = lock.Acquire(ctx, "c-1")
	require.NoError(t, err)
	require.False(t, ok)

	// A different contribution is unaffected
	ok, err = lock.Acquire(ctx, "c-2")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, lock.Release(ctx, "c-1"))
	ok, err = lock.Acquire(ctx, "c-1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestReviewLock_TTLExpires(t *testing.T) {
	mr := setupMiniredis(t)
	lock := NewReviewLock(time.Minute)
	ctx := context.Background()

	ok, err := lock.Acquire(ctx, "c-3")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	ok, err = lock.Acquire(ctx, "c-3")
	require.NoError(t, err)
	require.True(t, ok, "stale lock must not wedge reviews forever")
}
