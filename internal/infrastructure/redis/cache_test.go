package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/cache"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/redis"
)

func setupTestRedis(t *testing.T, prefix string) (*miniredis.Miniredis, *redis.RemoteStore) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	store := redis.NewRemoteStore(client, prefix)
	t.Cleanup(func() { _ = store.Close() })
	return mr, store
}

func TestRemoteStore_SetGetDelete(t *testing.T) {
	mr, store := setupTestRedis(t, "")
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", `{"a":1}`))
	v, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"a":1}`, v)
	require.Zero(t, mr.TTL("k"))

	require.NoError(t, store.Delete(ctx, "k"))
	require.False(t, mr.Exists("k"))
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestRemoteStore_SetWithExpiry(t *testing.T) {
	mr, store := setupTestRedis(t, "")
	ctx := context.Background()

	require.NoError(t, store.SetWithExpiry(ctx, "k", `"v"`, 300*time.Second))
	require.Equal(t, 300*time.Second, mr.TTL("k"))

	mr.FastForward(301 * time.Second)
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRemoteStore_Prefix(t *testing.T) {
	mr, store := setupTestRedis(t, "lol")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "events:all", "[]"))
	got, err := mr.Get("lol:events:all")
	require.NoError(t, err)
	require.Equal(t, "[]", got)
}

func TestRemoteStore_PermissionDenied(t *testing.T) {
	mr, store := setupTestRedis(t, "")
	ctx := context.Background()
	mr.SetError("NOPERM this user has no permissions to run the 'setex' command")

	err := store.SetWithExpiry(ctx, "k", "v", time.Minute)
	require.Error(t, err)
	require.True(t, errors.Is(err, ports.ErrPermissionDenied))

	_, _, err = store.Get(ctx, "k")
	require.ErrorIs(t, err, ports.ErrPermissionDenied)
}

func TestRemoteStore_OtherErrorsAreNotPermission(t *testing.T) {
	mr, store := setupTestRedis(t, "")
	ctx := context.Background()
	mr.SetError("LOADING Redis is loading the dataset in memory")

	err := store.Set(ctx, "k", "v")
	require.Error(t, err)
	require.False(t, errors.Is(err, ports.ErrPermissionDenied))
}

func TestIsPermissionError(t *testing.T) {
	assert.True(t, redis.IsPermissionError(errors.New("NOPERM this user has no permissions")))
	assert.True(t, redis.IsPermissionError(errors.New("ERR user has no permissions to access key")))
	assert.False(t, redis.IsPermissionError(errors.New("connection refused")))
}

func TestRemoteStore_BehindCacheStore(t *testing.T) {
	mr, remote := setupTestRedis(t, "")
	ctx := context.Background()
	store := cache.NewStore(remote, nil)

	p := store.Init(ctx)
	require.Equal(t, ports.PermissionProfile{HasRemote: true, Get: true, Set: true, SetWithExpiry: true, Delete: true}, p)
	require.False(t, mr.Exists("test:permissions"))

	res := store.Set(ctx, "events:2024-01-01:2024-01-03", []string{"ev1"}, 300*time.Second)
	require.Equal(t, ports.OutcomeApplied, res.Outcome)
	require.Equal(t, 300*time.Second, mr.TTL("events:2024-01-01:2024-01-03"))

	store.Invalidate(ctx, "events:2024-01-01:2024-01-03")
	raw, err := mr.Get("events:2024-01-01:2024-01-03")
	require.NoError(t, err)
	require.Equal(t, cache.Tombstone, raw)
	require.False(t, store.Get(ctx, "events:2024-01-01:2024-01-03").Found)
}

func TestRemoteStore_DeniedEverywhereDegradesToLocal(t *testing.T) {
	mr, remote := setupTestRedis(t, "")
	ctx := context.Background()
	mr.SetError("NOPERM this user has no permissions")
	store := cache.NewStore(remote, nil)

	require.Equal(t, ports.PermissionProfile{HasRemote: true}, store.Init(ctx))

	res := store.Set(ctx, "k", "v", time.Minute)
	require.Equal(t, ports.OutcomeDegradedLocal, res.Outcome)
	got := store.Get(ctx, "k")
	require.True(t, got.Found)
	require.Equal(t, ports.OutcomeDegradedLocal, got.Outcome)
}
