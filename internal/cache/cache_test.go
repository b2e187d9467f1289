package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestTokenBlacklist(t *testing.T) {
	mr, rdb := newMiniredis(t)
	bl := NewTokenBlacklist(rdb)
	ctx := context.Background()

	revoked, err := bl.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "abc", time.Minute))
	revoked, err = bl.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists("blacklist:abc"))
	assert.Equal(t, time.Minute, mr.TTL("blacklist:abc"))

	mr.FastForward(2 * time.Minute)
	revoked, err = bl.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenBlacklist_SkipsExpiredAndEmpty(t *testing.T) {
	mr, rdb := newMiniredis(t)
	bl := NewTokenBlacklist(rdb)
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "old", -time.Second))
	require.NoError(t, bl.Revoke(ctx, "", time.Minute))
	assert.Empty(t, mr.Keys())
}

func TestTokenBlacklist_Disabled(t *testing.T) {
	bl := NewTokenBlacklist(nil)
	assert.False(t, bl.Enabled())

	require.NoError(t, bl.Revoke(context.Background(), "abc", time.Minute))
	revoked, err := bl.IsRevoked(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	var nilList *TokenBlacklist
	assert.False(t, nilList.Enabled())
}

func TestTokenBlacklist_StoreFailure(t *testing.T) {
	mr, rdb := newMiniredis(t)
	bl := NewTokenBlacklist(rdb)
	mr.Close()

	revoked, err := bl.IsRevoked(context.Background(), "abc")
	assert.Error(t, err)
	assert.False(t, revoked)
}

func TestInitRedis(t *testing.T) {
	assert.Nil(t, InitRedis(context.Background(), ""))
	assert.Nil(t, InitRedis(context.Background(), "redis://%zz"))

	mr := miniredis.RunT(t)
	client := InitRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestOptions(t *testing.T) {
	opts, err := Options("localhost:6380")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", opts.Addr)

	opts, err = Options("redis://:pw@cache:6379/2")
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
}
