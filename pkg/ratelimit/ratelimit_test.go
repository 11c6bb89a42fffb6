package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	limiter := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	ctx := context.Background()
	user := uuid.New()

	ok, _, err := limiter.Allow(ctx, user, "send_message", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, wait, err := limiter.Allow(ctx, user, "send_message", time.Second)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	ok, _, err = limiter.Allow(ctx, uuid.New(), "send_message", time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "other users are not throttled")

	mr.FastForward(2 * time.Second)
	ok, _, err = limiter.Allow(ctx, user, "send_message", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_ZeroWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	limiter := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	for i := 0; i < 3; i++ {
		ok, _, err := limiter.Allow(context.Background(), uuid.Nil, "send_message", 0)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Empty(t, mr.Keys())
}

func TestRedisLimiter_ServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	limiter := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	mr.Close()

	_, _, err = limiter.Allow(context.Background(), uuid.New(), "send_message", time.Second)
	assert.Error(t, err)
}

func TestNewWithoutClient(t *testing.T) {
	limiter := New(nil)
	assert.IsType(t, Noop{}, limiter)

	ok, _, err := limiter.Allow(context.Background(), uuid.New(), "send_message", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewRedisClient(t *testing.T) {
	_, err := NewRedisClient("redis://localhost:6379/0")
	assert.NoError(t, err)

	_, err = NewRedisClient("http://localhost")
	assert.Error(t, err)
}
