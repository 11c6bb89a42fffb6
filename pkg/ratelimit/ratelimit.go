package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limiter allows one action per key per window.
type Limiter interface {
	// Allow reports whether the action may proceed. When it may not, the
	// returned duration is the time left until it may.
	Allow(ctx context.Context, userID uuid.UUID, action string, window time.Duration) (bool, time.Duration, error)
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

type redisLimiter struct {
	rdb *redis.Client
}

// New returns a redis-backed limiter, or one that always allows when rdb is nil.
func New(rdb *redis.Client) Limiter {
	if rdb == nil {
		return Noop{}
	}
	return &redisLimiter{rdb: rdb}
}

func key(userID uuid.UUID, action string) string {
	return fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)
}

func (l *redisLimiter) Allow(ctx context.Context, userID uuid.UUID, action string, window time.Duration) (bool, time.Duration, error) {
	if window <= 0 {
		return true, 0, nil
	}

	k := key(userID, action)
	wasSet, err := l.rdb.SetNX(ctx, k, "locked", window).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	if wasSet {
		return true, 0, nil
	}

	ttl, err := l.rdb.TTL(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to read rate limit ttl: %w", err)
	}
	return false, ttl, nil
}

type Noop struct{}

func (Noop) Allow(context.Context, uuid.UUID, string, time.Duration) (bool, time.Duration, error) {
	return true, 0, nil
}
