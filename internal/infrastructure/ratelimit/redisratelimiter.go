// Package ratelimit implements a sliding-window limiter on Redis sorted sets,
// shared by every instance of the service.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// Policy caps requests per window. A zero field disables that window.
type Policy struct {
	PerMinute int
	PerHour   int
}

func (p Policy) windows() []window {
	return []window{
		{time.Minute, p.PerMinute},
		{time.Hour, p.PerHour},
	}
}

type window struct {
	duration time.Duration
	limit    int
}

type RedisRateLimiter struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewRedisRateLimiter(client redis.Cmdable) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, now: time.Now}
}

// Allow records the request and reports whether every window still has room.
// Rejected requests are recorded too, so hammering a link keeps it closed.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string, policy Policy) (bool, error) {
	now := l.now()
	for _, w := range policy.windows() {
		if w.limit <= 0 {
			continue
		}
		allowed, err := l.checkWindow(ctx, key, w, now)
		if err != nil {
			return false, err
		}
		if !allowed {
			return false, nil
		}
	}
	return true, nil
}

func (l *RedisRateLimiter) checkWindow(ctx context.Context, key string, w window, now time.Time) (bool, error) {
	redisKey := l.key(key, w.duration)
	windowStart := now.Add(-w.duration).UnixNano()
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, w.duration+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}
	return zcard.Val() < int64(w.limit), nil
}

// Reset clears every window recorded for key.
func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	iter := l.client.Scan(ctx, 0, keyPrefix+key+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}
	return nil
}

func (l *RedisRateLimiter) key(identifier string, d time.Duration) string {
	return keyPrefix + identifier + ":" + d.String()
}
