package rateLimit

import (
	"context"
	"time"

	redisadapter "github.com/showtimehq/movie-booking/internal/adapters/redis"
)

// RateLimiter is a fixed-window counter over redis. The rate and window are
// fixed at construction; the middleware keys it per client IP.
type RateLimiter struct {
	redis  *redisadapter.Cache
	rate   int
	window time.Duration
}

func NewRateLimiter(redis *redisadapter.Cache, rate int, window time.Duration) *RateLimiter {
	return &RateLimiter{redis: redis, rate: rate, window: window}
}

func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	fullKey := "rl:" + key

	pipe := rl.redis.Client().Pipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.Expire(ctx, fullKey, rl.window)

	_, err := pipe.Exec(ctx)
	if err != nil {
		// Fail open so a redis outage does not take the API down with it.
		return true
	}

	return incr.Val() <= int64(rl.rate)
}
