package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
)

// RequestRateLimiter is the subset of *redis_rate.Limiter used here.
type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RedisLimiter shares the attempt counters across server instances through
// Redis. Windows are aligned to multiples of Window since the epoch, and each
// window uses its own key.
type RedisLimiter struct {
	limiter RequestRateLimiter
	limit   redis_rate.Limit
	window  time.Duration
	prefix  string
	now     func() time.Time
}

// NewRedisLimiter builds a limiter on top of an existing Redis client.
func NewRedisLimiter(client *redis.Client, policy Policy, prefix string) *RedisLimiter {
	return newRedisLimiter(redis_rate.NewLimiter(client), policy, prefix)
}

func newRedisLimiter(limiter RequestRateLimiter, policy Policy, prefix string) *RedisLimiter {
	return &RedisLimiter{
		limiter: limiter,
		// One token comes back per full window, so within a window key only
		// the burst is ever spent.
		limit: redis_rate.Limit{
			Rate:   policy.Attempts,
			Burst:  policy.Attempts,
			Period: policy.Window * time.Duration(policy.Attempts),
		},
		window: policy.Window,
		prefix: prefix,
		now:    time.Now,
	}
}

func (rl *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := rl.now()
	index := now.UnixNano() / int64(rl.window)
	resetAt := time.Unix(0, (index+1)*int64(rl.window))

	res, err := rl.limiter.Allow(ctx, rl.prefix+key+":"+strconv.FormatInt(index, 10), rl.limit)
	if err != nil {
		return false, 0, err
	}
	if res.Allowed > 0 {
		return true, 0, nil
	}
	return false, resetAt.Sub(now), nil
}
