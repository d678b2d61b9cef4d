package redisrepo

import (
	"context"
	"fmt"
	"time"

	redisx "github.com/kirinyoku/fyyur/internal/redis"
	"github.com/redis/go-redis/v9"
)

// WindowLimiter allows at most limit hits per id inside each fixed window.
type WindowLimiter struct {
	rdb    *redis.Client
	scope  string
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewWindowLimiter(
	rdb *redis.Client,
	scope string,
	limit int,
	window time.Duration,
) *WindowLimiter {
	return &WindowLimiter{
		rdb:    rdb,
		scope:  scope,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// Allow records a hit for id. When the limit is exceeded it reports false and
// the time left until the current window closes.
func (l *WindowLimiter) Allow(ctx context.Context, id string) (bool, time.Duration, error) {
	const op = "redisrepo.WindowLimiter.Allow"

	now := l.now()
	start := now.Truncate(l.window)
	key := redisx.KeyRateLimit(l.scope, id, start.UnixMilli())

	var hits *redis.IntCmd
	if _, err := l.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		hits = p.Incr(ctx, key)
		p.PExpire(ctx, key, l.window)
		return nil
	}); err != nil {
		return false, 0, fmt.Errorf("%s: %w", op, err)
	}

	if hits.Val() > l.limit {
		return false, start.Add(l.window).Sub(now), nil
	}

	return true, 0, nil
}
