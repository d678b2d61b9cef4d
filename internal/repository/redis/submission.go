package redisrepo

import (
	"context"
	"time"

	redisx "github.com/kirinyoku/fyyur/internal/redis"
	"github.com/redis/go-redis/v9"
)

// SubmissionGuard makes each rendered form token usable once, so a form
// posted twice creates a single row.
type SubmissionGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSubmissionGuard(rdb *redis.Client, ttl time.Duration) *SubmissionGuard {
	return &SubmissionGuard{rdb: rdb, ttl: ttl}
}

// Claim reports whether token was unused and marks it used.
func (g *SubmissionGuard) Claim(ctx context.Context, token string) (bool, error) {
	return g.rdb.SetNX(ctx, redisx.KeyFormToken(token), "used", g.ttl).Result()
}

// Release makes token usable again, e.g. after the write it guarded failed.
func (g *SubmissionGuard) Release(ctx context.Context, token string) error {
	return g.rdb.Del(ctx, redisx.KeyFormToken(token)).Err()
}
