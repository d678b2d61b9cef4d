package redisrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisx "github.com/kirinyoku/fyyur/internal/redis"
	"github.com/redis/go-redis/v9"
)

const (
	FlashInfo  = "info"
	FlashError = "danger"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// FlashStore keeps pending flashes per browser session in a Redis list.
type FlashStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFlashStore(rdb *redis.Client, ttl time.Duration) *FlashStore {
	return &FlashStore{rdb: rdb, ttl: ttl}
}

func (s *FlashStore) Push(ctx context.Context, sessionID string, f Flash) error {
	const op = "redisrepo.FlashStore.Push"

	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	key := redisx.KeyFlash(sessionID)
	if _, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, string(b))
		p.Expire(ctx, key, s.ttl)
		return nil
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Pop returns and removes every pending flash of the session, oldest first.
func (s *FlashStore) Pop(ctx context.Context, sessionID string) ([]Flash, error) {
	const op = "redisrepo.FlashStore.Pop"

	key := redisx.KeyFlash(sessionID)

	var items *redis.StringSliceCmd
	if _, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		items = p.LRange(ctx, key, 0, -1)
		p.Del(ctx, key)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]Flash, 0, len(items.Val()))
	for _, raw := range items.Val() {
		var f Flash
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			continue
		}
		out = append(out, f)
	}

	return out, nil
}
