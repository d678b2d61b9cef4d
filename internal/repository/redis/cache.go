package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisx "github.com/kirinyoku/fyyur/internal/redis"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache keeps JSON copies of venue and artist records. Writers drop the
// entry after their transaction commits; readers refill it on demand.
type Cache struct {
	rdb *redis.Client
	sf  singleflight.Group
}

func New(client *redis.Client) *Cache {
	return &Cache{rdb: client}
}

// lookup decodes the entry under key. A miss is not an error.
func lookup[T any](ctx context.Context, c *Cache, key string) (T, bool, error) {
	var out T

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return out, false, nil
	case err != nil:
		return out, false, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, err
	}

	return out, true, nil
}

func save(ctx context.Context, c *Cache, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key, string(b), ttl).Err()
}

// GetOrSetJSON returns the cached value under key, or calls loader and
// caches its result for ttl. Concurrent misses on one key share a single
// loader call. A failing cache never fails the read: the loader is used.
func GetOrSetJSON[T any](
	ctx context.Context,
	c *Cache,
	key string,
	ttl time.Duration,
	loader func(ctx context.Context) (T, error),
) (T, error) {
	if v, ok, err := lookup[T](ctx, c, key); err == nil && ok {
		return v, nil
	}

	res, err, _ := c.sf.Do(key, func() (any, error) {
		if v, ok, err := lookup[T](ctx, c, key); err == nil && ok {
			return v, nil
		}

		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		_ = save(ctx, c, key, v, ttl)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	v, ok := res.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("redisrepo.GetOrSetJSON: unexpected %T under %s", res, key)
	}

	return v, nil
}

func (c *Cache) InvalidateVenue(ctx context.Context, venueID int64) error {
	return c.invalidate(ctx, "redisrepo.Cache.InvalidateVenue", redisx.KeyVenue(venueID))
}

func (c *Cache) InvalidateArtist(ctx context.Context, artistID int64) error {
	return c.invalidate(ctx, "redisrepo.Cache.InvalidateArtist", redisx.KeyArtist(artistID))
}

func (c *Cache) invalidate(ctx context.Context, op, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
