package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ski_planner/internal/adapters/observability"
)

// Cache is a JSON value store over Redis implementing domain.Cache.
// Keys are namespaced with prefix so several deployments can share one instance.
type Cache struct {
	c      *redis.Client
	prefix string
}

func New(addr, pass string, db int, prefix string) *Cache {
	return NewFromClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), prefix)
}

func NewFromClient(c *redis.Client, prefix string) *Cache {
	return &Cache{c: c, prefix: prefix}
}

func (r *Cache) key(k string) string { return r.prefix + k }

func (r *Cache) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(v, dst); err != nil {
		// undecodable payloads count as a miss and the error is returned for logging
		observability.ObserveCache("redis", "miss")
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	observability.ObserveCache("redis", "hit")
	return true, nil
}

// Set stores v as JSON; ttlSec <= 0 stores without expiry.
func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, r.key(key), b, time.Duration(ttlSec)*time.Second).Err()
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("redis", "del")
	return r.c.Del(ctx, r.key(key)).Err()
}

func (r *Cache) Close() error { return r.c.Close() }
