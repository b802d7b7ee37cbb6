package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Redis stores JSON-encoded values under a key prefix.
type Redis[V any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ Storage[int] = (*Redis[int])(nil)

// NewRedis connects to url and verifies the connection with a ping.
func NewRedis[V any](ctx context.Context, url, prefix string, ttl time.Duration) (*Redis[V], error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return &Redis[V]{client: client, prefix: prefix, ttl: ttl}, nil
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var item V
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return item, ErrMiss
	}
	if err != nil {
		return item, fmt.Errorf("redis: get: %w", err)
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, fmt.Errorf("redis: decode %q: %w", key, err)
	}
	return item, nil
}

func (r *Redis[V]) Put(ctx context.Context, key string, item V) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("redis: encode %q: %w", key, err)
	}
	return r.client.Set(ctx, r.prefix+key, raw, r.ttl).Err()
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

func (r *Redis[V]) Close() error {
	return r.client.Close()
}
