package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps credentials in a shared Redis instance. It exists
// for agent-desk and kiosk deployments where the operator's session has
// to follow them between terminals; for a personal install the
// FileStore is the right backend.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// OpenRedisStore connects to the Redis instance at dsn (a redis:// URL)
// and verifies the connection with a ping. Keys are namespaced under
// prefix, typically an operator or desk identifier.
func OpenRedisStore(ctx context.Context, dsn, prefix string) (*RedisStore, error) {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse redis dsn: %w", err)
	}
	opt.DialTimeout = 5 * time.Second

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

// NewRedisStore wraps an existing client. Used by tests.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error { return r.client.Close() }

func (r *RedisStore) key(key string) string {
	return "skyreserve:" + r.prefix + ":" + key
}

// Get returns the value for key.
func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// Set writes the value for key.
func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
