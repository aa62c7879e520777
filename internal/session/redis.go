package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys: folio:session:{key}
const DefaultRedisPrefix = "folio:session:"

// RedisBackend stores session keys in Redis.
type RedisBackend struct {
	client *redis.Client
	ctx    context.Context
	prefix string
	ttl    time.Duration
}

// RedisOptions configures a RedisBackend.
type RedisOptions struct {
	Prefix string
	// TTL applied on every Set. Zero keeps keys until deleted.
	TTL time.Duration
}

// NewRedisBackend creates a RedisBackend on an existing client.
func NewRedisBackend(client *redis.Client, opts RedisOptions) *RedisBackend {
	if opts.Prefix == "" {
		opts.Prefix = DefaultRedisPrefix
	}
	return &RedisBackend{
		client: client,
		ctx:    context.Background(),
		prefix: opts.Prefix,
		ttl:    opts.TTL,
	}
}

// Ping checks connectivity, wrapping failures with ErrBackendUnavailable.
func (b *RedisBackend) Ping() error {
	if err := b.client.Ping(b.ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return nil
}

// Get implements Backend.
func (b *RedisBackend) Get(key string) (string, bool, error) {
	v, err := b.client.Get(b.ctx, b.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// Set implements Backend.
func (b *RedisBackend) Set(key, value string) error {
	if err := b.client.Set(b.ctx, b.key(key), value, b.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete implements Backend.
func (b *RedisBackend) Delete(key string) error {
	if err := b.client.Del(b.ctx, b.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) key(k string) string {
	return b.prefix + k
}
