package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// keepTTL tells Write to leave the key's remaining expiry untouched.
const keepTTL = time.Duration(-1)

// KVStore is the slice of the key-value engine the repository needs:
// one JSON blob per key, with optional expiry.
type KVStore interface {
	// Write stores data under key. A zero ttl keeps the record forever;
	// a negative ttl preserves the key's remaining expiry.
	Write(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Read returns the stored blob, or ErrNotFound for an absent key.
	Read(ctx context.Context, key string) ([]byte, error)
}

// RedisKV implements KVStore on go-redis.
type RedisKV struct {
	rdb *redis.Client
}

func NewRedisKV(rdb *redis.Client) *RedisKV {
	return &RedisKV{rdb: rdb}
}

func (s *RedisKV) Write(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = redis.KeepTTL
	}
	return s.rdb.Set(ctx, key, data, ttl).Err()
}

func (s *RedisKV) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

// Ping reports whether the store is reachable.
func (s *RedisKV) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
