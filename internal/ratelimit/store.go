package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps rate-limit counters as plain string keys with TTLs so
// Redis expires them without any cleanup job on our side.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		prefix: strings.Trim(prefix, ":"),
	}
}

func (s *RedisStore) key(k string) string {
	return fmt.Sprintf("%s:%s", s.prefix, k)
}

// GetCount returns the stored count for key, zero when the key is absent or
// already expired.
func (s *RedisStore) GetCount(ctx context.Context, key string) (int, error) {
	count, err := s.rdb.Get(ctx, s.key(key)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", key, err)
	}
	return count, nil
}

// SetCount writes the counter with a fresh TTL.
func (s *RedisStore) SetCount(ctx context.Context, key string, count int, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, s.key(key), count, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write counter %s: %w", key, err)
	}
	return nil
}
