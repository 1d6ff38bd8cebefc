package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/formgate/formgate/internal/logging"
	"github.com/formgate/formgate/internal/models"

	"github.com/redis/go-redis/v9"
)

// noExpiry is how go-redis reports the Redis TTL reply for a key that
// exists without an expiry: the bare value -1, not -1 second. Missing
// keys come back as -2.
const noExpiry = time.Duration(-1)

// purgeStore is the slice of the store the purge task walks.
type purgeStore interface {
	Keys(ctx context.Context, pattern string) ([]string, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Read(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// SubmissionPurge deletes submissions that outlived the retention window
// but were written without a TTL (records predating retention config).
// Current writes carry the TTL on the key, so Redis expires them itself.
type SubmissionPurge struct {
	store     purgeStore
	prefix    string
	retention time.Duration
	interval  time.Duration
}

// NewSubmissionPurge creates the purge task. A zero retention disables it.
func NewSubmissionPurge(rdb *redis.Client, prefix string, retention, interval time.Duration) *SubmissionPurge {
	return &SubmissionPurge{
		store:     &redisPurgeStore{rdb: rdb},
		prefix:    prefix,
		retention: retention,
		interval:  interval,
	}
}

// Start begins the purge task in the background. Stop by cancelling ctx.
func (p *SubmissionPurge) Start(ctx context.Context) {
	if p.retention <= 0 || p.interval <= 0 {
		return
	}
	go p.runPeriodically(ctx)
}

func (p *SubmissionPurge) runPeriodically(ctx context.Context) {
	// Run immediately on startup
	p.purge(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.purge(ctx)
		}
	}
}

func (p *SubmissionPurge) purge(ctx context.Context) {
	logger := logging.GetLogger()
	cutoff := time.Now().Add(-p.retention)
	deleted := 0

	keys, err := p.store.Keys(ctx, p.prefix+":*")
	if err != nil {
		logger.Error("Submission purge scan failed: %v", err)
		return
	}

	for _, key := range keys {
		// Keys already carrying a TTL expire on their own; only the
		// legacy no-expiry records need collecting.
		ttl, err := p.store.TTL(ctx, key)
		if err != nil || ttl != noExpiry {
			continue
		}

		data, err := p.store.Read(ctx, key)
		if err != nil {
			continue
		}

		var submission models.Submission
		if err := json.Unmarshal(data, &submission); err != nil {
			continue
		}

		stamp, err := time.Parse(time.RFC3339, submission.Timestamp)
		if err != nil || stamp.After(cutoff) {
			continue
		}

		if err := p.store.Delete(ctx, key); err != nil {
			logger.Error("Failed to purge submission %s: %v", key, err)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		logger.Info("Purged %d expired submissions", deleted)
	}
}

type redisPurgeStore struct {
	rdb *redis.Client
}

func (s *redisPurgeStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}

func (s *redisPurgeStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.rdb.TTL(ctx, key).Result()
}

func (s *redisPurgeStore) Read(ctx context.Context, key string) ([]byte, error) {
	return s.rdb.Get(ctx, key).Bytes()
}

func (s *redisPurgeStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
