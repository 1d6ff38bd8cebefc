package tasks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/formgate/formgate/internal/models"
)

// fakePurgeStore is an in-memory purgeStore recording deletions.
type fakePurgeStore struct {
	keys    []string
	ttls    map[string]time.Duration
	data    map[string][]byte
	deleted []string
}

func newFakePurgeStore() *fakePurgeStore {
	return &fakePurgeStore{
		ttls: make(map[string]time.Duration),
		data: make(map[string][]byte),
	}
}

func (f *fakePurgeStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	return f.keys, nil
}

func (f *fakePurgeStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	return f.ttls[key], nil
}

func (f *fakePurgeStore) Read(ctx context.Context, key string) ([]byte, error) {
	return f.data[key], nil
}

func (f *fakePurgeStore) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakePurgeStore) add(key string, ttl time.Duration, submittedAt time.Time) {
	record, _ := json.Marshal(&models.Submission{
		FormID:    key,
		Status:    models.StatusNew,
		Timestamp: submittedAt.Format(time.RFC3339),
	})
	f.keys = append(f.keys, key)
	f.ttls[key] = ttl
	f.data[key] = record
}

func newTestPurge(store *fakePurgeStore) *SubmissionPurge {
	return &SubmissionPurge{
		store:     store,
		prefix:    "contact",
		retention: 24 * time.Hour,
		interval:  time.Hour,
	}
}

func TestPurge_DeletesNoExpiryRecordPastRetention(t *testing.T) {
	store := newFakePurgeStore()
	// Redis answers TTL with the bare value -1 for a key without expiry.
	store.add("contact:CONTACT_20200101_000000_aaaaaaaa", time.Duration(-1), time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	newTestPurge(store).purge(context.Background())

	if len(store.deleted) != 1 {
		t.Fatalf("deleted %d keys, want 1", len(store.deleted))
	}
	if store.deleted[0] != "contact:CONTACT_20200101_000000_aaaaaaaa" {
		t.Errorf("deleted key = %q", store.deleted[0])
	}
}

func TestPurge_SkipsKeysOutsideScope(t *testing.T) {
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ttl  time.Duration
		at   time.Time
	}{
		{"key carrying a TTL expires on its own", 10 * time.Minute, old},
		{"missing key sentinel", time.Duration(-2), old},
		{"minus one second is not the no-expiry sentinel", -1 * time.Second, old},
		{"no-expiry record still inside retention", time.Duration(-1), time.Now()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakePurgeStore()
			store.add("contact:CONTACT_x", tt.ttl, tt.at)

			newTestPurge(store).purge(context.Background())

			if len(store.deleted) != 0 {
				t.Errorf("deleted %d keys, want 0", len(store.deleted))
			}
		})
	}
}
