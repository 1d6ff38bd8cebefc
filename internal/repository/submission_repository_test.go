package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/formgate/formgate/internal/models"
)

// fakeKV is an in-memory KVStore with injectable failures.
type fakeKV struct {
	data     map[string][]byte
	ttls     map[string]time.Duration
	writeErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{
		data: make(map[string][]byte),
		ttls: make(map[string]time.Duration),
	}
}

func (f *fakeKV) Write(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.data[key] = data
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Read(ctx context.Context, key string) ([]byte, error) {
	data, ok := f.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

var formIDRegex = regexp.MustCompile(`^CONTACT_\d{8}_\d{6}_[0-9a-f]{8}$`)

func newTestRepository(kv *fakeKV, now time.Time) *submissionRepository {
	repo := NewSubmissionRepository(kv, "contact", 48*time.Hour).(*submissionRepository)
	repo.now = func() time.Time { return now }
	return repo
}

func TestSave(t *testing.T) {
	kv := newFakeKV()
	now := time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)
	repo := newTestRepository(kv, now)

	formID, err := repo.Save(context.Background(), &models.Submission{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if !formIDRegex.MatchString(formID) {
		t.Errorf("formID = %q, want CONTACT_<date>_<time>_<8 hex>", formID)
	}
	if want := "CONTACT_20260829_150405_"; formID[:len(want)] != want {
		t.Errorf("formID = %q, want prefix %q", formID, want)
	}

	raw, ok := kv.data["contact:"+formID]
	if !ok {
		t.Fatalf("record not written under contact:%s", formID)
	}
	var stored models.Submission
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("stored record is not JSON: %v", err)
	}
	if stored.Status != models.StatusNew {
		t.Errorf("Status = %q, want %q", stored.Status, models.StatusNew)
	}
	if stored.FormType != models.FormTypeContact {
		t.Errorf("FormType = %q, want %q", stored.FormType, models.FormTypeContact)
	}
	if stored.Timestamp != "2026-08-29T15:04:05Z" {
		t.Errorf("Timestamp = %q", stored.Timestamp)
	}
	if got := kv.ttls["contact:"+formID]; got != 48*time.Hour {
		t.Errorf("write TTL = %v, want 48h", got)
	}
}

func TestSave_StoreFailure(t *testing.T) {
	kv := newFakeKV()
	kv.writeErr = errors.New("connection refused")
	repo := newTestRepository(kv, time.Now())

	_, err := repo.Save(context.Background(), &models.Submission{Name: "Jane"})
	if err == nil {
		t.Fatal("Save() error = nil, want failure")
	}
	// The caller-facing message carries no store internals.
	if err.Error() != "failed to save form submission" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestGetByID(t *testing.T) {
	kv := newFakeKV()
	repo := newTestRepository(kv, time.Now())

	if _, err := repo.GetByID(context.Background(), "CONTACT_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByID(missing) error = %v, want ErrNotFound", err)
	}

	formID, err := repo.Save(context.Background(), &models.Submission{Name: "Jane", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.GetByID(context.Background(), formID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Jane" || got.Email != "jane@example.com" {
		t.Errorf("round-tripped record = %+v", got)
	}
}

func TestUpdateStatus(t *testing.T) {
	kv := newFakeKV()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	repo := newTestRepository(kv, now)

	formID, err := repo.Save(context.Background(), &models.Submission{Name: "Jane", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := repo.UpdateStatus(context.Background(), formID, models.StatusReplied); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	got, err := repo.GetByID(context.Background(), formID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != models.StatusReplied {
		t.Errorf("Status = %q, want %q", got.Status, models.StatusReplied)
	}
	if got.LastUpdated != "2026-08-29T12:00:00Z" {
		t.Errorf("LastUpdated = %q", got.LastUpdated)
	}
	// The rewrite must not restart the retention window.
	if ttl := kv.ttls["contact:"+formID]; ttl >= 0 {
		t.Errorf("update wrote TTL %v, want the keep sentinel", ttl)
	}

	if err := repo.UpdateStatus(context.Background(), "CONTACT_missing", models.StatusSpam); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateStatus(missing) error = %v, want ErrNotFound", err)
	}
}
