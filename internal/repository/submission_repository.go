package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/formgate/formgate/internal/logging"
	"github.com/formgate/formgate/internal/models"

	"github.com/google/uuid"
)

// submissionRepository implements SubmissionRepository on a KVStore. Records
// are stored as JSON blobs under <prefix>:<formId>; retention is a TTL hint
// applied at write time (zero keeps records forever).
type submissionRepository struct {
	store     KVStore
	prefix    string
	retention time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewSubmissionRepository creates a SubmissionRepository over the given store.
func NewSubmissionRepository(store KVStore, prefix string, retention time.Duration) SubmissionRepository {
	return &submissionRepository{
		store:     store,
		prefix:    strings.Trim(prefix, ":"),
		retention: retention,
		now:       time.Now,
	}
}

func (r *submissionRepository) key(formID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, formID)
}

// Save writes the record with a generated identifier and status "new".
// The id combines a fixed prefix, a timestamp and a short random suffix,
// which is unique in practice without a round trip to check.
func (r *submissionRepository) Save(ctx context.Context, submission *models.Submission) (string, error) {
	logger := logging.GetLogger()

	now := r.now()
	formID := fmt.Sprintf("CONTACT_%s_%s",
		now.Format("20060102_150405"),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
	)

	submission.FormID = formID
	submission.Timestamp = now.Format(time.RFC3339)
	submission.Status = models.StatusNew
	submission.FormType = models.FormTypeContact

	data, err := json.Marshal(submission)
	if err != nil {
		logger.Error("Failed to marshal submission: %v", err)
		return "", fmt.Errorf("failed to save form submission")
	}

	if err := r.store.Write(ctx, r.key(formID), data, r.retention); err != nil {
		logger.Error("Store error saving form: %v", err)
		return "", fmt.Errorf("failed to save form submission")
	}

	logger.Info("Contact form saved with ID: %s", formID)
	return formID, nil
}

// GetByID returns the stored submission, or ErrNotFound.
func (r *submissionRepository) GetByID(ctx context.Context, formID string) (*models.Submission, error) {
	data, err := r.store.Read(ctx, r.key(formID))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read submission %s: %w", formID, err)
	}

	var submission models.Submission
	if err := json.Unmarshal(data, &submission); err != nil {
		return nil, fmt.Errorf("failed to decode submission %s: %w", formID, err)
	}
	return &submission, nil
}

// UpdateStatus rewrites the record with the new status and a lastUpdated
// stamp, preserving whatever retention TTL the key still carries.
func (r *submissionRepository) UpdateStatus(ctx context.Context, formID, status string) error {
	submission, err := r.GetByID(ctx, formID)
	if err != nil {
		return err
	}

	submission.Status = status
	submission.LastUpdated = r.now().Format(time.RFC3339)

	data, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("failed to encode submission %s: %w", formID, err)
	}

	// keepTTL preserves the remaining retention window instead of
	// restarting it on every status change.
	if err := r.store.Write(ctx, r.key(formID), data, keepTTL); err != nil {
		return fmt.Errorf("failed to update submission %s: %w", formID, err)
	}

	logging.GetLogger().Info("Updated form %s status to %s", formID, status)
	return nil
}
