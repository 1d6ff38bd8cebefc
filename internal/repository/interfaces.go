package repository

import (
	"context"
	"errors"

	"github.com/formgate/formgate/internal/models"
)

// ErrNotFound is returned when no submission exists for the given id.
var ErrNotFound = errors.New("submission not found")

// SubmissionRepository persists contact-form submissions. Save is the only
// operation exercised by the request pipeline; GetByID and UpdateStatus
// exist for operational tooling.
type SubmissionRepository interface {
	// Save assigns a form id, stamps status "new", and writes the record.
	// The returned id is the only handle callers ever get.
	Save(ctx context.Context, submission *models.Submission) (string, error)
	GetByID(ctx context.Context, formID string) (*models.Submission, error)
	// UpdateStatus is the only permitted mutation of a stored record.
	UpdateStatus(ctx context.Context, formID, status string) error
}
