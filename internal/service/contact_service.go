package service

import (
	"context"
	"strings"
	"time"

	"github.com/formgate/formgate/internal/api/dto/v1/contact"
	"github.com/formgate/formgate/internal/api/sanitization"
	"github.com/formgate/formgate/internal/api/validation"
	"github.com/formgate/formgate/internal/logging"
	"github.com/formgate/formgate/internal/models"
	"github.com/formgate/formgate/internal/ratelimit"
	"github.com/formgate/formgate/internal/repository"
)

// ResultKind is the closed set of pipeline outcomes. The handler switches
// over it exhaustively; adding a kind without a response mapping is a
// compile-away bug the tests catch.
type ResultKind int

const (
	// Accepted: stored and (best effort) notified.
	Accepted ResultKind = iota
	// RateLimited: the per-IP hourly or daily limit was hit.
	RateLimited
	// BotDetected: honeypot tripped. Answered as a success on purpose.
	BotDetected
	// Invalid: one or more fields failed validation.
	Invalid
	// StoreFailed: persistence failed; the only hard failure.
	StoreFailed
)

// SubmitResult carries the outcome of a submission attempt.
type SubmitResult struct {
	Kind       ResultKind
	FormID     string
	Message    string
	RetryAfter int
	Errors     validation.ErrorSet
}

// RequestMeta is the per-request context stamped onto stored submissions.
type RequestMeta struct {
	IPAddress string
	UserAgent string
	SourceURL string
}

// RateChecker decides whether a submission from an IP may proceed.
type RateChecker interface {
	Check(ctx context.Context, ip string) ratelimit.Result
}

// Notifier dispatches the post-acceptance emails.
type Notifier interface {
	Send(submission *models.Submission, formID string) (notificationSent, confirmationSent bool)
}

// ContactService runs the submission pipeline: rate limit, honeypot,
// validation, sanitization, persistence, notification.
type ContactService struct {
	limiter  RateChecker
	repo     repository.SubmissionRepository
	notifier Notifier

	// now is swappable for tests.
	now func() time.Time
}

func NewContactService(limiter RateChecker, repo repository.SubmissionRepository, notifier Notifier) *ContactService {
	return &ContactService{
		limiter:  limiter,
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// Submit runs the full pipeline for one parsed request. Every stage can
// short-circuit; only a store failure is fatal to the request.
func (s *ContactService) Submit(ctx context.Context, req *contact.SubmissionRequest, meta RequestMeta) SubmitResult {
	logger := logging.GetLogger()

	if result := s.limiter.Check(ctx, meta.IPAddress); !result.Allowed {
		return SubmitResult{
			Kind:       RateLimited,
			Message:    result.Message,
			RetryAfter: result.RetryAfter,
		}
	}

	if !validation.CheckHoneypot(req) {
		logger.Warn("Bot detected via honeypot from IP: %s", meta.IPAddress)
		return SubmitResult{Kind: BotDetected}
	}

	if errors := validation.ValidateContactForm(req); len(errors) > 0 {
		logger.Info("Validation failed: %v", errors)
		return SubmitResult{Kind: Invalid, Errors: errors}
	}

	clean := sanitization.SanitizeForm(req)
	submission := &models.Submission{
		Name:    clean.Name,
		Email:   strings.ToLower(strings.TrimSpace(clean.Email)),
		Phone:   clean.Phone,
		Company: clean.Company,
		Subject: clean.Subject,
		Message: clean.Message,
		Metadata: models.Metadata{
			SubmittedAt: s.now().Format(time.RFC3339),
			IPAddress:   meta.IPAddress,
			UserAgent:   meta.UserAgent,
			SourceURL:   meta.SourceURL,
		},
	}

	formID, err := s.repo.Save(ctx, submission)
	if err != nil {
		logger.Error("Database error: %v", err)
		return SubmitResult{Kind: StoreFailed}
	}

	// Best effort: a lost email never fails an accepted submission.
	notified, confirmed := s.notifier.Send(submission, formID)
	logger.Info("Notifications for %s: admin=%t, confirmation=%t", formID, notified, confirmed)

	return SubmitResult{Kind: Accepted, FormID: formID}
}
