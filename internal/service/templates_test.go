package service

import (
	"strings"
	"testing"

	"github.com/formgate/formgate/internal/models"
)

func TestMessageExcerpt(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"long message truncated with ellipsis", strings.Repeat("a", 150), strings.Repeat("a", 100) + "..."},
		{"short message verbatim", strings.Repeat("b", 50), strings.Repeat("b", 50)},
		{"exactly at limit verbatim", strings.Repeat("c", 100), strings.Repeat("c", 100)},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MessageExcerpt(tt.message, 100); got != tt.want {
				t.Errorf("MessageExcerpt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func sampleSubmission() *models.Submission {
	return &models.Submission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "555-123-4567",
		Company: "Acme",
		Subject: "Hello",
		Message: "A question about your services.",
		Metadata: models.Metadata{
			SubmittedAt: "2025-06-15T14:30:00Z",
			IPAddress:   "203.0.113.9",
		},
	}
}

func TestNotificationBodies(t *testing.T) {
	htmlBody, textBody := NotificationBodies(sampleSubmission(), "CONTACT_X_Y", "Acme Site", "https://acme.example")

	for _, want := range []string{"CONTACT_X_Y", "Jane Doe", "jane@example.com", "555-123-4567", "A question about your services.", "203.0.113.9"} {
		if !strings.Contains(htmlBody, want) {
			t.Errorf("html body missing %q", want)
		}
		if !strings.Contains(textBody, want) {
			t.Errorf("text body missing %q", want)
		}
	}
}

func TestNotificationBodies_Fallbacks(t *testing.T) {
	sub := sampleSubmission()
	sub.Phone = ""
	sub.Company = ""

	_, textBody := NotificationBodies(sub, "CONTACT_X_Y", "Acme Site", "https://acme.example")
	if !strings.Contains(textBody, "Not provided") {
		t.Error("empty optional fields should render as 'Not provided'")
	}
}

func TestConfirmationBodies(t *testing.T) {
	sub := sampleSubmission()
	sub.Message = strings.Repeat("x", 150)

	htmlBody, textBody := ConfirmationBodies(sub, "Acme Site", "https://acme.example")

	excerpt := strings.Repeat("x", 100) + "..."
	if !strings.Contains(htmlBody, excerpt) {
		t.Error("html body missing truncated excerpt")
	}
	if !strings.Contains(textBody, excerpt) {
		t.Error("text body missing truncated excerpt")
	}
	if strings.Contains(textBody, strings.Repeat("x", 101)) {
		t.Error("text body contains more than the excerpt")
	}
	if !strings.Contains(textBody, "Jane Doe") {
		t.Error("text body should greet the submitter by name")
	}
}
