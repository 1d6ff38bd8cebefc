package validation

import (
	"strings"
	"testing"

	"github.com/formgate/formgate/internal/api/dto/v1/contact"
)

func TestCheckSpamIndicators(t *testing.T) {
	tests := []struct {
		name string
		req  contact.SubmissionRequest
		want bool
	}{
		{
			name: "clean message",
			req: contact.SubmissionRequest{
				Email:   "jane@example.com",
				Subject: "Question about pricing",
				Message: "I'd like to know more about your services.",
			},
			want: false,
		},
		{
			name: "spam keyword in message",
			req: contact.SubmissionRequest{
				Email:   "jane@example.com",
				Subject: "Opportunity",
				Message: "make money fast with this one trick",
			},
			want: true,
		},
		{
			name: "spam keyword in subject",
			req: contact.SubmissionRequest{
				Email:   "jane@example.com",
				Subject: "Free casino credits",
				Message: "hello there, nothing to see",
			},
			want: true,
		},
		{
			name: "disposable email domain",
			req: contact.SubmissionRequest{
				Email:   "user@mailinator.com",
				Subject: "Hello",
				Message: "just a normal message here",
			},
			want: true,
		},
		{
			name: "too many urls",
			req: contact.SubmissionRequest{
				Email:   "jane@example.com",
				Subject: "Links",
				Message: "see https://a.example https://b.example https://c.example",
			},
			want: true,
		},
		{
			name: "two urls is fine",
			req: contact.SubmissionRequest{
				Email:   "jane@example.com",
				Subject: "Links",
				Message: "see https://a.example and https://b.example",
			},
			want: false,
		},
		{
			name: "shouting",
			req: contact.SubmissionRequest{
				Email:   "jane@example.com",
				Subject: "Hello",
				Message: "BUY THIS RIGHT NOW PLEASE",
			},
			want: true,
		},
		{
			name: "repeated characters",
			req: contact.SubmissionRequest{
				Email:   "jane@example.com",
				Subject: "Hello",
				Message: "well " + strings.Repeat("!", 12) + " then",
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reasons := CheckSpamIndicators(&tt.req)
			if got != tt.want {
				t.Errorf("CheckSpamIndicators() = %v (reasons %v), want %v", got, reasons, tt.want)
			}
			if got && len(reasons) == 0 {
				t.Error("flagged submissions must carry at least one reason")
			}
		})
	}
}

func TestHasRepeatedRun(t *testing.T) {
	if hasRepeatedRun("aaabbb", 10) {
		t.Error("short runs should not trigger")
	}
	if !hasRepeatedRun(strings.Repeat("a", 10), 10) {
		t.Error("10-run should trigger")
	}
	if hasRepeatedRun("", 10) {
		t.Error("empty string should not trigger")
	}
}
