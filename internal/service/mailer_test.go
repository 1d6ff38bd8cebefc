package service

import (
	"errors"
	"strings"
	"testing"
)

type sentMail struct {
	from string
	to   []string
	msg  []byte
}

type mockSender struct {
	sendFunc func(from string, to []string, msg []byte) error
	sent     []sentMail
}

func (m *mockSender) Send(from string, to []string, msg []byte) error {
	if m.sendFunc != nil {
		if err := m.sendFunc(from, to, msg); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, sentMail{from: from, to: to, msg: msg})
	return nil
}

func newTestMailer(sender EmailSender) *Mailer {
	return NewMailer(MailerConfig{
		SenderEmail:       "noreply@acme.example",
		SenderName:        "Acme Site",
		NotificationEmail: "admin@acme.example",
		WebsiteName:       "Acme Site",
		WebsiteURL:        "https://acme.example",
	}, sender)
}

func TestSend_BothEmails(t *testing.T) {
	sender := &mockSender{}
	mailer := newTestMailer(sender)

	notified, confirmed := mailer.Send(sampleSubmission(), "CONTACT_X_Y")
	if !notified || !confirmed {
		t.Fatalf("Send() = (%v, %v), want (true, true)", notified, confirmed)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(sender.sent))
	}

	notification := sender.sent[0]
	if notification.to[0] != "admin@acme.example" {
		t.Errorf("notification sent to %v", notification.to)
	}
	// Admins answer the submitter directly.
	if !strings.Contains(string(notification.msg), "Reply-To:") {
		t.Error("notification missing Reply-To header")
	}

	confirmation := sender.sent[1]
	if confirmation.to[0] != "jane@example.com" {
		t.Errorf("confirmation sent to %v", confirmation.to)
	}
}

func TestSend_MessageIsMultipartAlternative(t *testing.T) {
	sender := &mockSender{}
	mailer := newTestMailer(sender)

	mailer.Send(sampleSubmission(), "CONTACT_X_Y")

	msg := string(sender.sent[0].msg)
	if !strings.Contains(msg, "multipart/alternative") {
		t.Error("message is not multipart/alternative")
	}
	if !strings.Contains(msg, "text/plain") || !strings.Contains(msg, "text/html") {
		t.Error("message missing text or html part")
	}
}

func TestSend_NotificationFailureDoesNotBlockConfirmation(t *testing.T) {
	sender := &mockSender{
		sendFunc: func(from string, to []string, msg []byte) error {
			if to[0] == "admin@acme.example" {
				return errors.New("rejected")
			}
			return nil
		},
	}
	mailer := newTestMailer(sender)

	notified, confirmed := mailer.Send(sampleSubmission(), "CONTACT_X_Y")
	if notified {
		t.Error("notification should have failed")
	}
	if !confirmed {
		t.Error("confirmation must still go out when the notification fails")
	}
}

func TestSend_SkipsConfirmationWithoutEmail(t *testing.T) {
	sender := &mockSender{}
	mailer := newTestMailer(sender)

	sub := sampleSubmission()
	sub.Email = ""

	notified, confirmed := mailer.Send(sub, "CONTACT_X_Y")
	if !notified {
		t.Error("notification should still be sent")
	}
	if confirmed {
		t.Error("confirmation must be skipped without a recipient")
	}
	if len(sender.sent) != 1 {
		t.Errorf("sent %d emails, want 1", len(sender.sent))
	}
}
