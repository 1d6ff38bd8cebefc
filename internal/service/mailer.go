package service

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/formgate/formgate/internal/logging"
	"github.com/formgate/formgate/internal/models"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// EmailSender submits a fully built RFC 5322 message to the transactional
// email provider.
type EmailSender interface {
	Send(from string, to []string, msg []byte) error
}

// SMTPSender delivers via the provider's SMTP submission endpoint with
// STARTTLS and PLAIN auth.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
}

func NewSMTPSender(host string, port int, username, password string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
}

func (s *SMTPSender) Send(from string, to []string, msg []byte) error {
	if s.host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	var auth sasl.Client
	if s.username != "" {
		auth = sasl.NewPlainClient("", s.username, s.password)
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := smtp.SendMail(addr, auth, from, to, bytes.NewReader(msg)); err != nil {
		return fmt.Errorf("smtp submission to %s failed: %w", addr, err)
	}
	return nil
}

// MailerConfig carries sender identity and website branding for the emails.
type MailerConfig struct {
	SenderEmail       string
	SenderName        string
	NotificationEmail string
	WebsiteName       string
	WebsiteURL        string
}

// Mailer sends the admin notification and submitter confirmation for an
// accepted submission. Both sends are best effort: each failure is logged
// and contained, and neither blocks the other.
type Mailer struct {
	config MailerConfig
	sender EmailSender

	// now is swappable for tests.
	now func() time.Time
}

func NewMailer(config MailerConfig, sender EmailSender) *Mailer {
	return &Mailer{
		config: config,
		sender: sender,
		now:    time.Now,
	}
}

// Send dispatches both emails and reports which of the two went out.
func (m *Mailer) Send(submission *models.Submission, formID string) (notificationSent, confirmationSent bool) {
	logger := logging.GetLogger()

	if err := m.sendNotification(submission, formID); err != nil {
		logger.Error("Failed to send notification email: %v", err)
	} else {
		notificationSent = true
	}

	if submission.Email == "" {
		// Validation requires an email, so this should not happen.
		logger.Warn("No email address provided for confirmation email")
		return notificationSent, false
	}

	if err := m.sendConfirmation(submission); err != nil {
		logger.Error("Failed to send confirmation email: %v", err)
	} else {
		confirmationSent = true
	}

	return notificationSent, confirmationSent
}

func (m *Mailer) sendNotification(submission *models.Submission, formID string) error {
	subject := fmt.Sprintf("New Contact Form Submission - %s", m.config.WebsiteName)
	htmlBody, textBody := NotificationBodies(submission, formID, m.config.WebsiteName, m.config.WebsiteURL)

	msg, err := m.buildMessage(m.config.NotificationEmail, subject, htmlBody, textBody, submission.Email)
	if err != nil {
		return err
	}
	return m.sender.Send(m.config.SenderEmail, []string{m.config.NotificationEmail}, msg)
}

func (m *Mailer) sendConfirmation(submission *models.Submission) error {
	subject := fmt.Sprintf("Thank you for contacting %s", m.config.WebsiteName)
	htmlBody, textBody := ConfirmationBodies(submission, m.config.WebsiteName, m.config.WebsiteURL)

	msg, err := m.buildMessage(submission.Email, subject, htmlBody, textBody, "")
	if err != nil {
		return err
	}
	return m.sender.Send(m.config.SenderEmail, []string{submission.Email}, msg)
}

// buildMessage assembles a multipart/alternative message with text and HTML
// parts, optionally carrying a Reply-To so admins can answer the submitter
// directly.
func (m *Mailer) buildMessage(to, subject, htmlBody, textBody, replyTo string) ([]byte, error) {
	var buf bytes.Buffer

	var header mail.Header
	header.SetDate(m.now())
	header.SetAddressList("From", []*mail.Address{{Name: m.config.SenderName, Address: m.config.SenderEmail}})
	header.SetAddressList("To", []*mail.Address{{Address: to}})
	header.SetSubject(subject)
	if replyTo != "" {
		header.SetAddressList("Reply-To", []*mail.Address{{Address: replyTo}})
	}

	mw, err := mail.CreateWriter(&buf, header)
	if err != nil {
		return nil, fmt.Errorf("failed to create message writer: %w", err)
	}

	iw, err := mw.CreateInline()
	if err != nil {
		return nil, fmt.Errorf("failed to create alternative part: %w", err)
	}

	// Plain text first, HTML last: clients pick the final part they support.
	var textHeader mail.InlineHeader
	textHeader.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	if err := writePart(iw, textHeader, textBody); err != nil {
		return nil, err
	}

	var htmlHeader mail.InlineHeader
	htmlHeader.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	if err := writePart(iw, htmlHeader, htmlBody); err != nil {
		return nil, err
	}

	if err := iw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close alternative part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close message: %w", err)
	}

	return buf.Bytes(), nil
}

func writePart(iw *mail.InlineWriter, header mail.InlineHeader, body string) error {
	part, err := iw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create body part: %w", err)
	}
	if _, err := io.WriteString(part, body); err != nil {
		part.Close()
		return fmt.Errorf("failed to write body part: %w", err)
	}
	return part.Close()
}
