package service

import (
	"fmt"
	"strings"

	"github.com/formgate/formgate/internal/models"
)

// The email bodies are static string formatting on purpose: no template
// engine, no control flow beyond a couple of fallbacks.

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// MessageExcerpt returns the first limit characters of message, appending
// an ellipsis when it was truncated.
func MessageExcerpt(message string, limit int) string {
	runes := []rune(message)
	if len(runes) <= limit {
		return message
	}
	return string(runes[:limit]) + "..."
}

// NotificationBodies builds the admin notification email for a stored
// submission. Returns the HTML body and its plain-text alternative.
func NotificationBodies(sub *models.Submission, formID, websiteName, websiteURL string) (htmlBody, textBody string) {
	htmlMessage := strings.ReplaceAll(orDefault(sub.Message, "No message provided"), "\n", "<br>")

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #f8f9fa; padding: 20px; border-radius: 5px; margin-bottom: 20px; }
    .field { margin-bottom: 15px; }
    .label { font-weight: bold; color: #555; }
    .message-box { background: #f8f9fa; padding: 15px; border-left: 3px solid #007bff; margin: 20px 0; }
    .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #dee2e6; font-size: 12px; color: #6c757d; }
</style>
</head>
<body>
<div class="container">
    <div class="header">
        <h2>New Contact Form Submission</h2>
        <p>Form ID: <strong>%s</strong></p>
    </div>
    <div class="field"><span class="label">Name:</span> %s</div>
    <div class="field"><span class="label">Email:</span> <a href="mailto:%s">%s</a></div>
    <div class="field"><span class="label">Phone:</span> %s</div>
    <div class="field"><span class="label">Company:</span> %s</div>
    <div class="field"><span class="label">Subject:</span> %s</div>
    <div class="field"><span class="label">Message:</span></div>
    <div class="message-box">%s</div>
    <div class="footer">
        <p>Submitted at: %s</p>
        <p>IP Address: %s</p>
        <p>&copy; %s | <a href="%s">%s</a></p>
    </div>
</div>
</body>
</html>`,
		formID,
		orDefault(sub.Name, "N/A"),
		sub.Email, orDefault(sub.Email, "N/A"),
		orDefault(sub.Phone, "Not provided"),
		orDefault(sub.Company, "Not provided"),
		orDefault(sub.Subject, "N/A"),
		htmlMessage,
		orDefault(sub.Metadata.SubmittedAt, "Unknown"),
		orDefault(sub.Metadata.IPAddress, "Unknown"),
		websiteName, websiteURL, websiteURL,
	)

	textBody = fmt.Sprintf(`New Contact Form Submission

Form ID: %s

Name: %s
Email: %s
Phone: %s
Company: %s
Subject: %s

Message:
%s

---
Submitted at: %s
IP Address: %s

%s | %s
`,
		formID,
		orDefault(sub.Name, "N/A"),
		orDefault(sub.Email, "N/A"),
		orDefault(sub.Phone, "Not provided"),
		orDefault(sub.Company, "Not provided"),
		orDefault(sub.Subject, "N/A"),
		orDefault(sub.Message, "No message provided"),
		orDefault(sub.Metadata.SubmittedAt, "Unknown"),
		orDefault(sub.Metadata.IPAddress, "Unknown"),
		websiteName, websiteURL,
	)

	return htmlBody, textBody
}

// ConfirmationBodies builds the acknowledgment email sent back to the
// submitter, echoing the subject and a short excerpt of the message.
func ConfirmationBodies(sub *models.Submission, websiteName, websiteURL string) (htmlBody, textBody string) {
	userName := orDefault(sub.Name, "there")
	subject := orDefault(sub.Subject, "N/A")
	excerpt := MessageExcerpt(orDefault(sub.Message, "N/A"), 100)

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #007bff; color: white; padding: 30px; text-align: center; border-radius: 5px 5px 0 0; }
    .content { background: #fff; padding: 30px; border: 1px solid #dee2e6; border-radius: 0 0 5px 5px; }
    .footer { margin-top: 30px; text-align: center; font-size: 12px; color: #6c757d; }
    a { color: #007bff; text-decoration: none; }
</style>
</head>
<body>
<div class="container">
    <div class="header"><h1>Thank You for Contacting Us!</h1></div>
    <div class="content">
        <p>Hi %s,</p>
        <p>We've received your message and appreciate you taking the time to contact us.</p>
        <p>Our team will review your inquiry and get back to you as soon as possible, typically within 1-2 business days.</p>
        <p><strong>Your submission details:</strong></p>
        <ul>
            <li>Subject: %s</li>
            <li>Message: %s</li>
        </ul>
        <p>If you have any urgent questions, please don't hesitate to contact us directly.</p>
        <p>Best regards,<br>The %s Team</p>
    </div>
    <div class="footer">
        <p>&copy; %s | <a href="%s">%s</a></p>
        <p>This is an automated message, please do not reply directly to this email.</p>
    </div>
</div>
</body>
</html>`,
		userName, subject, excerpt,
		websiteName, websiteName, websiteURL, websiteURL,
	)

	textBody = fmt.Sprintf(`Hi %s,

Thank you for contacting %s!

We've received your message and appreciate you taking the time to contact us.

Our team will review your inquiry and get back to you as soon as possible, typically within 1-2 business days.

Your submission details:
- Subject: %s
- Message: %s

If you have any urgent questions, please don't hesitate to contact us directly.

Best regards,
The %s Team

---
%s | %s
This is an automated message, please do not reply directly to this email.
`,
		userName, websiteName, subject, excerpt,
		websiteName, websiteName, websiteURL,
	)

	return htmlBody, textBody
}
