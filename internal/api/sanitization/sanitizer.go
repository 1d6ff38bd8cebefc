package sanitization

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/formgate/formgate/internal/api/dto/v1/contact"
)

var (
	scriptRegex = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	tagRegex    = regexp.MustCompile(`<[^>]*>`)
	jsURIRegex  = regexp.MustCompile(`(?i)javascript:`)
	dataRegex   = regexp.MustCompile(`(?i)data:`)

	// Basic protection only; the store is not SQL, this keeps stored text
	// safe to re-export into downstream tooling.
	sqlKeywordRegex = regexp.MustCompile(`(?i)\b(DROP|DELETE|INSERT|UPDATE|EXEC|EXECUTE)\b`)
)

// Per-field maximum lengths. Email follows RFC 5321.
var fieldLimits = map[string]int{
	"name":    100,
	"email":   254,
	"phone":   20,
	"company": 100,
	"subject": 200,
	"message": 1000,
}

// SanitizeInput strips markup, script content, dangerous URI schemes and
// SQL keywords from text, then trims and truncates it to maxLength.
func SanitizeInput(text string, maxLength int) string {
	if text == "" {
		return ""
	}

	// Script blocks first so their contents go with them, then leftover tags.
	text = scriptRegex.ReplaceAllString(text, "")
	text = tagRegex.ReplaceAllString(text, "")
	text = jsURIRegex.ReplaceAllString(text, "")
	text = dataRegex.ReplaceAllString(text, "")
	text = sqlKeywordRegex.ReplaceAllString(text, "")

	// Truncate by character count on rune boundaries so multibyte input
	// never persists as broken UTF-8.
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > maxLength {
		text = string([]rune(text)[:maxLength])
	}

	return text
}

// SanitizeForm applies the per-field limits to a submission. Email content
// is exempt from stripping (trim + truncate only) so valid addresses are
// never corrupted. The honeypot field passes through untouched; it is
// inspected separately.
func SanitizeForm(req *contact.SubmissionRequest) *contact.SubmissionRequest {
	clean := &contact.SubmissionRequest{Honeypot: req.Honeypot}

	clean.Name = SanitizeInput(req.Name, fieldLimits["name"])
	clean.Phone = SanitizeInput(req.Phone, fieldLimits["phone"])
	clean.Company = SanitizeInput(req.Company, fieldLimits["company"])
	clean.Subject = SanitizeInput(req.Subject, fieldLimits["subject"])
	clean.Message = SanitizeInput(req.Message, fieldLimits["message"])

	email := strings.TrimSpace(req.Email)
	if utf8.RuneCountInString(email) > fieldLimits["email"] {
		email = string([]rune(email)[:fieldLimits["email"]])
	}
	clean.Email = email

	return clean
}
