package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/formgate/formgate/internal/api/dto/v1/contact"
	"github.com/formgate/formgate/internal/logging"
)

var (
	emailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nonDigitRegex  = regexp.MustCompile(`\D`)
	phoneIntlRegex = regexp.MustCompile(`^\+?1?\d{10,14}$`)
	phoneUSRegex   = regexp.MustCompile(`^\(?([0-9]{3})\)?[-. ]?([0-9]{3})[-. ]?([0-9]{4})$`)
	phoneBareRegex = regexp.MustCompile(`^\d{10,15}$`)
)

// ErrorSet maps a field name to a human-readable validation message.
// An empty set means the submission is valid.
type ErrorSet map[string]string

// ValidateContactForm checks all form fields and returns per-field errors.
// Fields are checked in a fixed order so the first failing rule per field
// wins; it never rejects the whole body wholesale.
func ValidateContactForm(req *contact.SubmissionRequest) ErrorSet {
	errors := ErrorSet{}

	// Length limits count characters, not bytes, so non-ASCII input is
	// measured the way the user sees it.
	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		errors["name"] = "Name is required"
	case utf8.RuneCountInString(name) < 2:
		errors["name"] = "Name must be at least 2 characters"
	case utf8.RuneCountInString(name) > 100:
		errors["name"] = "Name must be less than 100 characters"
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	switch {
	case email == "":
		errors["email"] = "Email is required"
	case !IsValidEmail(email):
		errors["email"] = "Please enter a valid email address"
	}

	if phone := strings.TrimSpace(req.Phone); phone != "" && !IsValidPhone(phone) {
		errors["phone"] = "Please enter a valid phone number"
	}

	subject := strings.TrimSpace(req.Subject)
	switch {
	case subject == "":
		errors["subject"] = "Subject is required"
	case utf8.RuneCountInString(subject) < 3:
		errors["subject"] = "Subject must be at least 3 characters"
	case utf8.RuneCountInString(subject) > 200:
		errors["subject"] = "Subject must be less than 200 characters"
	}

	message := strings.TrimSpace(req.Message)
	switch {
	case message == "":
		errors["message"] = "Message is required"
	case utf8.RuneCountInString(message) < 10:
		errors["message"] = "Message must be at least 10 characters"
	case utf8.RuneCountInString(message) > 1000:
		errors["message"] = "Message must be less than 1000 characters"
	}

	if company := strings.TrimSpace(req.Company); utf8.RuneCountInString(company) > 100 {
		errors["company"] = "Company name must be less than 100 characters"
	}

	return errors
}

// IsValidEmail checks the address against a pragmatic local@domain.tld
// pattern (2+ letter TLD) rather than full RFC 5322.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone accepts US and international numbers. The digit-only form
// must be 10-15 digits and the raw input must match one of the common
// layouts.
func IsValidPhone(phone string) bool {
	digits := nonDigitRegex.ReplaceAllString(phone, "")
	if len(digits) < 10 || len(digits) > 15 {
		return false
	}

	return phoneIntlRegex.MatchString(phone) ||
		phoneUSRegex.MatchString(phone) ||
		phoneBareRegex.MatchString(phone)
}

// CheckHoneypot returns true when the submission looks legitimate, i.e. the
// hidden honeypot field is empty. A filled honeypot means a bot; a truncated
// sample of the value is logged for audit.
func CheckHoneypot(req *contact.SubmissionRequest) bool {
	if req.Honeypot == "" {
		return true
	}

	sample := req.Honeypot
	if utf8.RuneCountInString(sample) > 50 {
		sample = string([]rune(sample)[:50])
	}
	logging.GetLogger().Warn("Honeypot triggered with value: %s", sample)
	return false
}
