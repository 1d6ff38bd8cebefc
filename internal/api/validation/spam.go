package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/formgate/formgate/internal/api/dto/v1/contact"
	"github.com/formgate/formgate/internal/logging"
)

// Spam keywords looked for in subject+message.
var spamKeywords = []string{
	"bitcoin", "cryptocurrency", "forex", "casino", "viagra",
	"weight loss", "make money fast", "work from home", "lottery",
	"inheritance", "nigerian prince", "guarantee", "no risk",
	"click here", "buy now", "limited time", "act now",
}

// Disposable-mail providers matched as substrings of the email domain.
var suspiciousDomains = []string{
	"10minutemail", "tempmail", "guerrillamail", "mailinator",
	"throwaway", "yopmail", "trashmail", "fake-mail",
}

var urlRegex = regexp.MustCompile(`https?://[^\s]+`)

// hasRepeatedRun reports whether any single character repeats at least n
// times consecutively. Done by hand since RE2 has no backreferences.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= n {
			return true
		}
	}
	return false
}

// CheckSpamIndicators scores a submission against a set of spam heuristics
// and returns the matched reasons. It is not part of the request pipeline;
// operators run it over stored submissions to triage them.
func CheckSpamIndicators(req *contact.SubmissionRequest) (bool, []string) {
	var reasons []string

	message := strings.ToLower(req.Message)
	subject := strings.ToLower(req.Subject)
	combined := subject + " " + message

	for _, keyword := range spamKeywords {
		if strings.Contains(combined, keyword) {
			reasons = append(reasons, fmt.Sprintf("Contains spam keyword: %s", keyword))
		}
	}

	email := strings.ToLower(req.Email)
	if at := strings.LastIndex(email, "@"); at >= 0 {
		domain := email[at+1:]
		for _, suspicious := range suspiciousDomains {
			if strings.Contains(domain, suspicious) {
				reasons = append(reasons, fmt.Sprintf("Suspicious email domain: %s", suspicious))
			}
		}
	}

	if urls := urlRegex.FindAllString(message, -1); len(urls) > 2 {
		reasons = append(reasons, fmt.Sprintf("Too many URLs (%d)", len(urls)))
	}

	if req.Message != "" {
		upper := 0
		for _, r := range req.Message {
			if unicode.IsUpper(r) {
				upper++
			}
		}
		if float64(upper)/float64(len([]rune(req.Message))) > 0.5 {
			reasons = append(reasons, "Excessive capitalization")
		}
	}

	if hasRepeatedRun(req.Message, 10) {
		reasons = append(reasons, "Excessive character repetition")
	}

	isSpam := len(reasons) > 0
	if isSpam {
		logging.GetLogger().Warn("Spam indicators detected: %v", reasons)
	}

	return isSpam, reasons
}
