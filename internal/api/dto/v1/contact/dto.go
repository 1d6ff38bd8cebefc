package contact

// SubmissionRequest represents a contact form submission as sent by the
// frontend. The body is parsed leniently: a malformed or missing JSON body
// becomes the zero value and is answered with per-field validation errors,
// never a bind failure.
type SubmissionRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`

	// Honeypot is a hidden field legitimate users never fill. Any non-empty
	// value marks the submission as automated.
	Honeypot string `json:"honeypot"`
}
