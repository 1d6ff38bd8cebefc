package models

// Submission statuses. A record is written as StatusNew and only its status
// may change afterwards, out of band of the request pipeline.
const (
	StatusNew       = "new"
	StatusProcessed = "processed"
	StatusReplied   = "replied"
	StatusSpam      = "spam"
)

// FormTypeContact tags persisted records so other form types can share the
// same keyspace later.
const FormTypeContact = "contact"

// Metadata captures request context stamped onto a submission at intake.
type Metadata struct {
	SubmittedAt string `json:"submittedAt"`
	IPAddress   string `json:"ipAddress"`
	UserAgent   string `json:"userAgent"`
	SourceURL   string `json:"sourceUrl"`
}

// Submission is the persisted contact-form record. It is immutable once
// handed to the store except for Status/LastUpdated.
type Submission struct {
	FormID      string   `json:"formId"`
	Timestamp   string   `json:"timestamp"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Company     string   `json:"company"`
	Subject     string   `json:"subject"`
	Message     string   `json:"message"`
	Status      string   `json:"status"`
	FormType    string   `json:"formType"`
	LastUpdated string   `json:"lastUpdated,omitempty"`
	Metadata    Metadata `json:"metadata"`
}

// ValidStatus reports whether s is one of the known submission statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusProcessed, StatusReplied, StatusSpam:
		return true
	}
	return false
}
