package common

// Define type for error codes to enforce consistency
type ErrorCode string

// Standard error codes. The set is closed: response construction switches
// over these and nothing else, so the frontend contract stays exhaustive.
const (
	ErrCodeRateLimit   ErrorCode = "RATE_LIMIT"
	ErrCodeValidation  ErrorCode = "VALIDATION"
	ErrCodeServerError ErrorCode = "SERVER_ERROR"
)

// APIResponse is the wire shape every endpoint answers with. The field set
// matches what the contact-form frontend expects; optional fields are
// omitted rather than sent as zero values.
type APIResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	ErrorCode  ErrorCode         `json:"errorCode,omitempty"`
	RetryAfter int               `json:"retryAfter,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	FormID     string            `json:"formId,omitempty"`
}

// NewSuccessResponse creates a success response carrying the stored form id.
func NewSuccessResponse(message, formID string) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		FormID:  formID,
	}
}

// NewMessageResponse creates a bare success response with just a message.
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
	}
}

// NewRateLimitResponse creates a RATE_LIMIT error response. retryAfter is
// expressed in minutes.
func NewRateLimitResponse(message string, retryAfter int) APIResponse {
	return APIResponse{
		Success:    false,
		Message:    message,
		ErrorCode:  ErrCodeRateLimit,
		RetryAfter: retryAfter,
	}
}

// NewValidationResponse creates a VALIDATION error response carrying the
// per-field error messages.
func NewValidationResponse(message string, errors map[string]string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		ErrorCode: ErrCodeValidation,
		Errors:    errors,
	}
}

// NewServerErrorResponse creates a SERVER_ERROR response.
func NewServerErrorResponse(message string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		ErrorCode: ErrCodeServerError,
	}
}
