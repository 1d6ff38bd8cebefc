package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/formgate/formgate/internal/api/dto/common"
	"github.com/formgate/formgate/internal/api/dto/v1/contact"
	"github.com/formgate/formgate/internal/logging"
	"github.com/formgate/formgate/internal/service"
	"github.com/formgate/formgate/internal/utils"

	"github.com/gin-gonic/gin"
)

// ContactHandler accepts contact-form submissions and maps pipeline
// outcomes onto the response contract.
type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /api/v1/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	req := parseRequestBody(c)

	meta := service.RequestMeta{
		IPAddress: utils.GetClientIP(c),
		UserAgent: c.Request.UserAgent(),
		SourceURL: c.Request.Referer(),
	}

	result := h.contactService.Submit(c.Request.Context(), req, meta)

	switch result.Kind {
	case service.RateLimited:
		message := result.Message
		if message == "" {
			message = "Too many submissions. Please try again later."
		}
		c.JSON(http.StatusTooManyRequests, common.NewRateLimitResponse(message, result.RetryAfter))

	case service.BotDetected:
		// Indistinguishable from a real success so automated submitters
		// learn nothing.
		c.JSON(http.StatusOK, common.NewMessageResponse("Your message has been sent successfully."))

	case service.Invalid:
		c.JSON(http.StatusBadRequest, common.NewValidationResponse(
			"Please check your form and try again.",
			map[string]string(result.Errors),
		))

	case service.StoreFailed:
		c.JSON(http.StatusInternalServerError, common.NewServerErrorResponse(
			"Failed to process your submission. Please try again."))

	case service.Accepted:
		c.JSON(http.StatusOK, common.NewSuccessResponse(
			"Your message has been sent successfully. We'll get back to you soon.",
			result.FormID,
		))

	default:
		utils.HandleServerError(c, nil, "An unexpected error occurred. Please try again later.")
	}
}

// parseRequestBody decodes the JSON body leniently: read or parse failures
// yield an empty submission and surface later as field validation errors,
// never as a bind failure.
func parseRequestBody(c *gin.Context) *contact.SubmissionRequest {
	req := &contact.SubmissionRequest{}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logging.GetLogger().Error("Failed to read request body: %v", err)
		return req
	}
	if len(body) == 0 {
		return req
	}

	if err := json.Unmarshal(body, req); err != nil {
		logging.GetLogger().Error("Failed to parse request body: %v", err)
		return &contact.SubmissionRequest{}
	}
	return req
}
