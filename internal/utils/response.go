package utils

import (
	"net/http"

	"github.com/formgate/formgate/internal/api/dto/common"
	"github.com/formgate/formgate/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleServerError logs the fault and answers with the generic
// SERVER_ERROR envelope. Details never reach the client.
func HandleServerError(c *gin.Context, err error, message string) {
	logging.GetLogger().LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetClientIP(c),
		http.StatusInternalServerError,
		message,
		err,
	)
	c.JSON(http.StatusInternalServerError, common.NewServerErrorResponse(message))
}
