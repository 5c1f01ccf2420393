package apiresponses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the error payload consumed by the frontend. The single
// "detail" field matches the wire format the existing clients expect.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// SuccessResponse is the payload returned for an accepted submission.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StatusResponse is the fixed health-check payload.
type StatusResponse struct {
	Status string `json:"status"`
}

// RespondValidationError sends a 400 Bad Request for malformed client input.
func RespondValidationError(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Detail: detail})
}

// RespondServerError sends a 500 Internal Server Error with a sanitized
// message, logging the underlying error with full details.
func RespondServerError(c *gin.Context, detail string, err error, log *zap.SugaredLogger) {
	if log != nil && err != nil {
		log.Errorw("Request failed", "error", err)
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: detail})
}

// RespondSuccess sends a 200 OK with the success payload.
func RespondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: message})
}

// RespondStatusOK sends the fixed health-check payload.
func RespondStatusOK(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "OK"})
}
