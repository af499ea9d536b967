package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edustack/exam-service/internal/services"
	"github.com/edustack/exam-service/internal/utils"
)

// ErrorResponse is the uniform error body for all endpoints
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse wraps non-entity success payloads
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler carries the pieces every handler shares
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a base handler
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs the start of request handling with the request-scoped
// logger, which already carries the request id
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context()).Info(msg, append([]any{"path", c.Request.URL.Path}, args...)...)
}

// LogError logs an unexpected error with request context
func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	requestID, _ := c.Get("request_id")
	h.logger.Error(msg, "error", err, "request_id", requestID, "path", c.Request.URL.Path)
}

// ParseStringIDParam returns a required path parameter, writing the error
// response when it is missing
func ParseStringIDParam(c *gin.Context, param string) string {
	value := c.Param(param)
	if value == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing " + param,
		})
	}
	return value
}

// handleServiceError maps service errors to HTTP responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	// Handle custom error types first
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrExamNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Exam not found",
		})
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Session not found",
		})
	case errors.Is(err, services.ErrResultNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Result not found",
		})
	case errors.Is(err, services.ErrSessionAlreadySubmitted):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Session already submitted",
		})
	case errors.Is(err, services.ErrSessionNotActive):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Session is not active",
		})
	case errors.Is(err, services.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Submission already in progress",
		})
	case errors.Is(err, services.ErrAnswerIndexOutOfRange):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Question index out of range",
		})
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Message: "Upstream service unavailable",
		})
	case errors.Is(err, services.ErrUpstreamRejected):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Message: "Upstream service returned an unusable response",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
