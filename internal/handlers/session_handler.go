package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edustack/exam-service/internal/services"
	"github.com/edustack/exam-service/internal/utils"
)

type SessionHandler struct {
	BaseHandler
	sessionService    services.SessionService
	submissionService services.SubmissionService
}

func NewSessionHandler(sessionService services.SessionService, submissionService services.SubmissionService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler:       NewBaseHandler(logger),
		sessionService:    sessionService,
		submissionService: submissionService,
	}
}

// StartSession starts a new exam session
// @Summary Start exam session
// @Description Validates the student identity and opens an in-progress session for the exam
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body services.StartSessionRequest true "Session start data"
// @Success 201 {object} services.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	h.LogRequest(c, "Starting exam session")

	var req services.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	session, err := h.sessionService.Start(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetSession retrieves a session by ID
// @Summary Get session
// @Description Retrieves the current state of an exam session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Getting session", "session_id", id)

	session, err := h.sessionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// RecordAnswer stores or replaces an answer
// @Summary Record answer
// @Description Stores or replaces the answer for one question in an active session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param answer body services.AnswerRequest true "Answer data"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/answers [put]
func (h *SessionHandler) RecordAnswer(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.sessionService.RecordAnswer(c.Request.Context(), id, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Answer recorded successfully",
	})
}

// RecordIntegrityEvent records a proctoring signal
// @Summary Record integrity event
// @Description Appends an advisory integrity warning to an active session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param event body services.IntegrityEventRequest true "Event data"
// @Success 200 {object} SuccessResponse{data=models.IntegrityWarning}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/events [post]
func (h *SessionHandler) RecordIntegrityEvent(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.IntegrityEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	warning, err := h.sessionService.RecordIntegrityEvent(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Integrity event recorded",
		Data:    warning,
	})
}

// SubmitSession submits the session for grading
// @Summary Submit exam session
// @Description Assembles the submission and delivers it to the grading webhook
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) SubmitSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Submitting session", "session_id", id)

	session, err := h.submissionService.Submit(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// EvictSession discards a session
// @Summary Evict session
// @Description Discards a session and all of its captured answers
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) EvictSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Evicting session", "session_id", id)

	if err := h.sessionService.Evict(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Session evicted",
	})
}
