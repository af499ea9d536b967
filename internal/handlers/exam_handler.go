package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edustack/exam-service/internal/services"
	"github.com/edustack/exam-service/internal/utils"
)

type ExamHandler struct {
	BaseHandler
	examService services.ExamService
}

func NewExamHandler(examService services.ExamService, logger utils.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler: NewBaseHandler(logger),
		examService: examService,
	}
}

// GetExam returns the normalized exam view
// @Summary Get exam view
// @Description Retrieves the normalized question list, title and total marks for an exam
// @Tags exams
// @Accept json
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Success 200 {object} models.ExamView
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /exams/{exam_id} [get]
func (h *ExamHandler) GetExam(c *gin.Context) {
	examID := ParseStringIDParam(c, "exam_id")
	if examID == "" {
		return
	}

	h.LogRequest(c, "Getting exam view", "exam_id", examID)

	view, err := h.examService.GetExamView(c.Request.Context(), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// RefreshExam drops the cached view and re-fetches the exam
// @Summary Refresh exam view
// @Description Invalidates the cached view and rebuilds it from the question service
// @Tags exams
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Success 200 {object} models.ExamView
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /exams/{exam_id}/refresh [post]
func (h *ExamHandler) RefreshExam(c *gin.Context) {
	examID := ParseStringIDParam(c, "exam_id")
	if examID == "" {
		return
	}

	h.LogRequest(c, "Refreshing exam view", "exam_id", examID)

	view, err := h.examService.RefreshExamView(c.Request.Context(), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetExamPDF proxies the printable exam sheet
// @Summary Get exam PDF
// @Description Streams the printable exam sheet from the question service
// @Tags exams
// @Produce application/pdf
// @Param exam_id path string true "Exam ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /exams/{exam_id}/pdf [get]
func (h *ExamHandler) GetExamPDF(c *gin.Context) {
	examID := ParseStringIDParam(c, "exam_id")
	if examID == "" {
		return
	}

	h.LogRequest(c, "Getting exam PDF", "exam_id", examID)

	body, contentType, err := h.examService.GetExamPDF(c.Request.Context(), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, contentType, body)
}
