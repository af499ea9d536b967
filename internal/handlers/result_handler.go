package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edustack/exam-service/internal/services"
	"github.com/edustack/exam-service/internal/utils"
)

type ResultHandler struct {
	BaseHandler
	resultService services.ResultService
	exportService services.ExportService
}

func NewResultHandler(resultService services.ResultService, exportService services.ExportService, logger utils.Logger) *ResultHandler {
	return &ResultHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
		exportService: exportService,
	}
}

// GetStudentResult returns one student's graded result
// @Summary Get student result
// @Description Retrieves the graded result for one student, annotated with percentage and grade
// @Tags results
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Param student_id path string true "Student ID"
// @Success 200 {object} services.StudentResultResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /results/exam/{exam_id}/student/{student_id} [get]
func (h *ResultHandler) GetStudentResult(c *gin.Context) {
	examID := ParseStringIDParam(c, "exam_id")
	if examID == "" {
		return
	}
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}

	h.LogRequest(c, "Getting student result", "exam_id", examID, "student_id", studentID)

	result, err := h.resultService.GetStudentResult(c.Request.Context(), examID, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCohort lists graded cohort entries with optional search
// @Summary Get cohort results
// @Description Lists graded results for an exam, filtered by a case-insensitive name or roll substring
// @Tags results
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Param q query string false "Search query"
// @Success 200 {object} services.CohortResponse
// @Failure 502 {object} ErrorResponse
// @Router /results/exam/{exam_id} [get]
func (h *ResultHandler) GetCohort(c *gin.Context) {
	examID := ParseStringIDParam(c, "exam_id")
	if examID == "" {
		return
	}

	query := c.Query("q")
	h.LogRequest(c, "Getting cohort results", "exam_id", examID, "query", query)

	cohort, err := h.resultService.GetCohort(c.Request.Context(), examID, query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cohort)
}

// GetCohortStats returns cohort aggregates
// @Summary Get cohort statistics
// @Description Returns average score, highest score and pass percentage for an exam's cohort
// @Tags results
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Success 200 {object} models.CohortStats
// @Failure 502 {object} ErrorResponse
// @Router /results/exam/{exam_id}/stats [get]
func (h *ResultHandler) GetCohortStats(c *gin.Context) {
	examID := ParseStringIDParam(c, "exam_id")
	if examID == "" {
		return
	}

	h.LogRequest(c, "Getting cohort stats", "exam_id", examID)

	stats, err := h.resultService.GetCohortStats(c.Request.Context(), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportCohort downloads the cohort as an xlsx workbook
// @Summary Export cohort results
// @Description Renders the exam's cohort results as an xlsx workbook
// @Tags results
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param exam_id path string true "Exam ID"
// @Success 200 {file} binary
// @Failure 502 {object} ErrorResponse
// @Router /results/exam/{exam_id}/export [get]
func (h *ResultHandler) ExportCohort(c *gin.Context) {
	examID := ParseStringIDParam(c, "exam_id")
	if examID == "" {
		return
	}

	h.LogRequest(c, "Exporting cohort results", "exam_id", examID)

	workbook, err := h.exportService.ExportCohortResults(c.Request.Context(), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("exam-%s-results.xlsx", examID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
