package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edustack/exam-service/internal/services"
	"github.com/edustack/exam-service/internal/utils"
)

type TextGenHandler struct {
	BaseHandler
	textGenService services.TextGenService
}

func NewTextGenHandler(textGenService services.TextGenService, logger utils.Logger) *TextGenHandler {
	return &TextGenHandler{
		BaseHandler:    NewBaseHandler(logger),
		textGenService: textGenService,
	}
}

// FormatAnnouncement formats raw announcement text
// @Summary Format announcement
// @Description Sends raw announcement text (with optional tone) to the formatting webhook
// @Tags textgen
// @Accept json
// @Produce json
// @Param announcement body services.AnnouncementRequest true "Announcement data"
// @Success 200 {object} services.AnnouncementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /announcements/format [post]
func (h *TextGenHandler) FormatAnnouncement(c *gin.Context) {
	h.LogRequest(c, "Formatting announcement")

	var req services.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.textGenService.FormatAnnouncement(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateLessonPlan generates a lesson plan, with optional reference file
// @Summary Generate lesson plan
// @Description Sends lesson plan parameters to the generation webhook. Accepts JSON, or multipart form data when a reference file is attached.
// @Tags textgen
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param plan body services.LessonPlanRequest true "Lesson plan data"
// @Success 200 {object} services.LessonPlanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /lessonplans/generate [post]
func (h *TextGenHandler) GenerateLessonPlan(c *gin.Context) {
	h.LogRequest(c, "Generating lesson plan")

	var req services.LessonPlanRequest
	var file *services.UploadedFile

	if c.ContentType() == "multipart/form-data" {
		req = services.LessonPlanRequest{
			Topic:         c.PostForm("topic"),
			Hours:         c.PostForm("hours"),
			SpecificFocus: c.PostForm("specific_focus"),
		}

		fileHeader, err := c.FormFile("file")
		if err == nil {
			opened, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, ErrorResponse{
					Message: "Could not read attached file",
					Details: err.Error(),
				})
				return
			}
			defer opened.Close()

			data, err := io.ReadAll(opened)
			if err != nil {
				c.JSON(http.StatusBadRequest, ErrorResponse{
					Message: "Could not read attached file",
					Details: err.Error(),
				})
				return
			}
			file = &services.UploadedFile{Name: fileHeader.Filename, Data: data}
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid request payload",
				Details: err.Error(),
			})
			return
		}
	}

	resp, err := h.textGenService.GenerateLessonPlan(c.Request.Context(), &req, file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
