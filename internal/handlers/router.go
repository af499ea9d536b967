package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edustack/exam-service/internal/services"
	"github.com/edustack/exam-service/internal/utils"
)

type HandlerManager struct {
	examHandler    *ExamHandler
	sessionHandler *SessionHandler
	resultHandler  *ResultHandler
	textGenHandler *TextGenHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		examHandler:    NewExamHandler(serviceManager.Exam(), logger),
		sessionHandler: NewSessionHandler(serviceManager.Session(), serviceManager.Submission(), logger),
		resultHandler:  NewResultHandler(serviceManager.Result(), serviceManager.Export(), logger),
		textGenHandler: NewTextGenHandler(serviceManager.TextGen(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "exam-service",
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Exam routes
		exams := v1.Group("/exams")
		{
			exams.GET("/:exam_id", hm.examHandler.GetExam)
			exams.GET("/:exam_id/pdf", hm.examHandler.GetExamPDF)
			exams.POST("/:exam_id/refresh", hm.examHandler.RefreshExam)
		}

		// Session routes
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.StartSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.PUT("/:id/answers", hm.sessionHandler.RecordAnswer)
			sessions.POST("/:id/events", hm.sessionHandler.RecordIntegrityEvent)
			sessions.POST("/:id/submit", hm.sessionHandler.SubmitSession)
			sessions.DELETE("/:id", hm.sessionHandler.EvictSession)
		}

		// Result routes
		results := v1.Group("/results")
		{
			results.GET("/exam/:exam_id", hm.resultHandler.GetCohort)
			results.GET("/exam/:exam_id/stats", hm.resultHandler.GetCohortStats)
			results.GET("/exam/:exam_id/export", hm.resultHandler.ExportCohort)
			results.GET("/exam/:exam_id/student/:student_id", hm.resultHandler.GetStudentResult)
		}

		// Text generation routes
		v1.POST("/announcements/format", hm.textGenHandler.FormatAnnouncement)
		v1.POST("/lessonplans/generate", hm.textGenHandler.GenerateLessonPlan)
	}
}
