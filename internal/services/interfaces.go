package services

import (
	"context"

	"github.com/edustack/exam-service/internal/models"
	"github.com/edustack/exam-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type StartSessionRequest = validator.SessionStartRequest
type AnswerRequest = validator.AnswerRequest
type IntegrityEventRequest = validator.IntegrityEventRequest
type AnnouncementRequest = validator.AnnouncementRequest
type LessonPlanRequest = validator.LessonPlanRequest

type SessionResponse struct {
	*models.Session
	Exam *models.ExamView `json:"exam,omitempty"`
}

type StudentResultResponse struct {
	*models.StudentResult
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade"`
}

type CohortResponse struct {
	ExamID   string              `json:"exam_id"`
	Stats    models.CohortStats  `json:"stats"`
	Students []models.CohortEntry `json:"students"`
}

type AnnouncementResponse struct {
	Output string `json:"output"`
}

// UploadedFile is reference material attached to a lesson plan request
type UploadedFile struct {
	Name string
	Data []byte
}

type LessonPlanResponse struct {
	ID     string `json:"id"`
	Output string `json:"output"`
}

// ===== SERVICE INTERFACES =====

// ExamService normalizes raw exam material into the immutable exam view
type ExamService interface {
	// GetExamView fetches the exam record and returns its normalized view.
	// Views are served from cache when available and recomputed per fetch
	// otherwise.
	GetExamView(ctx context.Context, examID string) (*models.ExamView, error)

	// RefreshExamView invalidates the cached view and fetches it again
	RefreshExamView(ctx context.Context, examID string) (*models.ExamView, error)

	// GetExamPDF proxies the printable exam sheet from upstream
	GetExamPDF(ctx context.Context, examID string) ([]byte, string, error)
}

// SessionService runs the exam session state machine
type SessionService interface {
	// Start validates the student identity, freezes the exam view's
	// question count into a new session and moves it to in progress
	Start(ctx context.Context, req *StartSessionRequest) (*SessionResponse, error)

	GetByID(ctx context.Context, sessionID string) (*SessionResponse, error)

	// RecordAnswer stores or replaces one answer while the session is
	// in progress
	RecordAnswer(ctx context.Context, sessionID string, req *AnswerRequest) error

	// RecordIntegrityEvent appends an advisory proctoring warning.
	// Rejected outside the in-progress state; never affects grading or
	// submission eligibility.
	RecordIntegrityEvent(ctx context.Context, sessionID string, req *IntegrityEventRequest) (*models.IntegrityWarning, error)

	// Evict discards a session and all of its captured answers
	Evict(ctx context.Context, sessionID string) error
}

// SubmissionService assembles submissions and delivers them for grading
type SubmissionService interface {
	// BuildSubmission produces one item per question of the view. MCQ
	// items are auto-graded by exact match; theory items carry their
	// ungraded maximum; unanswered questions carry an empty answer.
	BuildSubmission(view *models.ExamView, answers map[int]string, student models.StudentIdentity) *models.Submission

	// Submit delivers the session's submission to the grading webhook.
	// Only a successful delivery closes the session; failures leave it
	// in progress and retryable. Concurrent submits for the same session
	// are rejected.
	Submit(ctx context.Context, sessionID string) (*SessionResponse, error)
}

// ResultService reconciles graded outcomes and cohort views
type ResultService interface {
	GetStudentResult(ctx context.Context, examID, studentID string) (*StudentResultResponse, error)

	// GetCohort returns graded entries for an exam, optionally filtered
	// by a case-insensitive substring match on name or roll number
	GetCohort(ctx context.Context, examID, query string) (*CohortResponse, error)

	GetCohortStats(ctx context.Context, examID string) (*models.CohortStats, error)
}

// TextGenService wraps the opaque text transformation webhooks
type TextGenService interface {
	FormatAnnouncement(ctx context.Context, req *AnnouncementRequest) (*AnnouncementResponse, error)
	GenerateLessonPlan(ctx context.Context, req *LessonPlanRequest, file *UploadedFile) (*LessonPlanResponse, error)
}

// ExportService renders cohort results for download
type ExportService interface {
	// ExportCohortResults renders an exam's cohort as an xlsx workbook
	ExportCohortResults(ctx context.Context, examID string) ([]byte, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Exam() ExamService
	Session() SessionService
	Submission() SubmissionService
	Result() ResultService
	TextGen() TextGenService
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
