package repositories

import (
	"context"

	"github.com/edustack/exam-service/internal/models"
)

// ===== DOMAIN REPOSITORIES =====

// ExamRepository reads exam material from the question service
type ExamRepository interface {
	// FetchRecord returns the raw exam record for an exam. The question
	// service responds with an array whose first element is the record.
	FetchRecord(ctx context.Context, examID string) (*models.ExamRecord, error)

	// FetchPDF returns the printable exam sheet as delivered upstream,
	// along with its content type. The bytes are proxied unvalidated.
	FetchPDF(ctx context.Context, examID string) ([]byte, string, error)
}

// ResultRepository reads graded outcomes from the result service
type ResultRepository interface {
	GetByStudent(ctx context.Context, examID, studentID string) (*models.StudentResult, error)
	ListByExam(ctx context.Context, examID string) ([]*models.StudentResult, error)
}

// SubmissionRepository delivers assembled submissions to the grading webhook
type SubmissionRepository interface {
	Deliver(ctx context.Context, submission *models.Submission) error
}

// LessonPlanPrompt is the input to lesson plan generation. File is optional
// reference material forwarded verbatim.
type LessonPlanPrompt struct {
	Topic         string
	Hours         string
	SpecificFocus string
	FileName      string
	File          []byte
}

// LessonPlanOutput is the generated lesson plan and its upstream identifier
type LessonPlanOutput struct {
	ID     string `json:"id"`
	Output string `json:"output"`
}

// TextGenRepository calls the text transformation webhooks
type TextGenRepository interface {
	FormatAnnouncement(ctx context.Context, prompt string) (string, error)
	GenerateLessonPlan(ctx context.Context, prompt *LessonPlanPrompt) (*LessonPlanOutput, error)
}

// SessionRepository stores live exam sessions
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}
