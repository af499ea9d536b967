package services

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/edustack/exam-service/internal/models"
	"github.com/edustack/exam-service/internal/repositories"
	"github.com/edustack/exam-service/internal/repositories/memory"
)

// ===== TEST DOUBLES =====

type stubExamRepository struct {
	record      *models.ExamRecord
	pdf         []byte
	contentType string
	err         error
}

func (s *stubExamRepository) FetchRecord(ctx context.Context, examID string) (*models.ExamRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func (s *stubExamRepository) FetchPDF(ctx context.Context, examID string) ([]byte, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.pdf, s.contentType, nil
}

type stubResultRepository struct {
	byStudent map[string]*models.StudentResult
	list      []*models.StudentResult
	err       error
}

func (s *stubResultRepository) GetByStudent(ctx context.Context, examID, studentID string) (*models.StudentResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	result, ok := s.byStudent[studentID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return result, nil
}

func (s *stubResultRepository) ListByExam(ctx context.Context, examID string) ([]*models.StudentResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

type stubSubmissionRepository struct {
	mu        sync.Mutex
	delivered []*models.Submission
	onDeliver func(*models.Submission)
	err       error
}

func (s *stubSubmissionRepository) Deliver(ctx context.Context, submission *models.Submission) error {
	if s.onDeliver != nil {
		s.onDeliver(submission)
	}
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered = append(s.delivered, submission)
	return nil
}

type stubTextGenRepository struct {
	announcement string
	plan         *repositories.LessonPlanOutput
	lastPrompt   string
	lastPlan     *repositories.LessonPlanPrompt
	err          error
}

func (s *stubTextGenRepository) FormatAnnouncement(ctx context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.announcement, nil
}

func (s *stubTextGenRepository) GenerateLessonPlan(ctx context.Context, prompt *repositories.LessonPlanPrompt) (*repositories.LessonPlanOutput, error) {
	s.lastPlan = prompt
	if s.err != nil {
		return nil, s.err
	}
	return s.plan, nil
}

// stubRepository wires the test doubles into the repository aggregate.
// Sessions use the real in-memory implementation.
type stubRepository struct {
	exam       *stubExamRepository
	result     *stubResultRepository
	submission *stubSubmissionRepository
	textGen    *stubTextGenRepository
	session    repositories.SessionRepository
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		exam:       &stubExamRepository{},
		result:     &stubResultRepository{byStudent: make(map[string]*models.StudentResult)},
		submission: &stubSubmissionRepository{},
		textGen:    &stubTextGenRepository{},
		session:    memory.NewSessionRepository(),
	}
}

func (r *stubRepository) Exam() repositories.ExamRepository             { return r.exam }
func (r *stubRepository) Result() repositories.ResultRepository        { return r.result }
func (r *stubRepository) Submission() repositories.SubmissionRepository {
	return r.submission
}
func (r *stubRepository) TextGen() repositories.TextGenRepository   { return r.textGen }
func (r *stubRepository) Session() repositories.SessionRepository   { return r.session }
func (r *stubRepository) Ping(ctx context.Context) error            { return nil }
func (r *stubRepository) Close() error                              { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func intPtr(v int) *int {
	return &v
}

// sampleExamRecord covers all three question buckets
func sampleExamRecord() *models.ExamRecord {
	return &models.ExamRecord{
		ExamID: "42",
		MCQ: []models.RawQuestion{
			{Question: "What is 2 + 2?", Options: []string{"3", "4", "5"}, CorrectAnswer: "4"},
			{Question: "Capital of France?", Options: []string{"Paris", "Lyon"}, CorrectAnswer: "Paris"},
		},
		OneMark: []models.RawQuestion{
			{Question: "Define osmosis."},
		},
		ThreeMark: []models.RawQuestion{
			{Question: "Explain photosynthesis."},
		},
	}
}
