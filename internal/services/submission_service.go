package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/edustack/exam-service/internal/cache"
	"github.com/edustack/exam-service/internal/events"
	"github.com/edustack/exam-service/internal/models"
	"github.com/edustack/exam-service/internal/repositories"
)

type submissionService struct {
	repo        repositories.Repository
	examService ExamService
	publisher   events.EventPublisher
	cache       *cache.CacheManager
	logger      *slog.Logger

	// Shared with the session service so a concurrently recorded answer
	// either lands before the payload is built or is rejected after submit
	locks *SessionLocks

	// inFlight guards against double delivery when a submit is retried
	// while the previous attempt is still running
	inFlight sync.Map
}

// NewSubmissionService creates the submission assembly and delivery service
func NewSubmissionService(repo repositories.Repository, examService ExamService, publisher events.EventPublisher, locks *SessionLocks, cacheManager *cache.CacheManager, logger *slog.Logger) SubmissionService {
	return &submissionService{
		repo:        repo,
		examService: examService,
		publisher:   publisher,
		locks:       locks,
		cache:       cacheManager,
		logger:      logger,
	}
}

// BuildSubmission assembles the grading payload from the exam view and the
// captured answers. Every question yields exactly one item; a missing
// answer becomes an empty string, never an omitted item.
func (s *submissionService) BuildSubmission(view *models.ExamView, answers map[int]string, student models.StudentIdentity) *models.Submission {
	items := make([]models.SubmissionItem, 0, len(view.Questions))

	for _, q := range view.Questions {
		answer := answers[q.Index]

		var score models.QuestionScore
		if q.Category == models.CategoryMCQ {
			score = models.GradedScore(scoreMCQ(answer, q.CorrectAnswer), q.Marks)
		} else {
			score = models.PendingScore(q.Marks)
		}

		items = append(items, models.NewSubmissionItem(q.Index, q.Question, q.Kind, answer, q.CorrectAnswer, score))
	}

	return &models.Submission{
		ExamID:      view.ExamID,
		StudentID:   student.Roll,
		StudentName: student.Name,
		TotalMarks:  view.TotalMarks,
		Items:       items,
	}
}

func (s *submissionService) Submit(ctx context.Context, sessionID string) (*SessionResponse, error) {
	if _, loaded := s.inFlight.LoadOrStore(sessionID, struct{}{}); loaded {
		return nil, ErrSubmissionInFlight
	}
	defer s.inFlight.Delete(sessionID)

	// Hold the session lock across read, delivery and the final status
	// write. An answer arriving mid-delivery waits here and is then
	// rejected as already submitted instead of being overwritten.
	unlock := s.locks.Acquire(sessionID)
	defer unlock()

	session, err := s.repo.Session().GetByID(ctx, sessionID)
	if err != nil {
		return nil, mapUpstreamError(err, ErrSessionNotFound)
	}
	if err := requireActive(session); err != nil {
		return nil, err
	}

	view, err := s.examService.GetExamView(ctx, session.ExamID)
	if err != nil {
		return nil, err
	}

	submission := s.BuildSubmission(view, session.Answers, session.Student)

	// Delivery failure leaves the session in progress with every answer
	// intact so the student can retry
	if err := s.repo.Submission().Deliver(ctx, submission); err != nil {
		s.logger.Warn("Submission delivery failed",
			"session_id", session.ID,
			"exam_id", session.ExamID,
			"error", err)
		return nil, mapUpstreamError(err, ErrExamNotFound)
	}

	now := time.Now()
	session.Status = models.SessionSubmitted
	session.SubmittedAt = &now
	if err := s.repo.Session().Update(ctx, session); err != nil {
		return nil, err
	}

	s.publishSubmitted(ctx, session, view)

	// The grading service now holds a new submission, cached cohort
	// aggregates for this exam are stale
	cache.InvalidateResultCache(ctx, s.cache, session.ExamID)

	s.logger.Info("Session submitted",
		"session_id", session.ID,
		"exam_id", session.ExamID,
		"answered", len(session.Answers),
		"questions", session.QuestionCount)

	return &SessionResponse{Session: session}, nil
}

func (s *submissionService) publishSubmitted(ctx context.Context, session *models.Session, view *models.ExamView) {
	event := events.NewEvent(events.TypeSessionSubmitted, events.SessionSubmittedPayload{
		SessionID:     session.ID,
		ExamID:        session.ExamID,
		StudentRoll:   session.Student.Roll,
		AnsweredCount: len(session.Answers),
		QuestionCount: view.QuestionCount(),
		WarningCount:  session.WarningCount(),
		SubmittedAt:   *session.SubmittedAt,
	})
	if err := s.publisher.Publish(ctx, events.TopicSessionEvents, event); err != nil {
		s.logger.Error("Failed to publish submission event", "error", err, "session_id", session.ID)
	}
}

// scoreMCQ grades an MCQ answer by exact byte match. Case and whitespace
// differences score zero; there is no partial credit.
func scoreMCQ(answer, correctAnswer string) int {
	if answer != "" && answer == correctAnswer {
		return 1
	}
	return 0
}
