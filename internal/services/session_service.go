package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edustack/exam-service/internal/events"
	"github.com/edustack/exam-service/internal/models"
	"github.com/edustack/exam-service/internal/repositories"
	"github.com/edustack/exam-service/internal/validator"
)

type sessionService struct {
	repo        repositories.Repository
	examService ExamService
	publisher   events.EventPublisher
	logger      *slog.Logger
	validator   *validator.Validator

	// Shared with the submission service: answer writes, integrity events
	// and submission delivery for one session serialize on the same mutex
	locks *SessionLocks
}

// NewSessionService creates the session lifecycle service
func NewSessionService(repo repositories.Repository, examService ExamService, publisher events.EventPublisher, locks *SessionLocks, logger *slog.Logger, v *validator.Validator) SessionService {
	return &sessionService{
		repo:        repo,
		examService: examService,
		publisher:   publisher,
		locks:       locks,
		logger:      logger,
		validator:   v,
	}
}

func (s *sessionService) Start(ctx context.Context, req *StartSessionRequest) (*SessionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	identity := models.StudentIdentity{
		Name: strings.TrimSpace(req.StudentName),
		Roll: strings.TrimSpace(req.StudentRoll),
	}
	if errs := s.validator.ValidateIdentity(identity); len(errs) > 0 {
		return nil, errs
	}

	// No question material is released until the identity gate passes
	view, err := s.examService.GetExamView(ctx, req.ExamID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &models.Session{
		ID:            uuid.New().String(),
		ExamID:        req.ExamID,
		Status:        models.SessionInProgress,
		Student:       identity,
		QuestionCount: view.QuestionCount(),
		Answers:       make(map[int]string),
		StartedAt:     &now,
	}

	if err := s.repo.Session().Create(ctx, session); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeSessionStarted, events.SessionStartedPayload{
		SessionID:   session.ID,
		ExamID:      session.ExamID,
		StudentName: identity.Name,
		StudentRoll: identity.Roll,
		StartedAt:   now,
	})

	s.logger.Info("Session started",
		"session_id", session.ID,
		"exam_id", session.ExamID,
		"questions", session.QuestionCount)

	return &SessionResponse{Session: session, Exam: view}, nil
}

func (s *sessionService) GetByID(ctx context.Context, sessionID string) (*SessionResponse, error) {
	session, err := s.repo.Session().GetByID(ctx, sessionID)
	if err != nil {
		return nil, mapUpstreamError(err, ErrSessionNotFound)
	}
	return &SessionResponse{Session: session}, nil
}

func (s *sessionService) RecordAnswer(ctx context.Context, sessionID string, req *AnswerRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	unlock := s.locks.Acquire(sessionID)
	defer unlock()

	session, err := s.repo.Session().GetByID(ctx, sessionID)
	if err != nil {
		return mapUpstreamError(err, ErrSessionNotFound)
	}

	if err := requireActive(session); err != nil {
		return err
	}

	index := *req.QuestionIndex
	if index < 0 || index >= session.QuestionCount {
		return ErrAnswerIndexOutOfRange
	}

	session.Answers[index] = req.Answer
	return s.repo.Session().Update(ctx, session)
}

func (s *sessionService) RecordIntegrityEvent(ctx context.Context, sessionID string, req *IntegrityEventRequest) (*models.IntegrityWarning, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	unlock := s.locks.Acquire(sessionID)
	defer unlock()

	session, err := s.repo.Session().GetByID(ctx, sessionID)
	if err != nil {
		return nil, mapUpstreamError(err, ErrSessionNotFound)
	}

	// The monitor only listens while the session is in progress
	if err := requireActive(session); err != nil {
		return nil, err
	}

	eventType := models.IntegrityEventType(req.Type)
	warning := models.IntegrityWarning{
		Type:       eventType,
		Message:    integrityMessage(eventType),
		OccurredAt: time.Now(),
	}

	session.Warnings = append(session.Warnings, warning)
	if err := s.repo.Session().Update(ctx, session); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeIntegrityWarning, events.IntegrityWarningPayload{
		SessionID:    session.ID,
		ExamID:       session.ExamID,
		WarningType:  string(warning.Type),
		Message:      warning.Message,
		WarningCount: session.WarningCount(),
		OccurredAt:   warning.OccurredAt,
	})

	return &warning, nil
}

func (s *sessionService) Evict(ctx context.Context, sessionID string) error {
	if err := s.repo.Session().Delete(ctx, sessionID); err != nil {
		return mapUpstreamError(err, ErrSessionNotFound)
	}
	s.locks.Forget(sessionID)
	return nil
}

// ===== HELPERS =====

func (s *sessionService) publishEvent(ctx context.Context, eventType string, payload interface{}) {
	event := events.NewEvent(eventType, payload)
	if err := s.publisher.Publish(ctx, events.TopicSessionEvents, event); err != nil {
		s.logger.Error("Failed to publish session event", "error", err, "type", eventType)
	}
}

func requireActive(session *models.Session) error {
	switch session.Status {
	case models.SessionInProgress:
		return nil
	case models.SessionSubmitted:
		return ErrSessionAlreadySubmitted
	default:
		return ErrSessionNotActive
	}
}

func integrityMessage(t models.IntegrityEventType) string {
	switch t {
	case models.EventVisibilityHidden:
		return "Tab switch or window minimize detected"
	case models.EventWindowResize:
		return "Window resize detected"
	default:
		return "Unrecognized integrity event"
	}
}
