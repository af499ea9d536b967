package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/edustack/exam-service/internal/repositories"
	"github.com/edustack/exam-service/internal/validator"
)

type textGenService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

// NewTextGenService creates the text transformation service. Generation
// itself is an opaque upstream concern; this service only shapes prompts
// and enforces the response contract.
func NewTextGenService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) TextGenService {
	return &textGenService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *textGenService) FormatAnnouncement(ctx context.Context, req *AnnouncementRequest) (*AnnouncementResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// The tone rides along inside the prompt in square brackets
	prompt := req.Text
	if tone := strings.TrimSpace(req.Tone); tone != "" {
		prompt = fmt.Sprintf("%s [%s]", req.Text, tone)
	}

	output, err := s.repo.TextGen().FormatAnnouncement(ctx, prompt)
	if err != nil {
		return nil, mapUpstreamError(err, ErrUpstreamRejected)
	}

	return &AnnouncementResponse{Output: output}, nil
}

func (s *textGenService) GenerateLessonPlan(ctx context.Context, req *LessonPlanRequest, file *UploadedFile) (*LessonPlanResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	prompt := &repositories.LessonPlanPrompt{
		Topic:         req.Topic,
		Hours:         req.Hours,
		SpecificFocus: req.SpecificFocus,
	}
	if file != nil {
		prompt.FileName = file.Name
		prompt.File = file.Data
	}

	out, err := s.repo.TextGen().GenerateLessonPlan(ctx, prompt)
	if err != nil {
		return nil, mapUpstreamError(err, ErrUpstreamRejected)
	}

	s.logger.Debug("Lesson plan generated", "id", out.ID, "topic", req.Topic)
	return &LessonPlanResponse{ID: out.ID, Output: out.Output}, nil
}
