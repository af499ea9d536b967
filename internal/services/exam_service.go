package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edustack/exam-service/internal/cache"
	"github.com/edustack/exam-service/internal/models"
	"github.com/edustack/exam-service/internal/repositories"
)

type examService struct {
	repo   repositories.Repository
	cache  *cache.CacheManager
	logger *slog.Logger
}

// NewExamService creates the exam normalization service
func NewExamService(repo repositories.Repository, cacheManager *cache.CacheManager, logger *slog.Logger) ExamService {
	return &examService{
		repo:   repo,
		cache:  cacheManager,
		logger: logger,
	}
}

func (s *examService) GetExamView(ctx context.Context, examID string) (*models.ExamView, error) {
	var view models.ExamView

	cacheKey := fmt.Sprintf("view:%s", examID)
	err := s.cache.Exam.CacheOrExecute(ctx, cacheKey, &view, cache.ExamCacheConfig.TTL, func() (interface{}, error) {
		record, err := s.repo.Exam().FetchRecord(ctx, examID)
		if err != nil {
			return nil, err
		}
		normalized := NormalizeExam(examID, record)
		s.logger.Debug("Exam view normalized",
			"exam_id", examID,
			"questions", normalized.QuestionCount(),
			"total_marks", normalized.TotalMarks)
		return normalized, nil
	})
	if err != nil {
		return nil, mapUpstreamError(err, ErrExamNotFound)
	}

	return &view, nil
}

// RefreshExamView drops the cached view and normalizes a fresh fetch
func (s *examService) RefreshExamView(ctx context.Context, examID string) (*models.ExamView, error) {
	cache.InvalidateExamCache(ctx, s.cache, examID)
	return s.GetExamView(ctx, examID)
}

func (s *examService) GetExamPDF(ctx context.Context, examID string) ([]byte, string, error) {
	body, contentType, err := s.repo.Exam().FetchPDF(ctx, examID)
	if err != nil {
		return nil, "", mapUpstreamError(err, ErrExamNotFound)
	}
	return body, contentType, nil
}
