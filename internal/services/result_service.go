package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/edustack/exam-service/internal/cache"
	"github.com/edustack/exam-service/internal/models"
	"github.com/edustack/exam-service/internal/repositories"
)

type resultService struct {
	repo   repositories.Repository
	cache  *cache.CacheManager
	logger *slog.Logger
}

// NewResultService creates the result reconciliation service
func NewResultService(repo repositories.Repository, cacheManager *cache.CacheManager, logger *slog.Logger) ResultService {
	return &resultService{
		repo:   repo,
		cache:  cacheManager,
		logger: logger,
	}
}

// GetStudentResult returns the grading service's verdicts for one student,
// annotated with percentage and grade. Verdicts are never recomputed here;
// the grading service is authoritative.
func (s *resultService) GetStudentResult(ctx context.Context, examID, studentID string) (*StudentResultResponse, error) {
	var result models.StudentResult

	cacheKey := fmt.Sprintf("exam:%s:student:%s", examID, studentID)
	err := s.cache.Result.CacheOrExecute(ctx, cacheKey, &result, cache.ResultCacheConfig.TTL, func() (interface{}, error) {
		return s.repo.Result().GetByStudent(ctx, examID, studentID)
	})
	if err != nil {
		return nil, mapUpstreamError(err, ErrResultNotFound)
	}

	percentage := roundFloat(result.Percentage(), 2)
	return &StudentResultResponse{
		StudentResult: &result,
		Percentage:    percentage,
		Grade:         CalculateGrade(percentage),
	}, nil
}

func (s *resultService) GetCohort(ctx context.Context, examID, query string) (*CohortResponse, error) {
	results, err := s.listResults(ctx, examID)
	if err != nil {
		return nil, err
	}

	filtered := filterResults(results, query)
	entries := make([]models.CohortEntry, 0, len(filtered))
	for _, r := range filtered {
		entries = append(entries, models.CohortEntry{
			StudentID:   r.StudentID,
			StudentName: r.StudentName,
			Score:       r.Score,
			TotalMarks:  r.TotalMarks,
			Grade:       CalculateGrade(r.Percentage()),
		})
	}

	return &CohortResponse{
		ExamID:   examID,
		Stats:    calculateCohortStats(results),
		Students: entries,
	}, nil
}

func (s *resultService) GetCohortStats(ctx context.Context, examID string) (*models.CohortStats, error) {
	var stats models.CohortStats

	cacheKey := fmt.Sprintf("exam:%s:cohort", examID)
	err := s.cache.Stats.CacheOrExecute(ctx, cacheKey, &stats, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		results, err := s.listResults(ctx, examID)
		if err != nil {
			return nil, err
		}
		return calculateCohortStats(results), nil
	})
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *resultService) listResults(ctx context.Context, examID string) ([]*models.StudentResult, error) {
	results, err := s.repo.Result().ListByExam(ctx, examID)
	if err != nil {
		return nil, mapUpstreamError(err, ErrResultNotFound)
	}
	return results, nil
}

// filterResults keeps results whose student name or roll number contains
// the query, case-insensitively. A blank query keeps everything.
func filterResults(results []*models.StudentResult, query string) []*models.StudentResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return results
	}

	filtered := make([]*models.StudentResult, 0, len(results))
	for _, r := range results {
		name := strings.ToLower(r.StudentName)
		roll := strings.ToLower(r.StudentID)
		if strings.Contains(name, query) || strings.Contains(roll, query) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
