package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/edustack/exam-service/internal/models"
	"github.com/edustack/exam-service/internal/repositories"
)

type resultRepository struct {
	client *client
}

// NewResultRepository builds the result service client
func NewResultRepository(baseURL string, httpClient *http.Client) repositories.ResultRepository {
	return &resultRepository{client: newClient(baseURL, httpClient)}
}

func (r *resultRepository) GetByStudent(ctx context.Context, examID, studentID string) (*models.StudentResult, error) {
	path := fmt.Sprintf("/api/v1/exams/%s/student/%s", url.PathEscape(examID), url.PathEscape(studentID))

	var result models.StudentResult
	if err := r.client.getJSON(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("fetch student result: %w", err)
	}
	return &result, nil
}

func (r *resultRepository) ListByExam(ctx context.Context, examID string) ([]*models.StudentResult, error) {
	path := fmt.Sprintf("/api/v1/exams/%s/results", url.PathEscape(examID))

	var results []*models.StudentResult
	if err := r.client.getJSON(ctx, path, &results); err != nil {
		return nil, fmt.Errorf("fetch exam results: %w", err)
	}
	return results, nil
}
