package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/edustack/exam-service/internal/models"
	"github.com/edustack/exam-service/internal/repositories"
)

type examRepository struct {
	client *client
}

// NewExamRepository builds the question service client
func NewExamRepository(baseURL string, httpClient *http.Client) repositories.ExamRepository {
	return &examRepository{client: newClient(baseURL, httpClient)}
}

// FetchRecord retrieves the exam record. The question service wraps the
// record in an array; only the first element matters. An empty array or a
// first element that does not decode as a record both count as not found.
func (r *examRepository) FetchRecord(ctx context.Context, examID string) (*models.ExamRecord, error) {
	path := fmt.Sprintf("/api/v1/questions/exam/%s", url.PathEscape(examID))

	var elements []json.RawMessage
	if err := r.client.getJSON(ctx, path, &elements); err != nil {
		return nil, fmt.Errorf("fetch exam record: %w", err)
	}

	if len(elements) == 0 {
		return nil, fmt.Errorf("fetch exam record: %w", repositories.ErrNotFound)
	}

	var record models.ExamRecord
	if err := json.Unmarshal(elements[0], &record); err != nil {
		return nil, fmt.Errorf("fetch exam record: %w", repositories.ErrNotFound)
	}

	return &record, nil
}

// FetchPDF retrieves the printable exam sheet as raw bytes
func (r *examRepository) FetchPDF(ctx context.Context, examID string) ([]byte, string, error) {
	path := fmt.Sprintf("/api/v1/questions/exam/%s/pdf", url.PathEscape(examID))

	body, contentType, err := r.client.getRaw(ctx, path)
	if err != nil {
		return nil, "", fmt.Errorf("fetch exam pdf: %w", err)
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	return body, contentType, nil
}
