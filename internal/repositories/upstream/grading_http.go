package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/edustack/exam-service/internal/models"
	"github.com/edustack/exam-service/internal/repositories"
)

type submissionRepository struct {
	client *client
}

// NewSubmissionRepository builds the grading webhook client
func NewSubmissionRepository(baseURL string, httpClient *http.Client) repositories.SubmissionRepository {
	return &submissionRepository{client: newClient(baseURL, httpClient)}
}

// Deliver posts the submission to the grading webhook. Any transport error
// or failure status means the submission did not land and the caller may
// retry.
func (r *submissionRepository) Deliver(ctx context.Context, submission *models.Submission) error {
	if err := r.client.postJSON(ctx, "/webhook/exam/submit", submission, nil); err != nil {
		return fmt.Errorf("deliver submission: %w", err)
	}
	return nil
}
