package upstream

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/edustack/exam-service/internal/repositories"
)

type textGenRepository struct {
	client *client
}

// NewTextGenRepository builds the text transformation webhook client
func NewTextGenRepository(baseURL string, httpClient *http.Client) repositories.TextGenRepository {
	return &textGenRepository{client: newClient(baseURL, httpClient)}
}

type announcementRequest struct {
	Prompt string `json:"prompt"`
}

type announcementResponse struct {
	Output string `json:"output"`
}

func (r *textGenRepository) FormatAnnouncement(ctx context.Context, prompt string) (string, error) {
	var resp announcementResponse
	if err := r.client.postJSON(ctx, "/webhook/announcements/format", announcementRequest{Prompt: prompt}, &resp); err != nil {
		return "", fmt.Errorf("format announcement: %w", err)
	}
	if resp.Output == "" {
		return "", fmt.Errorf("format announcement: missing output: %w", repositories.ErrMalformedResponse)
	}
	return resp.Output, nil
}

type lessonPlanRequest struct {
	Topic         string `json:"topic"`
	Hours         string `json:"hours"`
	SpecificFocus string `json:"specific_focus"`
}

// GenerateLessonPlan posts JSON when no file is attached and multipart
// form data when one is. A response without an id or output is rejected,
// never patched up locally.
func (r *textGenRepository) GenerateLessonPlan(ctx context.Context, prompt *repositories.LessonPlanPrompt) (*repositories.LessonPlanOutput, error) {
	var out repositories.LessonPlanOutput
	var err error

	if len(prompt.File) == 0 {
		err = r.client.postJSON(ctx, "/webhook/lessonplan/generate", lessonPlanRequest{
			Topic:         prompt.Topic,
			Hours:         prompt.Hours,
			SpecificFocus: prompt.SpecificFocus,
		}, &out)
	} else {
		err = r.generateWithFile(ctx, prompt, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("generate lesson plan: %w", err)
	}

	if out.Output == "" {
		return nil, fmt.Errorf("generate lesson plan: missing output: %w", repositories.ErrMalformedResponse)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("generate lesson plan: missing id: %w", repositories.ErrMalformedResponse)
	}
	return &out, nil
}

func (r *textGenRepository) generateWithFile(ctx context.Context, prompt *repositories.LessonPlanPrompt, dest *repositories.LessonPlanOutput) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"topic":          prompt.Topic,
		"hours":          prompt.Hours,
		"specific_focus": prompt.SpecificFocus,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("write form field: %w", err)
		}
	}

	fileName := prompt.FileName
	if fileName == "" {
		fileName = "reference"
	}
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(prompt.File); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}

	return r.client.postMultipart(ctx, "/webhook/lessonplan/generate", &buf, writer.FormDataContentType(), dest)
}
