package upstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/edustack/exam-service/internal/repositories"
	"github.com/edustack/exam-service/internal/repositories/memory"
)

// RepositoryConfig carries everything needed to build the repository set
type RepositoryConfig struct {
	QuestionServiceURL string
	ResultServiceURL   string
	GradingWebhookURL  string
	TextGenWebhookURL  string
	Timeout            time.Duration
	HTTPClient         *http.Client
}

// repositoryManager wires upstream HTTP repositories together with the
// local session store
type repositoryManager struct {
	config RepositoryConfig
	repo   *repositorySet
}

type repositorySet struct {
	exam       repositories.ExamRepository
	result     repositories.ResultRepository
	submission repositories.SubmissionRepository
	textGen    repositories.TextGenRepository
	session    repositories.SessionRepository

	httpClient *http.Client
	healthURL  string
}

// NewRepositoryManager creates a repository manager from config
func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &repositoryManager{config: config}
}

func (m *repositoryManager) Initialize() error {
	if m.config.QuestionServiceURL == "" {
		return fmt.Errorf("question service URL is required")
	}

	httpClient := m.config.HTTPClient
	if httpClient == nil {
		timeout := m.config.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	resultURL := m.config.ResultServiceURL
	if resultURL == "" {
		resultURL = m.config.QuestionServiceURL
	}
	gradingURL := m.config.GradingWebhookURL
	if gradingURL == "" {
		gradingURL = m.config.QuestionServiceURL
	}
	textGenURL := m.config.TextGenWebhookURL
	if textGenURL == "" {
		textGenURL = m.config.QuestionServiceURL
	}

	m.repo = &repositorySet{
		exam:       NewExamRepository(m.config.QuestionServiceURL, httpClient),
		result:     NewResultRepository(resultURL, httpClient),
		submission: NewSubmissionRepository(gradingURL, httpClient),
		textGen:    NewTextGenRepository(textGenURL, httpClient),
		session:    memory.NewSessionRepository(),
		httpClient: httpClient,
		healthURL:  m.config.QuestionServiceURL,
	}

	return nil
}

func (m *repositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *repositoryManager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repositories not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *repositoryManager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}

// ===== REPOSITORY ACCESSORS =====

func (r *repositorySet) Exam() repositories.ExamRepository             { return r.exam }
func (r *repositorySet) Result() repositories.ResultRepository         { return r.result }
func (r *repositorySet) Submission() repositories.SubmissionRepository { return r.submission }
func (r *repositorySet) TextGen() repositories.TextGenRepository       { return r.textGen }
func (r *repositorySet) Session() repositories.SessionRepository       { return r.session }

// Ping probes the question service. The session store is local and needs
// no probe.
func (r *repositorySet) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.healthURL, nil)
	if err != nil {
		return err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", repositories.ErrUnavailable, err)
	}
	resp.Body.Close()
	return nil
}

func (r *repositorySet) Close() error {
	r.httpClient.CloseIdleConnections()
	return nil
}
