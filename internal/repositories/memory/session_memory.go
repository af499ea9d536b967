package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/edustack/exam-service/internal/models"
	"github.com/edustack/exam-service/internal/repositories"
)

// sessionRepository keeps live sessions in process memory. Sessions are
// short-lived attempt state, not durable records, so memory is the store
// of record for them.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewSessionRepository builds an empty in-memory session store
func NewSessionRepository() repositories.SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*models.Session),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}

	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return cloneSession(session), nil
}

func (r *sessionRepository) Update(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; !exists {
		return repositories.ErrNotFound
	}

	session.UpdatedAt = time.Now()
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

// cloneSession copies the session and its mutable containers so callers
// never share answer maps or warning slices with the store
func cloneSession(s *models.Session) *models.Session {
	clone := *s

	clone.Answers = make(map[int]string, len(s.Answers))
	for k, v := range s.Answers {
		clone.Answers[k] = v
	}

	clone.Warnings = make([]models.IntegrityWarning, len(s.Warnings))
	copy(clone.Warnings, s.Warnings)

	return &clone
}
