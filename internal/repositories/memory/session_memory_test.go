package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/edustack/exam-service/internal/models"
	"github.com/edustack/exam-service/internal/repositories"
)

func newTestSession(id string) *models.Session {
	return &models.Session{
		ID:            id,
		ExamID:        "42",
		Status:        models.SessionInProgress,
		Student:       models.StudentIdentity{Name: "Alice Rahman", Roll: "CSE-101"},
		QuestionCount: 4,
		Answers:       map[int]string{0: "4"},
	}
}

func TestSessionRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	session := newTestSession("s1")
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("Duplicate_ID_Rejected", func(t *testing.T) {
		if err := repo.Create(ctx, newTestSession("s1")); err == nil {
			t.Error("Expected duplicate session id to be rejected")
		}
	})

	t.Run("Get_Returns_Copy", func(t *testing.T) {
		loaded, err := repo.GetByID(ctx, "s1")
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}

		// Mutating the loaded copy must not touch the stored session
		loaded.Answers[1] = "tampered"
		loaded.Warnings = append(loaded.Warnings, models.IntegrityWarning{Type: models.EventWindowResize})

		reloaded, _ := repo.GetByID(ctx, "s1")
		if len(reloaded.Answers) != 1 {
			t.Errorf("Stored answers mutated through a returned copy")
		}
		if len(reloaded.Warnings) != 0 {
			t.Errorf("Stored warnings mutated through a returned copy")
		}
	})

	t.Run("Update_Persists", func(t *testing.T) {
		loaded, _ := repo.GetByID(ctx, "s1")
		loaded.Answers[2] = "osmosis is diffusion of water"
		if err := repo.Update(ctx, loaded); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		reloaded, _ := repo.GetByID(ctx, "s1")
		if reloaded.Answers[2] != "osmosis is diffusion of water" {
			t.Errorf("Update did not persist the new answer")
		}
		if reloaded.UpdatedAt.IsZero() {
			t.Errorf("Expected updated_at to be stamped")
		}
	})

	t.Run("Delete_Then_Get", func(t *testing.T) {
		if err := repo.Delete(ctx, "s1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		_, err := repo.GetByID(ctx, "s1")
		if !errors.Is(err, repositories.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("Missing_Session", func(t *testing.T) {
		if _, err := repo.GetByID(ctx, "nope"); !errors.Is(err, repositories.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if err := repo.Update(ctx, newTestSession("nope")); !errors.Is(err, repositories.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on update, got %v", err)
		}
		if err := repo.Delete(ctx, "nope"); !errors.Is(err, repositories.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on delete, got %v", err)
		}
	})
}
