package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/edustack/exam-service/internal/cache"
	"github.com/edustack/exam-service/internal/models"
	"github.com/edustack/exam-service/internal/repositories"
)

func TestNormalizeExam(t *testing.T) {
	t.Run("Flattens_Buckets_In_Order", func(t *testing.T) {
		view := NormalizeExam("42", sampleExamRecord())

		if view.QuestionCount() != 4 {
			t.Fatalf("Expected 4 questions, got %d", view.QuestionCount())
		}

		wantKinds := []models.QuestionKind{models.KindMCQ, models.KindMCQ, models.KindOneMark, models.KindThreeMark}
		wantMarks := []int{1, 1, 1, 3}
		for i, q := range view.Questions {
			if q.Index != i {
				t.Errorf("Question %d: expected index %d, got %d", i, i, q.Index)
			}
			if q.Kind != wantKinds[i] {
				t.Errorf("Question %d: expected kind %s, got %s", i, wantKinds[i], q.Kind)
			}
			if q.Marks != wantMarks[i] {
				t.Errorf("Question %d: expected %d marks, got %d", i, wantMarks[i], q.Marks)
			}
		}

		if view.Questions[0].Category != models.CategoryMCQ {
			t.Errorf("Expected MCQ category, got %s", view.Questions[0].Category)
		}
		if view.Questions[2].Category != models.CategoryTheory {
			t.Errorf("Expected Theory category, got %s", view.Questions[2].Category)
		}
		if view.TotalMarks != 6 {
			t.Errorf("Expected total marks 6, got %d", view.TotalMarks)
		}
	})

	t.Run("Bucket_Decides_Marks", func(t *testing.T) {
		record := &models.ExamRecord{
			MCQ: []models.RawQuestion{
				{Question: "Q1", CorrectAnswer: "A", Marks: intPtr(5)},
			},
			ThreeMark: []models.RawQuestion{
				{Question: "Q2", Marks: intPtr(10)},
			},
		}

		view := NormalizeExam("7", record)

		if view.Questions[0].Marks != 1 {
			t.Errorf("Expected MCQ marks 1 regardless of raw marks, got %d", view.Questions[0].Marks)
		}
		if view.Questions[1].Marks != 3 {
			t.Errorf("Expected three_mark marks 3 regardless of raw marks, got %d", view.Questions[1].Marks)
		}
		if view.TotalMarks != 4 {
			t.Errorf("Expected total marks 4, got %d", view.TotalMarks)
		}
		if view.Title != "Exam #7" {
			t.Errorf("Expected title 'Exam #7', got %q", view.Title)
		}
	})

	t.Run("Record_Id_Is_Authoritative", func(t *testing.T) {
		view := NormalizeExam("999", sampleExamRecord())

		if view.ExamID != "42" {
			t.Errorf("Expected the record's own exam id 42, got %q", view.ExamID)
		}
		if view.Title != "Exam #42" {
			t.Errorf("Expected title 'Exam #42', got %q", view.Title)
		}
	})

	t.Run("Empty_Record", func(t *testing.T) {
		view := NormalizeExam("9", &models.ExamRecord{})

		if view.QuestionCount() != 0 {
			t.Errorf("Expected no questions, got %d", view.QuestionCount())
		}
		if view.TotalMarks != 0 {
			t.Errorf("Expected zero total marks, got %d", view.TotalMarks)
		}
	})
}

func TestExamService_GetExamView(t *testing.T) {
	ctx := context.Background()

	t.Run("Normalizes_Fetched_Record", func(t *testing.T) {
		repo := newStubRepository()
		repo.exam.record = sampleExamRecord()
		service := NewExamService(repo, cache.NewCacheManager(nil), testLogger())

		view, err := service.GetExamView(ctx, "42")
		if err != nil {
			t.Fatalf("GetExamView failed: %v", err)
		}
		if view.ExamID != "42" {
			t.Errorf("Expected exam_id 42, got %s", view.ExamID)
		}
		if view.Title != "Exam #42" {
			t.Errorf("Expected title 'Exam #42', got %q", view.Title)
		}
		if view.QuestionCount() != 4 {
			t.Errorf("Expected 4 questions, got %d", view.QuestionCount())
		}
	})

	t.Run("Missing_Exam", func(t *testing.T) {
		repo := newStubRepository()
		repo.exam.err = repositories.ErrNotFound
		service := NewExamService(repo, cache.NewCacheManager(nil), testLogger())

		_, err := service.GetExamView(ctx, "999")
		if !errors.Is(err, ErrExamNotFound) {
			t.Errorf("Expected ErrExamNotFound, got %v", err)
		}
	})

	t.Run("Upstream_Down", func(t *testing.T) {
		repo := newStubRepository()
		repo.exam.err = repositories.ErrUnavailable
		service := NewExamService(repo, cache.NewCacheManager(nil), testLogger())

		_, err := service.GetExamView(ctx, "42")
		if !errors.Is(err, ErrUpstreamUnavailable) {
			t.Errorf("Expected ErrUpstreamUnavailable, got %v", err)
		}
	})
}

func TestExamService_RefreshExamView(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := newStubRepository()
	repo.exam.record = sampleExamRecord()
	service := NewExamService(repo, cache.NewCacheManager(client), testLogger())

	first, err := service.GetExamView(ctx, "42")
	if err != nil {
		t.Fatalf("GetExamView failed: %v", err)
	}
	if first.QuestionCount() != 4 {
		t.Fatalf("Expected 4 questions, got %d", first.QuestionCount())
	}

	// Wait for the async cache write to land
	deadline := time.Now().Add(time.Second)
	for !mr.Exists("exam:view:42") && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	// Upstream changes, the cached view keeps serving the old shape
	repo.exam.record = &models.ExamRecord{
		ExamID: "42",
		MCQ:    []models.RawQuestion{{Question: "Only one left", CorrectAnswer: "yes"}},
	}
	cached, err := service.GetExamView(ctx, "42")
	if err != nil {
		t.Fatalf("GetExamView failed: %v", err)
	}
	if cached.QuestionCount() != 4 {
		t.Errorf("Expected the cached view to survive the upstream change, got %d questions", cached.QuestionCount())
	}

	refreshed, err := service.RefreshExamView(ctx, "42")
	if err != nil {
		t.Fatalf("RefreshExamView failed: %v", err)
	}
	if refreshed.QuestionCount() != 1 {
		t.Errorf("Expected the refreshed view to see the new record, got %d questions", refreshed.QuestionCount())
	}
}

func TestExamService_GetExamPDF(t *testing.T) {
	repo := newStubRepository()
	repo.exam.pdf = []byte("%PDF-1.7 fake")
	repo.exam.contentType = "application/pdf"
	service := NewExamService(repo, cache.NewCacheManager(nil), testLogger())

	data, contentType, err := service.GetExamPDF(context.Background(), "42")
	if err != nil {
		t.Fatalf("GetExamPDF failed: %v", err)
	}
	if string(data) != "%PDF-1.7 fake" {
		t.Errorf("PDF bytes were not proxied unchanged")
	}
	if contentType != "application/pdf" {
		t.Errorf("Expected application/pdf, got %s", contentType)
	}
}
