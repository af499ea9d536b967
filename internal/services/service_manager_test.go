package services

import (
	"context"
	"testing"

	"github.com/edustack/exam-service/internal/cache"
	"github.com/edustack/exam-service/internal/events"
	"github.com/edustack/exam-service/internal/validator"
)

func TestServiceManager_Lifecycle(t *testing.T) {
	logger := testLogger()
	repo := newStubRepository()
	repo.exam.record = sampleExamRecord()
	publisher := events.NewMockEventPublisher(logger)

	manager := NewDefaultServiceManager(repo, cache.NewCacheManager(nil), publisher, logger, validator.New())

	if err := manager.HealthCheck(context.Background()); err == nil {
		t.Errorf("HealthCheck should fail before Initialize")
	}
	if err := manager.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	// Every accessor must hand back a wired service
	if manager.Exam() == nil || manager.Session() == nil || manager.Submission() == nil ||
		manager.Result() == nil || manager.TextGen() == nil || manager.Export() == nil {
		t.Errorf("Expected all services to be wired after Initialize")
	}

	if err := manager.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}

	if err := manager.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestServiceManager_PanicsBeforeInitialize(t *testing.T) {
	manager := NewDefaultServiceManager(newStubRepository(), cache.NewCacheManager(nil),
		events.NewMockEventPublisher(testLogger()), testLogger(), validator.New())

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected accessing a service before Initialize to panic")
		}
	}()
	manager.Exam()
}
