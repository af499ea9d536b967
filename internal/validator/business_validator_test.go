package validator

import (
	"errors"
	"testing"

	"github.com/edustack/exam-service/internal/models"
)

func TestValidator_SessionStartRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     SessionStartRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  SessionStartRequest{ExamID: "42", StudentName: "Alice Rahman", StudentRoll: "CSE-101"},
		},
		{
			name:    "missing exam id",
			req:     SessionStartRequest{StudentName: "Alice Rahman", StudentRoll: "CSE-101"},
			wantErr: true,
		},
		{
			name:    "whitespace-only name",
			req:     SessionStartRequest{ExamID: "42", StudentName: "   ", StudentRoll: "CSE-101"},
			wantErr: true,
		},
		{
			name:    "whitespace-only roll",
			req:     SessionStartRequest{ExamID: "42", StudentName: "Alice Rahman", StudentRoll: "\t"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var verrs ValidationErrors
				if !errors.As(err, &verrs) || len(verrs) == 0 {
					t.Errorf("Expected structured validation errors, got %v", err)
				}
			}
		})
	}
}

func TestValidator_IntegrityEventRequest(t *testing.T) {
	v := New()

	if err := v.Validate(&IntegrityEventRequest{Type: "visibility_hidden"}); err != nil {
		t.Errorf("Expected visibility_hidden to pass, got %v", err)
	}
	if err := v.Validate(&IntegrityEventRequest{Type: "window_resize"}); err != nil {
		t.Errorf("Expected window_resize to pass, got %v", err)
	}
	if err := v.Validate(&IntegrityEventRequest{Type: "mouse_moved"}); err == nil {
		t.Errorf("Expected unknown event type to fail")
	}
	if err := v.Validate(&IntegrityEventRequest{}); err == nil {
		t.Errorf("Expected missing type to fail")
	}
}

func TestValidator_ValidateIdentity(t *testing.T) {
	v := New()

	if errs := v.ValidateIdentity(models.StudentIdentity{Name: "Alice", Roll: "CSE-101"}); len(errs) != 0 {
		t.Errorf("Expected valid identity to pass, got %v", errs)
	}

	errs := v.ValidateIdentity(models.StudentIdentity{Name: " ", Roll: ""})
	if len(errs) != 2 {
		t.Errorf("Expected both identity fields flagged, got %d errors", len(errs))
	}
}

func TestValidator_AnswerRequest(t *testing.T) {
	v := New()

	zero := 0
	if err := v.Validate(&AnswerRequest{QuestionIndex: &zero, Answer: ""}); err != nil {
		t.Errorf("Expected index 0 with empty answer to pass, got %v", err)
	}

	if err := v.Validate(&AnswerRequest{Answer: "4"}); err == nil {
		t.Errorf("Expected missing question index to fail")
	}

	negative := -1
	if err := v.Validate(&AnswerRequest{QuestionIndex: &negative}); err == nil {
		t.Errorf("Expected negative index to fail")
	}
}
