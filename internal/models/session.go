package models

import "time"

// SessionStatus tracks the exam session lifecycle
type SessionStatus string

const (
	SessionNotStarted SessionStatus = "not_started"
	SessionInProgress SessionStatus = "in_progress"
	SessionSubmitted  SessionStatus = "submitted"
)

// IntegrityEventType identifies a proctoring signal reported by the client
type IntegrityEventType string

const (
	EventVisibilityHidden IntegrityEventType = "visibility_hidden"
	EventWindowResize     IntegrityEventType = "window_resize"
)

// IsValid reports whether the event type is one the monitor accepts
func (t IntegrityEventType) IsValid() bool {
	return t == EventVisibilityHidden || t == EventWindowResize
}

// StudentIdentity is the identity a student must supply before a session
// can start
type StudentIdentity struct {
	Name string `json:"student_name"`
	Roll string `json:"student_roll"`
}

// IntegrityWarning is one recorded proctoring event. Warnings are advisory
// and never block submission.
type IntegrityWarning struct {
	Type       IntegrityEventType `json:"type"`
	Message    string             `json:"message"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// Session is a single student's attempt at a single exam. All mutable
// per-attempt state lives here so concurrent sessions cannot bleed into
// each other.
type Session struct {
	ID      string          `json:"id"`
	ExamID  string          `json:"exam_id"`
	Status  SessionStatus   `json:"status"`
	Student StudentIdentity `json:"student"`

	// QuestionCount is frozen from the exam view at start time and bounds
	// the answer index space.
	QuestionCount int `json:"question_count"`

	// Answers is keyed by normalized question index. Absent index means
	// the question is unanswered.
	Answers map[int]string `json:"answers"`

	Warnings []IntegrityWarning `json:"warnings"`

	StartedAt   *time.Time `json:"started_at,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsActive reports whether the session accepts answers and integrity events
func (s *Session) IsActive() bool {
	return s.Status == SessionInProgress
}

// WarningCount returns the number of recorded integrity warnings
func (s *Session) WarningCount() int {
	return len(s.Warnings)
}
