package events

import "time"

// TopicSessionEvents is the broker topic for session lifecycle events
const TopicSessionEvents = "exam.session.events"

// SessionStartedPayload is emitted when a student's identity is accepted
// and the session moves to in progress
type SessionStartedPayload struct {
	SessionID   string    `json:"session_id"`
	ExamID      string    `json:"exam_id"`
	StudentName string    `json:"student_name"`
	StudentRoll string    `json:"student_roll"`
	StartedAt   time.Time `json:"started_at"`
}

// IntegrityWarningPayload is emitted for each recorded proctoring event.
// Warnings are advisory; consumers must not act on them as violations.
type IntegrityWarningPayload struct {
	SessionID    string    `json:"session_id"`
	ExamID       string    `json:"exam_id"`
	WarningType  string    `json:"warning_type"`
	Message      string    `json:"message"`
	WarningCount int       `json:"warning_count"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// SessionSubmittedPayload is emitted once a submission has landed at the
// grading webhook and the session is closed
type SessionSubmittedPayload struct {
	SessionID     string    `json:"session_id"`
	ExamID        string    `json:"exam_id"`
	StudentRoll   string    `json:"student_roll"`
	AnsweredCount int       `json:"answered_count"`
	QuestionCount int       `json:"question_count"`
	WarningCount  int       `json:"warning_count"`
	SubmittedAt   time.Time `json:"submitted_at"`
}
