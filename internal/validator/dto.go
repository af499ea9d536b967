package validator

// SessionStartRequest is the payload for starting an exam session.
// Both identity fields are required before any question material is
// released.
type SessionStartRequest struct {
	ExamID      string `json:"exam_id" validate:"required"`
	StudentName string `json:"student_name" validate:"required,student_identity"`
	StudentRoll string `json:"student_roll" validate:"required,student_identity"`
}

// AnswerRequest records or replaces one answer. The index refers to the
// question's position in the normalized exam view. An empty answer string
// is a legal value.
type AnswerRequest struct {
	QuestionIndex *int   `json:"question_index" validate:"required,min=0"`
	Answer        string `json:"answer"`
}

// IntegrityEventRequest reports a proctoring signal from the client
type IntegrityEventRequest struct {
	Type string `json:"type" validate:"required,integrity_event"`
}

// AnnouncementRequest is the payload for announcement formatting
type AnnouncementRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
	Tone string `json:"tone" validate:"omitempty,max=100"`
}

// LessonPlanRequest is the JSON payload for lesson plan generation.
// Multipart requests carry the same fields plus an attached file.
type LessonPlanRequest struct {
	Topic         string `json:"topic" validate:"required,max=300"`
	Hours         string `json:"hours" validate:"required,max=50"`
	SpecificFocus string `json:"specific_focus" validate:"omitempty,max=1000"`
}
