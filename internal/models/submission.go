package models

// QuestionScore is the grading state of a single submitted answer. MCQ
// answers are graded locally and carry a definitive score; theory answers
// stay pending and carry the attainable maximum until the grading service
// marks them.
type QuestionScore struct {
	Graded bool `json:"graded"`
	Score  int  `json:"score"`
	Max    int  `json:"max"`
}

// GradedScore builds a locally graded score
func GradedScore(score, max int) QuestionScore {
	return QuestionScore{Graded: true, Score: score, Max: max}
}

// PendingScore builds an ungraded score awaiting manual marking
func PendingScore(max int) QuestionScore {
	return QuestionScore{Graded: false, Max: max}
}

// WireMarks flattens the score to the single marks field the grading
// service expects: the earned score when graded, the maximum when pending.
func (s QuestionScore) WireMarks() int {
	if s.Graded {
		return s.Score
	}
	return s.Max
}

// SubmissionItem is one answered (or unanswered) question in a submission.
// Every normalized question produces exactly one item.
type SubmissionItem struct {
	Index         int          `json:"index"`
	Question      string       `json:"question"`
	Type          QuestionKind `json:"type"`
	StudentAnswer string       `json:"student_answer"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
	Marks         int          `json:"marks"`

	score QuestionScore
}

// Score returns the grading state behind the flattened marks field
func (i SubmissionItem) Score() QuestionScore {
	return i.score
}

// NewSubmissionItem builds an item, flattening the score into the wire
// marks field
func NewSubmissionItem(index int, question string, kind QuestionKind, studentAnswer, correctAnswer string, score QuestionScore) SubmissionItem {
	return SubmissionItem{
		Index:         index,
		Question:      question,
		Type:          kind,
		StudentAnswer: studentAnswer,
		CorrectAnswer: correctAnswer,
		Marks:         score.WireMarks(),
		score:         score,
	}
}

// Submission is the full payload delivered to the grading webhook. The
// grading service reads the question list from the items key.
type Submission struct {
	ExamID      string           `json:"exam_id"`
	StudentID   string           `json:"student_id"`
	StudentName string           `json:"student_name"`
	TotalMarks  int              `json:"total_marks"`
	Items       []SubmissionItem `json:"items"`
}
