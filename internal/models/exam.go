package models

import "encoding/json"

// QuestionKind is the wire-level question type used by the exam and grading services
type QuestionKind string

const (
	KindMCQ       QuestionKind = "mcq"
	KindOneMark   QuestionKind = "one_mark"
	KindThreeMark QuestionKind = "three_mark"
)

// QuestionCategory groups questions by how they are graded
type QuestionCategory string

const (
	CategoryMCQ    QuestionCategory = "MCQ"
	CategoryTheory QuestionCategory = "Theory"
)

// RawQuestion is a question exactly as the question service delivers it,
// before any tagging or mark assignment
type RawQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Marks         *int     `json:"marks,omitempty"`
}

// ExamRecord is the first element of the question service response array.
// The three buckets arrive separately and carry no ordering of their own.
type ExamRecord struct {
	ExamID    json.Number   `json:"exam_id"`
	MCQ       []RawQuestion `json:"mcq"`
	OneMark   []RawQuestion `json:"one_mark"`
	ThreeMark []RawQuestion `json:"three_mark"`
}

// Question is a single normalized exam question. Index is the question's
// position in the flattened list and doubles as the answer key.
type Question struct {
	Index         int              `json:"index"`
	Category      QuestionCategory `json:"category"`
	Kind          QuestionKind     `json:"type"`
	Question      string           `json:"question"`
	Options       []string         `json:"options,omitempty"`
	CorrectAnswer string           `json:"correct_answer,omitempty"`
	Marks         int              `json:"marks"`
}

// ExamView is the normalized, immutable shape of an exam. Built once per
// fetch, never mutated afterwards.
type ExamView struct {
	ExamID     string     `json:"exam_id"`
	Title      string     `json:"title"`
	TotalMarks int        `json:"total_marks"`
	Questions  []Question `json:"questions"`
}

// QuestionCount returns the number of normalized questions
func (v *ExamView) QuestionCount() int {
	return len(v.Questions)
}
