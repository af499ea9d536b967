package models

// QuestionResult is the grading service's verdict for a single question.
// Verdicts are authoritative and passed through unchanged.
type QuestionResult struct {
	Question      string  `json:"question"`
	StudentAnswer string  `json:"student_answer"`
	CorrectAnswer string  `json:"correct_answer"`
	IsCorrect     *bool   `json:"is_correct"`
	MarksAwarded  float64 `json:"marks_awarded"`
	Feedback      *string `json:"feedback,omitempty"`
}

// StudentResult is one student's graded outcome for one exam
type StudentResult struct {
	ExamID      string           `json:"exam_id"`
	StudentID   string           `json:"student_id"`
	StudentName string           `json:"student_name"`
	Score       float64          `json:"score"`
	TotalMarks  float64          `json:"total_marks"`
	Results     []QuestionResult `json:"results"`
}

// Percentage returns the score as a 0-100 percentage of the total.
// A zero total yields zero rather than a division error.
func (r *StudentResult) Percentage() float64 {
	if r.TotalMarks <= 0 {
		return 0
	}
	return r.Score / r.TotalMarks * 100
}

// CohortEntry is the slice of a StudentResult the cohort views need
type CohortEntry struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	Score       float64 `json:"score"`
	TotalMarks  float64 `json:"total_marks"`
	Grade       string  `json:"grade"`
}

// CohortStats summarizes a whole cohort's results for one exam
type CohortStats struct {
	StudentCount   int     `json:"student_count"`
	AverageScore   float64 `json:"average_score"`
	HighestScore   float64 `json:"highest_score"`
	PassPercentage float64 `json:"pass_percentage"`
}
