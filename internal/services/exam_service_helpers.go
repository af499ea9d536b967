package services

import (
	"fmt"

	"github.com/edustack/exam-service/internal/models"
)

// NormalizeExam flattens the three question buckets of a raw exam record
// into a single ordered list. The order is always mcq, then one_mark, then
// three_mark, exactly as the buckets arrive; nothing downstream may
// re-sort it because the positional index is the answer key.
//
// The record's own exam_id is authoritative for the view id and title;
// examID is the fallback when the record carries none.
func NormalizeExam(examID string, record *models.ExamRecord) *models.ExamView {
	if id := record.ExamID.String(); id != "" {
		examID = id
	}

	questions := make([]models.Question, 0, len(record.MCQ)+len(record.OneMark)+len(record.ThreeMark))

	for _, raw := range record.MCQ {
		questions = append(questions, tagQuestion(raw, models.CategoryMCQ, models.KindMCQ, 1))
	}
	for _, raw := range record.OneMark {
		questions = append(questions, tagQuestion(raw, models.CategoryTheory, models.KindOneMark, 1))
	}
	for _, raw := range record.ThreeMark {
		questions = append(questions, tagQuestion(raw, models.CategoryTheory, models.KindThreeMark, 3))
	}

	totalMarks := 0
	for i := range questions {
		questions[i].Index = i
		marks := questions[i].Marks
		if marks == 0 {
			marks = 1
		}
		totalMarks += marks
	}

	return &models.ExamView{
		ExamID:     examID,
		Title:      fmt.Sprintf("Exam #%s", examID),
		TotalMarks: totalMarks,
		Questions:  questions,
	}
}

// tagQuestion stamps a raw question with its bucket's category, wire type
// and marks. Bucket membership decides the marks; any marks the raw
// record carries are ignored.
func tagQuestion(raw models.RawQuestion, category models.QuestionCategory, kind models.QuestionKind, marks int) models.Question {
	return models.Question{
		Category:      category,
		Kind:          kind,
		Question:      raw.Question,
		Options:       raw.Options,
		CorrectAnswer: raw.CorrectAnswer,
		Marks:         marks,
	}
}
