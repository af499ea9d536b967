package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

type exportService struct {
	resultService ResultService
	logger        *slog.Logger
}

// NewExportService creates the cohort export service
func NewExportService(resultService ResultService, logger *slog.Logger) ExportService {
	return &exportService{
		resultService: resultService,
		logger:        logger,
	}
}

// ExportCohortResults renders an exam's cohort as an xlsx workbook with
// one row per student and a summary block below
func (s *exportService) ExportCohortResults(ctx context.Context, examID string) ([]byte, error) {
	cohort, err := s.resultService.GetCohort(ctx, examID, "")
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Roll Number", "Student Name", "Score", "Total Marks", "Grade"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, entry := range cohort.Students {
		row := i + 2
		values := []interface{}{entry.StudentID, entry.StudentName, entry.Score, entry.TotalMarks, entry.Grade}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
		}
	}

	summaryRow := len(cohort.Students) + 3
	summary := [][]interface{}{
		{"Students", cohort.Stats.StudentCount},
		{"Average Score", cohort.Stats.AverageScore},
		{"Highest Score", cohort.Stats.HighestScore},
		{"Pass Percentage", cohort.Stats.PassPercentage},
	}
	for i, pair := range summary {
		for col, value := range pair {
			cell, _ := excelize.CoordinatesToCellName(col+1, summaryRow+i)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Debug("Cohort exported", "exam_id", examID, "students", len(cohort.Students))
	return buf.Bytes(), nil
}
