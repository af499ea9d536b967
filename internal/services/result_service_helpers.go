package services

import (
	"math"

	"github.com/edustack/exam-service/internal/models"
)

// passCutoff is the percentage below which a result counts as failing
const passCutoff = 50.0

// CalculateGrade maps a 0-100 percentage to its letter grade. Total over
// the whole range: everything below the C band is an F.
func CalculateGrade(percentage float64) string {
	if percentage >= 90 {
		return "A+"
	} else if percentage >= 80 {
		return "A"
	} else if percentage >= 70 {
		return "B+"
	} else if percentage >= 60 {
		return "B"
	} else if percentage >= 50 {
		return "C"
	}
	return "F"
}

// calculateCohortStats aggregates a result set into cohort statistics.
// An empty cohort yields zeroes rather than NaN.
func calculateCohortStats(results []*models.StudentResult) models.CohortStats {
	stats := models.CohortStats{StudentCount: len(results)}
	if len(results) == 0 {
		return stats
	}

	sum := 0.0
	passed := 0
	for _, r := range results {
		sum += r.Score
		if r.Score > stats.HighestScore {
			stats.HighestScore = r.Score
		}
		if r.Percentage() >= passCutoff {
			passed++
		}
	}

	stats.AverageScore = roundFloat(sum/float64(len(results)), 2)
	stats.PassPercentage = roundFloat(float64(passed)/float64(len(results))*100, 2)
	return stats
}

func roundFloat(value float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(value*ratio) / ratio
}
