package report

import (
	"fmt"
	"strings"
	"time"

	"recall/pkg/quizservice"
)

// formatAccuracy returns a percentage string for the score summary.
func formatAccuracy(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}

// formatKind renders a question kind as display text.
func formatKind(kind quizservice.QuestionKind) string {
	return strings.ReplaceAll(string(kind), "_", " ")
}

// formatStatus maps an answer status to a badge label and CSS class.
func formatStatus(status quizservice.AnswerStatus) (label, class string) {
	switch status {
	case quizservice.StatusCorrect:
		return "correct", "correct"
	case quizservice.StatusIncorrect:
		return "wrong", "wrong"
	default:
		return "open", "open"
	}
}

// formatTime renders report timestamps in UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04 MST")
}
