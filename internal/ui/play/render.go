package play

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recall/internal/quiz"
	"recall/internal/session"
	"recall/pkg/quizservice"
)

// renderHeader renders the quiz title line with position and run counters.
func renderHeader(snap session.Snapshot, noColor bool) string {
	title := snap.QuizName
	if title == "" {
		title = "quiz " + snap.QuizID
	}
	line := title
	if snap.Size > 0 && (snap.Phase == session.PhaseQuestion || snap.Phase == session.PhaseLoading || snap.Phase == session.PhaseLoadFailed) {
		line += fmt.Sprintf(" | question %d/%d", snap.Index+1, snap.Size)
	}
	line += fmt.Sprintf(" | answered %d, correct %d this run", snap.AnsweredCount, snap.CorrectCount)
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderBody renders the phase-specific middle of the screen.
func renderBody(m Model) []string {
	snap := m.snap
	switch snap.Phase {
	case session.PhaseIdle, session.PhaseStarting:
		return []string{"", m.spin.View() + " starting quiz..."}
	case session.PhaseLoading:
		return []string{"", fmt.Sprintf("%s loading question %d...", m.spin.View(), snap.Index+1)}
	case session.PhaseLoadFailed:
		return []string{"", stylize(snap.Err, m.noColor, lipgloss.Color("196"))}
	case session.PhaseQuestion:
		return renderQuestion(m)
	case session.PhaseFinished:
		message := snap.LastEvent
		if message == "" {
			message = "quiz complete"
		}
		return []string{"", stylize(message, m.noColor, lipgloss.Color("42"))}
	case session.PhaseFailed:
		return []string{"", stylize("error: "+snap.Err, m.noColor, lipgloss.Color("196"))}
	}
	return nil
}

// renderQuestion renders the current question, its choices or input, and the
// verdict once answered.
func renderQuestion(m Model) []string {
	snap := m.snap
	question := snap.Question
	lines := []string{"", wrapText(fmt.Sprintf("Q%d. %s", question.Number, question.Text), m.width)}

	if question.Kind == quizservice.KindShortAnswer {
		lines = append(lines, renderShortAnswer(m)...)
	} else {
		lines = append(lines, "")
		for _, mark := range snap.Marks {
			lines = append(lines, renderChoice(mark, snap.Answered, m.noColor))
		}
	}

	if snap.Answered {
		lines = append(lines, "", renderVerdict(snap, m.noColor))
		if question.Explanation != "" {
			lines = append(lines, wrapText(question.Explanation, m.width))
		}
	}
	return lines
}

// renderShortAnswer renders the input while open or the recorded text after.
func renderShortAnswer(m Model) []string {
	snap := m.snap
	if !snap.Answered {
		return []string{"", m.input.View()}
	}
	lines := []string{"", "your answer: " + snap.Text}
	if len(snap.Question.Answer) > 0 {
		lines = append(lines, "reference: "+strings.Join(snap.Question.Answer, " "))
	}
	return lines
}

// renderChoice renders one choice line with its classification marker.
func renderChoice(mark quiz.ChoiceMark, answered bool, noColor bool) string {
	marker := "[ ]"
	if answered {
		switch mark.Mark {
		case quiz.MarkCorrect:
			marker = "[+]"
		case quiz.MarkWrong:
			marker = "[x]"
		case quiz.MarkMissing:
			marker = "[!]"
		}
	} else if mark.Mark == quiz.MarkSelected {
		marker = "[x]"
	}
	line := fmt.Sprintf("  %s %s. %s", marker, mark.Choice.Letter, mark.Choice.Text)
	if color, ok := markColor(mark.Mark); ok {
		return stylize(line, noColor, color)
	}
	return line
}

// renderVerdict renders the graded outcome of the current question.
func renderVerdict(snap session.Snapshot, noColor bool) string {
	if snap.Correct {
		return stylize("correct", noColor, lipgloss.Color("42"))
	}
	return stylize("wrong", noColor, lipgloss.Color("196"))
}

// renderHints renders the key guide for the current phase.
func renderHints(snap session.Snapshot, noColor bool) string {
	var hint string
	switch snap.Phase {
	case session.PhaseIdle, session.PhaseStarting, session.PhaseLoading:
		hint = "q quit"
	case session.PhaseLoadFailed:
		hint = "enter/r retry, q quit"
	case session.PhaseQuestion:
		hint = questionHint(snap)
	case session.PhaseFinished, session.PhaseFailed:
		hint = "enter/q exit"
	}
	if hint == "" {
		return ""
	}
	return stylize(hint, noColor, lipgloss.Color("244"))
}

func questionHint(snap session.Snapshot) string {
	if snap.Answered {
		return "enter next question, q quit"
	}
	switch snap.Question.Kind {
	case quizservice.KindSingleChoice:
		return "press a letter to answer, q quit"
	case quizservice.KindMultiAnswer:
		if snap.CanSubmit {
			return "letters toggle, enter submits, q quit"
		}
		return "letters toggle, pick at least one, q quit"
	case quizservice.KindShortAnswer:
		return "type your answer, enter submits, ctrl+c quit"
	}
	return ""
}

// wrapText soft-wraps a line to the terminal width.
func wrapText(text string, width int) string {
	if width <= 4 {
		return text
	}
	return lipgloss.NewStyle().Width(width - 2).Render(text)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// markColor selects the display color for a classification.
func markColor(mark quiz.Mark) (lipgloss.Color, bool) {
	switch mark {
	case quiz.MarkCorrect:
		return lipgloss.Color("42"), true
	case quiz.MarkWrong:
		return lipgloss.Color("196"), true
	case quiz.MarkMissing:
		return lipgloss.Color("220"), true
	case quiz.MarkSelected:
		return lipgloss.Color("45"), true
	}
	return "", false
}
