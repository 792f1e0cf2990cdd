package quiz

import (
	"fmt"
	"strings"

	"recall/pkg/quizservice"
)

// State is the lifecycle of a question attempt.
type State string

const (
	// StateNotAnswered allows selection changes and submission.
	StateNotAnswered State = "NOT_ANSWERED"
	// StateAnswered locks the attempt; no further mutation is possible.
	StateAnswered State = "ANSWERED"
)

// Engine drives a single question attempt through its state machine. It is
// not safe for concurrent use; callers serialize events onto it.
type Engine struct {
	question  quizservice.Question
	state     State
	selection ChoiceSet
	text      string
	correct   bool
}

// NewEngine builds a fresh attempt for a question. It fails fast on a kind
// outside the closed set so one bad payload cannot corrupt the session.
func NewEngine(q quizservice.Question) (*Engine, error) {
	switch q.Kind {
	case quizservice.KindSingleChoice, quizservice.KindMultiAnswer, quizservice.KindShortAnswer:
	default:
		return nil, fmt.Errorf("question %d: %w: %q", q.Number, quizservice.ErrUnsupportedKind, q.Kind)
	}
	return &Engine{
		question:  q,
		state:     StateNotAnswered,
		selection: NewChoiceSet(),
	}, nil
}

// Restore rebuilds an attempt from a served problem. Slots the service
// reports as answered come back locked with the recorded answer and verdict.
func Restore(p quizservice.Problem) (*Engine, error) {
	engine, err := NewEngine(p.Question)
	if err != nil {
		return nil, err
	}
	if !p.Answered() {
		return engine, nil
	}
	switch p.Question.Kind {
	case quizservice.KindShortAnswer:
		if len(p.UserAnswer) > 0 {
			engine.text = p.UserAnswer[0]
		}
	default:
		engine.selection = NewChoiceSet(p.UserAnswer...)
	}
	engine.state = StateAnswered
	engine.correct = p.Status == quizservice.StatusCorrect
	return engine, nil
}

// Question returns the question under attempt.
func (e *Engine) Question() quizservice.Question {
	return e.question
}

// State returns the attempt state.
func (e *Engine) State() State {
	return e.state
}

// Answered reports whether the attempt is locked.
func (e *Engine) Answered() bool {
	return e.state == StateAnswered
}

// Correct reports the verdict of a locked attempt.
func (e *Engine) Correct() bool {
	return e.state == StateAnswered && e.correct
}

// Selection returns the selected letters in sorted order.
func (e *Engine) Selection() []string {
	return e.selection.Letters()
}

// Text returns the short-answer buffer.
func (e *Engine) Text() string {
	return e.text
}

// CanSubmit reports whether an explicit submission is currently allowed:
// the attempt is open, the kind is not single choice, and the selection or
// text buffer is non-empty.
func (e *Engine) CanSubmit() bool {
	if e.state != StateNotAnswered || e.question.Kind == quizservice.KindSingleChoice {
		return false
	}
	if e.question.Kind == quizservice.KindShortAnswer {
		return strings.TrimSpace(e.text) != ""
	}
	return !e.selection.IsEmpty()
}

// HandleChoice applies a choice event. Single choice replaces the selection
// and commits immediately; multi answer toggles membership. Letters that are
// not part of the question and events on a locked attempt are ignored. It
// reports whether the selection changed and whether the attempt locked.
func (e *Engine) HandleChoice(letter string) (changed, submitted bool) {
	if e.state != StateNotAnswered || !hasChoice(e.question, letter) {
		return false, false
	}
	switch e.question.Kind {
	case quizservice.KindSingleChoice:
		e.selection.ReplaceWith(letter)
		e.lock()
		return true, true
	case quizservice.KindMultiAnswer:
		e.selection.Toggle(letter)
		return true, false
	}
	return false, false
}

// SetText replaces the short-answer buffer. It reports whether anything
// changed; other kinds and locked attempts ignore the event.
func (e *Engine) SetText(text string) bool {
	if e.state != StateNotAnswered || e.question.Kind != quizservice.KindShortAnswer {
		return false
	}
	if e.text == text {
		return false
	}
	e.text = text
	return true
}

// Submit locks the attempt when submission is allowed and reports whether it
// did. Single-choice attempts never submit this way; they commit on choice.
func (e *Engine) Submit() bool {
	if !e.CanSubmit() {
		return false
	}
	e.lock()
	return true
}

// Answers returns the submission payload: the selected letters for choice
// kinds, or the trimmed text for short answers.
func (e *Engine) Answers() []string {
	if e.question.Kind == quizservice.KindShortAnswer {
		text := strings.TrimSpace(e.text)
		if text == "" {
			return nil
		}
		return []string{text}
	}
	return e.selection.Letters()
}

// Marks classifies every choice of the question for display.
func (e *Engine) Marks() []ChoiceMark {
	return MarkChoices(e.question, e.state, e.selection)
}

// lock grades the current selection and moves the attempt to ANSWERED.
func (e *Engine) lock() {
	correct, err := GradeAnswer(e.question, e.Answers())
	e.correct = correct && err == nil
	e.state = StateAnswered
}
