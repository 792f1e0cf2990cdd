package session

import (
	"recall/internal/quiz"
	"recall/pkg/quizservice"
)

// Phase is the top-level state of a quiz session.
type Phase string

const (
	// PhaseIdle is the state before Start.
	PhaseIdle Phase = "idle"
	// PhaseStarting covers the initial progress fetch.
	PhaseStarting Phase = "starting"
	// PhaseLoading covers a question fetch.
	PhaseLoading Phase = "loading"
	// PhaseQuestion has an active question attempt.
	PhaseQuestion Phase = "question"
	// PhaseLoadFailed is a recoverable question-fetch failure; Retry re-fetches.
	PhaseLoadFailed Phase = "load_failed"
	// PhaseFinished means every slot is behind the session.
	PhaseFinished Phase = "finished"
	// PhaseFailed is terminal, reached when the quiz cannot be started.
	PhaseFailed Phase = "failed"
)

// Snapshot is an immutable view of session state handed to observers.
// Question fields are meaningful only in PhaseQuestion.
type Snapshot struct {
	Phase    Phase
	QuizID   string
	QuizName string
	Size     int
	Index    int

	Question  quizservice.Question
	State     quiz.State
	Marks     []quiz.ChoiceMark
	Selection []string
	Text      string
	CanSubmit bool
	Answered  bool
	Correct   bool

	AnsweredCount int
	CorrectCount  int
	StaleDrops    int

	Err       string
	LastEvent string
}

// Loading reports whether required data is absent and a fetch is under way;
// surfaces render a progress indicator while this holds.
func (s Snapshot) Loading() bool {
	return s.Phase == PhaseStarting || s.Phase == PhaseLoading
}

// Terminal reports whether the session can make no further progress.
func (s Snapshot) Terminal() bool {
	return s.Phase == PhaseFinished || s.Phase == PhaseFailed
}

// Observer receives every published snapshot. Implementations must not block;
// surfaces that render asynchronously enqueue and return.
type Observer interface {
	OnSnapshot(snap Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Snapshot)

// OnSnapshot calls the wrapped function.
func (f ObserverFunc) OnSnapshot(snap Snapshot) {
	f(snap)
}
