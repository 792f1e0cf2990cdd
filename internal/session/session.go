// Package session drives one quiz attempt against a quiz service: it fetches
// progress and questions, feeds user input to the active question engine, and
// publishes state snapshots to an observer. All mutation is serialized on an
// internal mutex; fetches run on goroutines tagged with a generation counter
// so responses that arrive late are discarded rather than applied.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"recall/internal/quiz"
	"recall/pkg/quizservice"
)

// DefaultTimeout bounds each service call when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Config carries the dependencies for a Session.
type Config struct {
	// Service is the quiz backend. Required.
	Service quizservice.Service
	// QuizID names the quiz to drive. Required.
	QuizID string
	// Observer receives every published snapshot. Optional.
	Observer Observer
	// Verbose, when set, receives diagnostic lines for swallowed failures
	// such as discarded responses and failed answer uploads.
	Verbose io.Writer
	// Timeout bounds each service call. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Session owns one quiz attempt. Exactly one question engine is active at a
// time; the engine is replaced when the session moves to the next question.
type Session struct {
	svc     quizservice.Service
	quizID  string
	obs     Observer
	verbose io.Writer
	timeout time.Duration

	uploads sync.WaitGroup

	mu         sync.Mutex
	ctx        context.Context
	started    bool
	phase      Phase
	name       string
	size       int
	index      int
	gen        uint64
	engine     *quiz.Engine
	answered   int
	correct    int
	staleDrops int
	lastErr    string
	lastEvent  string
}

// New builds an idle session; call Start to begin the attempt.
func New(cfg Config) (*Session, error) {
	if cfg.Service == nil {
		return nil, errors.New("session: service is required")
	}
	if cfg.QuizID == "" {
		return nil, errors.New("session: quiz id is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	verbose := cfg.Verbose
	if verbose != nil {
		verbose = &lockedWriter{w: verbose}
	}
	return &Session{
		svc:     cfg.Service,
		quizID:  cfg.QuizID,
		obs:     cfg.Observer,
		verbose: verbose,
		timeout: timeout,
		phase:   PhaseIdle,
	}, nil
}

// Start fetches quiz progress and, when the quiz has an open question, loads
// it. Start is asynchronous: completion is reported through snapshots. Calling
// Start more than once is a no-op.
func (s *Session) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.ctx = ctx
	s.phase = PhaseStarting
	s.lastEvent = fmt.Sprintf("loading quiz %s", s.quizID)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(snap)
	go s.fetchProgress()
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// HandleChoice forwards a choice letter to the active engine. For a
// single-choice question the first choice also submits; committed answers are
// uploaded in the background.
func (s *Session) HandleChoice(letter string) {
	s.mu.Lock()
	if s.phase != PhaseQuestion || s.engine == nil {
		s.mu.Unlock()
		return
	}
	changed, submitted := s.engine.HandleChoice(letter)
	if !changed {
		s.mu.Unlock()
		return
	}
	if submitted {
		s.recordAnswerLocked()
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emit(snap)
}

// HandleText replaces the free-text answer draft on a short-answer question.
func (s *Session) HandleText(text string) {
	s.mu.Lock()
	if s.phase != PhaseQuestion || s.engine == nil {
		s.mu.Unlock()
		return
	}
	if !s.engine.SetText(text) {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emit(snap)
}

// HandleSubmit commits the current selection or text when the engine allows
// it. Ineligible submits are ignored.
func (s *Session) HandleSubmit() {
	s.mu.Lock()
	if s.phase != PhaseQuestion || s.engine == nil || !s.engine.Submit() {
		s.mu.Unlock()
		return
	}
	s.recordAnswerLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emit(snap)
}

// Advance moves past an answered question: to the next question, or to
// PhaseFinished after the last one. It is a no-op while the current question
// is unanswered.
func (s *Session) Advance() {
	s.mu.Lock()
	if s.phase != PhaseQuestion || s.engine == nil || !s.engine.Answered() {
		s.mu.Unlock()
		return
	}
	var snap Snapshot
	s.index++
	if s.index >= s.size {
		s.phase = PhaseFinished
		s.engine = nil
		s.lastEvent = fmt.Sprintf("quiz complete: %d/%d correct this run", s.correct, s.answered)
		snap = s.snapshotLocked()
	} else {
		snap = s.loadQuestionLocked()
	}
	s.mu.Unlock()
	s.emit(snap)
}

// Retry re-fetches the current question after a load failure. It also works
// while a fetch is still in flight: the generation counter advances, so the
// superseded response is discarded when it lands.
func (s *Session) Retry() {
	s.mu.Lock()
	if s.phase != PhaseLoadFailed && s.phase != PhaseLoading {
		s.mu.Unlock()
		return
	}
	snap := s.loadQuestionLocked()
	s.mu.Unlock()
	s.emit(snap)
}

// fetchProgress resolves quiz metadata. Failures here are fatal: without
// progress there is nothing to resume.
func (s *Session) fetchProgress() {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	prog, err := s.svc.Progress(ctx, s.quizID)

	s.mu.Lock()
	var snap Snapshot
	switch {
	case errors.Is(err, quizservice.ErrQuizNotFound):
		s.phase = PhaseFailed
		s.lastErr = fmt.Sprintf("quiz %q not found", s.quizID)
		s.logf("start failed: %v", err)
		snap = s.snapshotLocked()
	case err != nil:
		s.phase = PhaseFailed
		s.lastErr = fmt.Sprintf("load quiz %q: %v", s.quizID, err)
		s.logf("start failed: %v", err)
		snap = s.snapshotLocked()
	default:
		s.name = prog.Name
		s.size = prog.Size
		switch {
		case prog.Done || prog.CurrentIndex < 0 || prog.Size == 0:
			s.phase = PhaseFinished
			s.lastEvent = "quiz already complete"
			snap = s.snapshotLocked()
		case prog.CurrentIndex >= prog.Size:
			s.phase = PhaseFailed
			s.lastErr = fmt.Sprintf("quiz %q reports index %d outside size %d", s.quizID, prog.CurrentIndex, prog.Size)
			snap = s.snapshotLocked()
		default:
			s.index = prog.CurrentIndex
			snap = s.loadQuestionLocked()
		}
	}
	s.mu.Unlock()
	s.emit(snap)
}

// loadQuestionLocked begins a fetch for the current index and returns the
// snapshot to publish. Bumping the generation first invalidates any fetch
// still in flight.
func (s *Session) loadQuestionLocked() Snapshot {
	s.gen++
	s.engine = nil
	s.phase = PhaseLoading
	s.lastErr = ""
	s.lastEvent = fmt.Sprintf("loading question %d/%d", s.index+1, s.size)
	go s.fetchQuestion(s.gen, s.index)
	return s.snapshotLocked()
}

// fetchQuestion loads one question and installs its engine, unless a newer
// fetch has superseded this one.
func (s *Session) fetchQuestion(generation uint64, index int) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	problem, err := s.svc.Question(ctx, s.quizID, index)

	s.mu.Lock()
	if generation != s.gen {
		s.staleDrops++
		s.logf("discarded stale response for question %d", index+1)
		s.mu.Unlock()
		return
	}
	var snap Snapshot
	if err != nil {
		s.phase = PhaseLoadFailed
		s.lastErr = fmt.Sprintf("load question %d: %v", index+1, err)
		snap = s.snapshotLocked()
		s.mu.Unlock()
		s.emit(snap)
		return
	}
	engine, err := quiz.Restore(problem)
	if err != nil {
		s.phase = PhaseLoadFailed
		s.lastErr = fmt.Sprintf("load question %d: %v", index+1, err)
		snap = s.snapshotLocked()
		s.mu.Unlock()
		s.emit(snap)
		return
	}
	s.engine = engine
	s.phase = PhaseQuestion
	s.lastEvent = fmt.Sprintf("question %d/%d", index+1, s.size)
	snap = s.snapshotLocked()
	s.mu.Unlock()
	s.emit(snap)
}

// recordAnswerLocked updates run counters for a freshly committed answer and
// uploads it in the background. The session never blocks on the upload and
// never reverts a committed answer: failures are logged and dropped.
func (s *Session) recordAnswerLocked() {
	s.answered++
	verdict := "incorrect"
	if s.engine.Correct() {
		s.correct++
		verdict = "correct"
	}
	s.lastEvent = fmt.Sprintf("question %d answered: %s", s.index+1, verdict)
	s.uploads.Add(1)
	go s.forwardAnswer(s.index, s.engine.Answers())
}

// forwardAnswer uploads one committed answer.
func (s *Session) forwardAnswer(index int, answers []string) {
	defer s.uploads.Done()
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	if _, err := s.svc.SubmitAnswer(ctx, s.quizID, index, answers); err != nil {
		s.logf("record answer for question %d: %v", index+1, err)
	}
}

// Wait blocks until every in-flight answer upload has finished. Surfaces call
// it before tearing down the session context so committed answers are not
// cut off mid-upload; each upload is already bounded by the call timeout.
func (s *Session) Wait() {
	s.uploads.Wait()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:         s.phase,
		QuizID:        s.quizID,
		QuizName:      s.name,
		Size:          s.size,
		Index:         s.index,
		AnsweredCount: s.answered,
		CorrectCount:  s.correct,
		StaleDrops:    s.staleDrops,
		Err:           s.lastErr,
		LastEvent:     s.lastEvent,
	}
	if s.engine != nil {
		snap.Question = s.engine.Question()
		snap.State = s.engine.State()
		snap.Marks = s.engine.Marks()
		snap.Selection = s.engine.Selection()
		snap.Text = s.engine.Text()
		snap.CanSubmit = s.engine.CanSubmit()
		snap.Answered = s.engine.Answered()
		snap.Correct = s.engine.Correct()
	}
	return snap
}

// emit publishes a snapshot outside the session mutex.
func (s *Session) emit(snap Snapshot) {
	if s.obs != nil {
		s.obs.OnSnapshot(snap)
	}
}

func (s *Session) logf(format string, args ...interface{}) {
	if s.verbose == nil {
		return
	}
	fmt.Fprintf(s.verbose, format+"\n", args...)
}

// lockedWriter serializes writes to an underlying writer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// Write writes to the underlying writer with a mutex guard.
func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
