package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"recall/internal/quiz"
	"recall/internal/session"
	"recall/pkg/quizservice"
)

// Stdin feeds the plain play loop; tests swap it for scripted input.
var Stdin io.Reader = os.Stdin

// playPlain runs a line-oriented surface for dumb terminals and pipes. One
// input line per action: a choice letter toggles or answers, an empty line
// submits or advances, /r retries a failed load, /q quits.
func playPlain(svc quizservice.Service, opts playOptions, stdout, stderr io.Writer) int {
	mailbox := newSnapshotMailbox()
	sess, err := session.New(session.Config{
		Service:  svc,
		QuizID:   opts.quizID,
		Observer: mailbox,
		Verbose:  opts.verbose,
		Timeout:  opts.timeout,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to prepare session: %v\n", err)
		return ExitError
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// Runs before cancel: committed answers finish uploading on their own
	// timeout instead of dying with the context.
	defer sess.Wait()
	sess.Start(ctx)

	waitFor := settleTimeout(opts.timeout)
	scanner := bufio.NewScanner(Stdin)
	var printed uint64
	for {
		snap, seq := mailbox.current()
		if snap.Loading() {
			var ok bool
			snap, seq, ok = mailbox.settle(waitFor)
			if !ok {
				fmt.Fprintln(stderr, "timed out waiting for the quiz service")
				return ExitError
			}
		}
		if seq != printed {
			printSnapshot(stdout, snap)
			printed = seq
		}
		switch snap.Phase {
		case session.PhaseFinished:
			return ExitOK
		case session.PhaseFailed:
			fmt.Fprintf(stderr, "%s\n", snap.Err)
			return ExitError
		}

		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(stdout)
			return ExitOK
		}
		if quit := applyLine(sess, snap, scanner.Text(), stdout); quit {
			return ExitOK
		}
	}
}

// settleTimeout bounds how long the loop waits for the session to leave a
// loading phase. Service calls already time out on their own; this only has
// to outlast them.
func settleTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		timeout = session.DefaultTimeout
	}
	return timeout + 2*time.Second
}

// applyLine feeds one input line to the session. It returns true when the
// user asked to quit. Eligibility is re-checked inside the session, so a
// snapshot that went stale between prompt and input only misroutes a hint.
func applyLine(sess *session.Session, snap session.Snapshot, line string, stdout io.Writer) bool {
	trimmed := strings.TrimSpace(line)
	switch trimmed {
	case "/q", "/quit":
		return true
	case "/r", "/retry":
		sess.Retry()
		return false
	}

	switch snap.Phase {
	case session.PhaseQuestion:
		if snap.Answered {
			if trimmed == "" {
				sess.Advance()
			} else {
				fmt.Fprintln(stdout, "(empty line continues, /q quits)")
			}
			return false
		}
		if snap.Question.Kind == quizservice.KindShortAnswer {
			if trimmed == "" {
				fmt.Fprintln(stdout, "(type an answer first, or /q to quit)")
				return false
			}
			sess.HandleText(line)
			sess.HandleSubmit()
			return false
		}
		if trimmed == "" {
			if snap.CanSubmit {
				sess.HandleSubmit()
			} else {
				fmt.Fprintln(stdout, "(pick at least one letter first)")
			}
			return false
		}
		if letter := parseChoiceLine(trimmed); letter != "" {
			sess.HandleChoice(letter)
		} else {
			fmt.Fprintln(stdout, "(answer with a single choice letter, or /q)")
		}
	case session.PhaseLoadFailed:
		if trimmed == "" {
			sess.Retry()
		} else {
			fmt.Fprintln(stdout, "(/r retries, /q quits)")
		}
	}
	return false
}

// parseChoiceLine accepts a single latin letter and uppercases it.
func parseChoiceLine(s string) string {
	if len(s) != 1 {
		return ""
	}
	c := s[0]
	switch {
	case c >= 'a' && c <= 'z':
		return string(c - 'a' + 'A')
	case c >= 'A' && c <= 'Z':
		return string(c)
	}
	return ""
}

// printSnapshot writes the session state as plain lines, ending with an input
// hint for interactive phases.
func printSnapshot(w io.Writer, snap session.Snapshot) {
	switch snap.Phase {
	case session.PhaseQuestion:
		printQuestion(w, snap)
	case session.PhaseLoadFailed:
		fmt.Fprintf(w, "load failed: %s\n", snap.Err)
		fmt.Fprintln(w, "(/r retries, /q quits)")
	case session.PhaseFinished:
		if snap.LastEvent != "" {
			fmt.Fprintln(w, snap.LastEvent)
		} else {
			fmt.Fprintln(w, "quiz complete")
		}
	case session.PhaseFailed:
		fmt.Fprintf(w, "error: %s\n", snap.Err)
	}
}

func printQuestion(w io.Writer, snap session.Snapshot) {
	fmt.Fprintf(w, "\nQ%d/%d. %s\n", snap.Index+1, snap.Size, snap.Question.Text)
	if snap.Question.Kind == quizservice.KindShortAnswer {
		if snap.Answered {
			fmt.Fprintf(w, "your answer: %s\n", snap.Text)
			if len(snap.Question.Answer) > 0 {
				fmt.Fprintf(w, "reference: %s\n", strings.Join(snap.Question.Answer, " "))
			}
		}
	} else {
		for _, mark := range snap.Marks {
			fmt.Fprintf(w, "  %s %s. %s\n", plainMarker(mark.Mark, snap.Answered), mark.Choice.Letter, mark.Choice.Text)
		}
	}
	if snap.Answered {
		verdict := "wrong"
		if snap.Correct {
			verdict = "correct"
		}
		fmt.Fprintf(w, "verdict: %s\n", verdict)
		if snap.Question.Explanation != "" {
			fmt.Fprintf(w, "explain: %s\n", snap.Question.Explanation)
		}
	}
	fmt.Fprintln(w, questionHint(snap))
}

func questionHint(snap session.Snapshot) string {
	switch {
	case snap.Answered:
		return "(empty line continues, /q quits)"
	case snap.Question.Kind == quizservice.KindShortAnswer:
		return "(type your answer and press enter, /q quits)"
	case snap.Question.Kind == quizservice.KindSingleChoice:
		return "(answer with a choice letter, /q quits)"
	case snap.CanSubmit:
		return "(letters toggle, empty line submits, /q quits)"
	default:
		return "(letters toggle, pick at least one, /q quits)"
	}
}

// plainMarker mirrors the live UI markers without styling.
func plainMarker(mark quiz.Mark, answered bool) string {
	if !answered {
		if mark == quiz.MarkSelected {
			return "[x]"
		}
		return "[ ]"
	}
	switch mark {
	case quiz.MarkCorrect:
		return "[+]"
	case quiz.MarkWrong:
		return "[x]"
	case quiz.MarkMissing:
		return "[!]"
	default:
		return "[ ]"
	}
}

// snapshotMailbox hands the most recent session snapshot to the prompt loop.
// The session can publish faster than the loop consumes; only the newest
// state matters.
type snapshotMailbox struct {
	mu     sync.Mutex
	latest session.Snapshot
	seq    uint64
	wake   chan struct{}
}

func newSnapshotMailbox() *snapshotMailbox {
	return &snapshotMailbox{wake: make(chan struct{}, 1)}
}

// OnSnapshot implements session.Observer without blocking the session.
func (m *snapshotMailbox) OnSnapshot(snap session.Snapshot) {
	m.mu.Lock()
	m.latest = snap
	m.seq++
	m.mu.Unlock()
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// current returns the latest snapshot and its sequence number.
func (m *snapshotMailbox) current() (session.Snapshot, uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest, m.seq
}

// settle blocks until the session publishes a state that is not loading. The
// boolean reports whether it managed to within the timeout.
func (m *snapshotMailbox) settle(timeout time.Duration) (session.Snapshot, uint64, bool) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		snap, seq := m.current()
		if !snap.Loading() {
			return snap, seq, true
		}
		select {
		case <-m.wake:
		case <-deadline.C:
			snap, seq = m.current()
			return snap, seq, !snap.Loading()
		}
	}
}
