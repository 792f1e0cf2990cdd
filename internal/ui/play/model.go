package play

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"recall/internal/session"
	"recall/pkg/quizservice"
)

// Options configures the live play model.
type Options struct {
	NoColor bool
}

// Model renders an interactive quiz attempt using Bubble Tea. Key input is
// translated into session events; the session answers with snapshots on the
// events channel, so the model itself holds no quiz logic.
type Model struct {
	sess     *session.Session
	events   <-chan session.Snapshot
	snap     session.Snapshot
	spin     spinner.Model
	input    textinput.Model
	width    int
	noColor  bool
	quitting bool
}

// NewModel constructs a play model for a session and its snapshot stream.
func NewModel(sess *session.Session, events <-chan session.Snapshot, opts Options) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	if !opts.NoColor {
		spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	}
	input := textinput.New()
	input.Placeholder = "your answer"
	input.Prompt = "> "
	input.CharLimit = 512
	return Model{
		sess:    sess,
		events:  events,
		snap:    sess.Snapshot(),
		spin:    spin,
		input:   input,
		noColor: opts.NoColor,
	}
}

// Init waits for the first snapshot and starts the loading spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.events), m.spin.Tick, textinput.Blink)
}

// Update consumes snapshots, spinner ticks, and key input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		if width := typed.Width - 4; width > 20 {
			m.input.Width = width
		}
		return m, nil
	case snapshotMsg:
		var cmd tea.Cmd
		m, cmd = m.applySnapshot(typed.Snapshot)
		return m, tea.Batch(waitForSnapshot(m.events), cmd)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(typed)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applySnapshot swaps in the new session state and keeps the text input in
// step: focused and empty for a fresh short-answer question, blurred
// everywhere else.
func (m Model) applySnapshot(snap session.Snapshot) (Model, tea.Cmd) {
	previous := m.snap
	m.snap = snap
	if typingSnapshot(snap) {
		var cmd tea.Cmd
		if previous.Phase != session.PhaseQuestion || previous.Index != snap.Index {
			m.input.Reset()
		}
		if !m.input.Focused() {
			cmd = m.input.Focus()
		}
		return m, cmd
	}
	if m.input.Focused() {
		m.input.Blur()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if typingSnapshot(m.snap) {
		if msg.Type == tea.KeyEnter {
			m.sess.HandleText(m.input.Value())
			m.sess.HandleSubmit()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "r":
		m.sess.Retry()
		return m, nil
	case "enter":
		return m.handleEnter()
	}
	if letter := choiceKey(msg); letter != "" {
		m.sess.HandleChoice(letter)
	}
	return m, nil
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.snap.Phase {
	case session.PhaseQuestion:
		if m.snap.Answered {
			m.sess.Advance()
		} else if m.snap.CanSubmit {
			m.sess.HandleSubmit()
		}
	case session.PhaseLoadFailed:
		m.sess.Retry()
	case session.PhaseFinished, session.PhaseFailed:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the play screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	parts := []string{renderHeader(m.snap, m.noColor)}
	parts = append(parts, renderBody(m)...)
	if hints := renderHints(m.snap, m.noColor); hints != "" {
		parts = append(parts, "", hints)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// typingSnapshot reports whether key input belongs to the text field.
func typingSnapshot(snap session.Snapshot) bool {
	return snap.Phase == session.PhaseQuestion &&
		snap.Question.Kind == quizservice.KindShortAnswer &&
		!snap.Answered
}

// choiceKey maps a single letter keypress to a choice letter.
func choiceKey(msg tea.KeyMsg) string {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return ""
	}
	r := msg.Runes[0]
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r < 'A' || r > 'Z' {
		return ""
	}
	return string(r)
}
