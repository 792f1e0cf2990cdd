package play

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"recall/internal/session"
)

// Controller feeds session snapshots into the live UI and implements
// session.Observer. Construct it first, hand it to session.New, then call
// Run with the session once it is started.
type Controller struct {
	events    chan session.Snapshot
	done      chan struct{}
	stdout    io.Writer
	opts      Options
	closeOnce sync.Once
}

// NewController prepares the observer side of the live UI.
func NewController(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Controller{
		events: make(chan session.Snapshot, 256),
		done:   make(chan struct{}),
		stdout: stdout,
		opts:   opts,
	}
}

// OnSnapshot enqueues a snapshot without blocking the session. Only the
// latest state matters, so a full queue drops the update; the next snapshot
// repaints everything. Snapshots arriving after Close are dropped.
func (c *Controller) OnSnapshot(snap session.Snapshot) {
	if c == nil {
		return
	}
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.events <- snap:
	default:
	}
}

// Run starts the Bubble Tea program and blocks until the user exits.
func (c *Controller) Run(sess *session.Session) error {
	model := NewModel(sess, c.events, c.opts)
	program := tea.NewProgram(model, tea.WithOutput(c.stdout), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Close stops snapshot delivery. The events channel itself stays open; the
// session may still publish from in-flight fetches after the UI has exited.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
