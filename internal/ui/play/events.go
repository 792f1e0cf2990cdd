package play

import (
	tea "github.com/charmbracelet/bubbletea"

	"recall/internal/session"
)

// snapshotMsg wraps a session snapshot for Bubble Tea.
type snapshotMsg struct {
	Snapshot session.Snapshot
}

// waitForSnapshot blocks until the session publishes a snapshot.
func waitForSnapshot(events <-chan session.Snapshot) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		snap, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return snapshotMsg{Snapshot: snap}
	}
}
