package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/analyst-desk/analyst/internal/session"
)

// waitForSnapshot blocks until the session publishes a new state. The update
// loop re-arms it after every snapshot.
func waitForSnapshot(updates <-chan session.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return sessionClosedMsg{}
		}
		return snapshotMsg{snap: snap}
	}
}
