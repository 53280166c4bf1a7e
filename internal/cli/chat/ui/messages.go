package ui

import "github.com/analyst-desk/analyst/internal/session"

// snapshotMsg carries the latest session state.
type snapshotMsg struct {
	snap session.Snapshot
}

// sessionClosedMsg is sent once the session stops publishing updates.
type sessionClosedMsg struct{}
