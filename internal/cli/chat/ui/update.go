package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model (Bubbletea interface).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress &&
			msg.Button == tea.MouseButtonLeft &&
			m.onSendButton(msg.X, msg.Y) {
			return m.submit()
		}
		return m, nil

	case tea.WindowSizeMsg:
		if err := m.resize(msg.Width, msg.Height); err != nil {
			m.lastError = err
			m.refresh()
		}
		return m, nil

	case snapshotMsg:
		m.snap = msg.snap
		m.refresh()
		cmds := []tea.Cmd{waitForSnapshot(m.session.Updates())}
		if m.snap.Pending && !m.spinning {
			m.spinning = true
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.snap.Pending {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.result.SetContent(m.resultContent())
		return m, cmd

	case sessionClosedMsg:
		m.quitting = true
		return m, tea.Quit

	}

	// Update text input.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		return m.submit()

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.result, cmd = m.result.Update(msg)
		return m, cmd
	}

	// Pass through to text input.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the draft. Blank drafts are ignored; anything else clears the
// input right away, before the reply arrives. Submit runs on the update loop
// so messages are appended in the order they were entered; it returns once
// the session has recorded them, and the new state arrives as a snapshot.
func (m Model) submit() (tea.Model, tea.Cmd) {
	draft := m.input.Value()
	if strings.TrimSpace(draft) == "" {
		return m, nil
	}

	if strings.HasPrefix(strings.TrimSpace(draft), "/") {
		return m.handleInlineCommand(draft)
	}

	m.input.Reset()
	m.lastError = nil
	if _, err := m.session.Submit(m.ctx, draft); err != nil {
		m.lastError = err
		m.refresh()
	}
	return m, nil
}

// handleInlineCommand processes inline commands like /help, /clear, /exit.
func (m Model) handleInlineCommand(cmd string) (tea.Model, tea.Cmd) {
	m.input.Reset()

	switch strings.ToLower(strings.TrimSpace(cmd)) {
	case "/help":
		m.showHelp = true
		m.refresh()
		return m, nil

	case "/clear":
		m.showHelp = false
		m.lastError = nil
		m.refresh()
		return m, tea.ClearScreen

	case "/exit", "/quit":
		m.quitting = true
		return m, tea.Quit

	default:
		m.lastError = fmt.Errorf("unknown command: %s (try /help)", strings.TrimSpace(cmd))
		m.refresh()
		return m, nil
	}
}
