package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/analyst-desk/analyst/internal/constants"
	"github.com/analyst-desk/analyst/internal/render"
	"github.com/analyst-desk/analyst/internal/session"
)

// Session is the part of *session.Session the UI drives.
type Session interface {
	Submit(ctx context.Context, text string) (session.Submission, error)
	Updates() <-chan session.Snapshot
}

// Options tunes the layout and rendering.
type Options struct {
	// LeftPercent is the conversation panel's share of the width.
	LeftPercent int
	// Style is passed to the result renderer. Empty picks one automatically.
	Style string
	// Mouse enables clicking the send button. Only set it when the program
	// owns the whole screen; inline rendering has no fixed bottom row.
	Mouse bool
}

// Model is the Bubbletea model of the two-panel chat.
type Model struct {
	ctx     context.Context
	session Session
	opts    Options

	// UI state
	input        textinput.Model
	spinner      spinner.Model
	spinning     bool
	conversation viewport.Model
	result       viewport.Model
	showHelp     bool
	lastError    error

	// Latest session state
	snap session.Snapshot

	// Rendering
	renderer *render.Renderer
	width    int
	height   int

	quitting bool
}

// NewModel creates the chat model. ctx bounds submissions made from the UI.
func NewModel(ctx context.Context, sess Session, opts Options) (Model, error) {
	if opts.LeftPercent <= 0 || opts.LeftPercent >= 100 {
		opts.LeftPercent = 30
	}

	ti := textinput.New()
	ti.Placeholder = "Ask the analyst..."
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = constants.InputCharLimit

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := Model{
		ctx:          ctx,
		session:      sess,
		opts:         opts,
		input:        ti,
		spinner:      s,
		conversation: viewport.New(20, 10),
		result:       viewport.New(20, 10),
	}

	if err := m.resize(80, 24); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Init initializes the model (Bubbletea interface).
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		waitForSnapshot(m.session.Updates()),
	)
}
