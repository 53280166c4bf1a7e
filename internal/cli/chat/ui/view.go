package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/analyst-desk/analyst/internal/constants"
)

// Panel texts.
const (
	EmptyConversation = "Start chatting with the bot..."
	EmptyResult       = "Nothing to display"
	pendingText       = "Waiting for the analyst..."
)

const errorMarker = constants.ErrorMarker

const helpText = `Commands:
  /help   Show this help
  /clear  Dismiss notices and redraw
  /exit   Quit

Keys:
  Enter   Send the message
  Ctrl+C  Quit
  Ctrl+D  Quit`

const mouseHelpText = `Click [ Send ] to send with the mouse.`

var (
	// Styles.
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	dividerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("241"))
)

// View renders the UI (Bubbletea interface).
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, m.leftPanel(), m.rightPanel())
}

func (m Model) leftPanel() string {
	inner := m.leftWidth() - 1

	header := headerStyle.Render("Conversation") + hintStyle.Render("  /help")
	separator := hintStyle.Render(strings.Repeat("─", inner))

	inputCols := inner - lipgloss.Width(sendButton) - 1
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(inputCols).MaxWidth(inputCols).Render(m.input.View()),
		" ",
		buttonStyle.Render(sendButton),
	)

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.conversation.View(),
		separator,
		row,
	)

	return dividerStyle.
		Width(inner).
		Height(m.height).
		MaxHeight(m.height).
		Render(body)
}

func (m Model) rightPanel() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Result"),
		m.result.View(),
	)

	return lipgloss.NewStyle().
		PaddingLeft(1).
		Width(m.rightWidth()).
		Height(m.height).
		MaxHeight(m.height).
		Render(body)
}
