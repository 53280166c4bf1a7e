package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/analyst-desk/analyst/internal/conversation"
	"github.com/analyst-desk/analyst/internal/render"
)

// Rows reserved around the viewports.
const (
	headerRows    = 1
	separatorRows = 1
	inputRows     = 1
)

const sendButton = "[ Send ]"

const glamourMargin = 4

// leftWidth is the full width of the conversation panel including its
// divider column.
func (m Model) leftWidth() int {
	w := m.width * m.opts.LeftPercent / 100
	return max(w, 12)
}

func (m Model) rightWidth() int {
	return max(m.width-m.leftWidth(), 10)
}

// sendButtonX is the first column of the send button.
func (m Model) sendButtonX() int {
	return m.leftWidth() - 1 - lipgloss.Width(sendButton)
}

// onSendButton reports whether a screen cell lies on the send button.
func (m Model) onSendButton(x, y int) bool {
	if !m.opts.Mouse {
		return false
	}
	start := m.sendButtonX()
	return y == m.height-1 && x >= start && x < start+lipgloss.Width(sendButton)
}

// resize lays the panels out for a terminal of w x h cells. The renderer is
// rebuilt when the result panel's wrap width changes.
func (m *Model) resize(w, h int) error {
	m.width = w
	m.height = h

	inner := m.leftWidth() - 1
	m.conversation.Width = inner
	m.conversation.Height = max(h-headerRows-separatorRows-inputRows, 1)
	m.input.Width = max(inner-lipgloss.Width(m.input.Prompt)-lipgloss.Width(sendButton)-2, 1)

	m.result.Width = max(m.rightWidth()-2, 1)
	m.result.Height = max(h-headerRows, 1)

	// Glamour indents documents, so wrap short of the panel edge.
	wrap := max(m.result.Width-glamourMargin, 10)
	if m.renderer == nil || m.renderer.Width() != wrap {
		r, err := render.New(render.Options{Width: wrap, Style: m.opts.Style})
		if err != nil {
			return err
		}
		m.renderer = r
	}

	m.refresh()
	return nil
}

// refresh rebuilds both viewports from the current snapshot. The
// conversation always follows the newest message.
func (m *Model) refresh() {
	m.conversation.SetContent(m.conversationContent())
	m.conversation.GotoBottom()
	m.result.SetContent(m.resultContent())
}

func (m Model) conversationContent() string {
	width := m.conversation.Width
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	if m.snap.Empty() {
		b.WriteString(wrap.Render(hintStyle.Render(EmptyConversation)))
		b.WriteString("\n")
	}

	for _, msg := range m.snap.Messages {
		switch msg.Role {
		case conversation.RoleUser:
			b.WriteString(wrap.Render(userStyle.Render("You: ") + msg.Text))
		case conversation.RoleAssistant:
			text := msg.Text
			if text == errorMarker {
				text = errorStyle.Render(text)
			}
			b.WriteString(wrap.Render(assistantStyle.Render("Analyst: ") + text))
		}
		b.WriteString("\n\n")
	}

	if m.showHelp {
		b.WriteString(wrap.Render(hintStyle.Render(helpText)))
		b.WriteString("\n")
		if m.opts.Mouse {
			b.WriteString("\n")
			b.WriteString(wrap.Render(hintStyle.Render(mouseHelpText)))
			b.WriteString("\n")
		}
	}

	if m.lastError != nil {
		b.WriteString(wrap.Render(errorStyle.Render(fmt.Sprintf("✗ %v", m.lastError))))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// resultContent picks exactly one right-panel state: empty conversation,
// pending, or the last result.
func (m Model) resultContent() string {
	switch {
	case m.snap.Empty():
		return hintStyle.Render(EmptyResult)
	case m.snap.Pending:
		return fmt.Sprintf("%s %s", m.spinner.View(), hintStyle.Render(pendingText))
	default:
		return m.renderer.Result(m.snap.Result)
	}
}
