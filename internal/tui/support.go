package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/mcmarket/mcmarket-client/models"
)

// supportModel is the support chat screen. The thread is opened lazily on
// the first message; pending holds that message until the thread exists.
type supportModel struct {
	input    textinput.Model
	thread   *models.SupportThread
	messages []models.SupportMessage
	sending  bool
	pending  string
	errMsg   string
}

func newSupportModel() supportModel {
	input := textinput.New()
	input.Placeholder = "type a message"
	input.CharLimit = 500
	input.Width = 50
	input.Focus()

	return supportModel{input: input}
}

func (m supportModel) View() string {
	var b strings.Builder

	if m.thread == nil {
		b.WriteString("Describe your problem and we will open a conversation\n")
		b.WriteString("with the support team.\n")
	} else {
		b.WriteString("Conversation: ")
		b.WriteString(m.thread.Subject)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, message := range m.messages {
		b.WriteString("you  │ ")
		b.WriteString(message.Body)
		b.WriteString("\n")
	}
	if len(m.messages) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("> ")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.sending {
		b.WriteString("\nSending...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("SUPPORT", strings.TrimRight(b.String(), "\n"), "enter: send │ esc: back")
}
