package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// emailVerifyModel is the post-registration step that confirms the account's
// email address with the code from the verification email. Skippable; the
// prompt comes back through the resend action later.
type emailVerifyModel struct {
	input      textinput.Model
	submitting bool
	status     string
	errMsg     string
}

func newEmailVerifyModel() emailVerifyModel {
	input := textinput.New()
	input.Placeholder = "confirmation code"
	input.CharLimit = 64
	input.Width = 40
	input.Focus()

	return emailVerifyModel{input: input}
}

func (m emailVerifyModel) View() string {
	var b strings.Builder
	b.WriteString("We sent a confirmation code to your email address.\n")
	b.WriteString("Paste it below to confirm the address.\n\n")
	b.WriteString("Code [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\nConfirming...\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("CONFIRM YOUR EMAIL", strings.TrimRight(b.String(), "\n"),
		"enter: confirm │ ctrl+r: resend the email │ esc: skip for now")
}
