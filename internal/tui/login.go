package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// loginModel is the email/password form. redirect carries the path the user
// originally asked for, so a successful login resumes that navigation
// instead of landing on the dashboard.
type loginModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	redirect   string
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return loginModel{inputs: []textinput.Model{email, password}}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("Email    [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\nSigning in...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("LOG IN", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}
