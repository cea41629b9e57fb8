package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/mcmarket/mcmarket-client/models"
)

// registerRoleRow is the focus position of the buyer/seller selector. It sits
// after the five text inputs in the tab order.
const registerRoleRow = 5

var registerRoles = []models.Role{models.RoleBuyer, models.RoleSeller}

// registerModel is the account creation form. Phone is optional, everything
// else is required. The role selector is part of the tab cycle and is
// switched with the left/right keys.
type registerModel struct {
	inputs     []textinput.Model
	focus      int
	roleIdx    int
	submitting bool
	errMsg     string
}

func newRegisterModel() registerModel {
	name := textinput.New()
	name.Placeholder = "full name"
	name.CharLimit = 120
	name.Width = 40
	name.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40

	phone := textinput.New()
	phone.Placeholder = "phone (optional)"
	phone.CharLimit = 20
	phone.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	repeat := textinput.New()
	repeat.Placeholder = "repeat password"
	repeat.CharLimit = 256
	repeat.Width = 40
	repeat.EchoMode = textinput.EchoPassword
	repeat.EchoCharacter = '*'

	return registerModel{inputs: []textinput.Model{name, email, phone, password, repeat}}
}

func (m registerModel) role() models.Role {
	return registerRoles[m.roleIdx]
}

func (m registerModel) View() string {
	labels := []string{"Name    ", "Email   ", "Phone   ", "Password", "Repeat  "}

	var b strings.Builder
	for i, label := range labels {
		b.WriteString(label)
		b.WriteString(" [")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}

	roleCursor := "  "
	if m.focus == registerRoleRow {
		roleCursor = "> "
	}
	b.WriteString(roleCursor)
	b.WriteString("I want to  < ")
	b.WriteString(string(m.role()))
	b.WriteString(" >\n")

	if m.submitting {
		b.WriteString("\nCreating your account...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("CREATE AN ACCOUNT", strings.TrimRight(b.String(), "\n"),
		"esc: back │ tab: next field │ left/right: role │ enter: submit")
}

func focusNextRegister(m registerModel) registerModel {
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
	}
	m.focus = (m.focus + 1) % (len(m.inputs) + 1)
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Focus()
	}
	return m
}

func focusPrevRegister(m registerModel) registerModel {
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
	}
	m.focus = (m.focus - 1 + len(m.inputs) + 1) % (len(m.inputs) + 1)
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Focus()
	}
	return m
}
