package tui

import (
	"github.com/mcmarket/mcmarket-client/internal/guard"
	"github.com/mcmarket/mcmarket-client/models"
)

type welcomeAction int

const (
	welcomeGoTo welcomeAction = iota
	welcomeLogout
	welcomeQuit
)

type welcomeItem struct {
	label  string
	action welcomeAction
	path   string
}

type welcomeModel struct {
	items []welcomeItem
	idx   int
}

// newWelcomeModel builds the landing menu for the current session state: the
// signed-in menu links straight to the role's dashboard, the anonymous one to
// the auth screens.
func newWelcomeModel(snapshot models.SessionSnapshot) welcomeModel {
	if snapshot.Authenticated() {
		return welcomeModel{items: []welcomeItem{
			{label: "Open my dashboard", action: welcomeGoTo, path: guard.HomeFor(snapshot.Identity.Role)},
			{label: "Deal rooms", action: welcomeGoTo, path: guard.PathDeals},
			{label: "Support", action: welcomeGoTo, path: guard.PathSupport},
			{label: "Log out", action: welcomeLogout},
		}}
	}

	return welcomeModel{items: []welcomeItem{
		{label: "Log in", action: welcomeGoTo, path: guard.PathLogin},
		{label: "Create an account", action: welcomeGoTo, path: guard.PathRegister},
		{label: "Terms of service", action: welcomeGoTo, path: guard.PathLegal},
		{label: "Quit", action: welcomeQuit},
	}}
}

func (m welcomeModel) View() string {
	data := bannerStyle.Render("Buy and sell motor carrier operating authorities.") + "\n\n"
	for i, item := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		data += cursor + item.label + "\n"
	}
	return renderPage("MC AUTHORITY MARKETPLACE", data, "up/down: move │ enter: select")
}
