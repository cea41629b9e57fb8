package tui

// authRequiredModel is the informational view shown when an anonymous user
// reaches verification-gated content. Unlike the login redirect the
// requested path stays put, carried in returnTo by the links below.
type authRequiredModel struct {
	returnTo string
	idx      int
}

var authRequiredItems = []string{"Log in", "Create an account"}

func (m authRequiredModel) View() string {
	data := "You need an account to view this page.\n\n"
	for i, item := range authRequiredItems {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		data += cursor + item + "\n"
	}
	return renderPage("SIGN IN REQUIRED", data, "up/down: move │ enter: select │ esc: back")
}
