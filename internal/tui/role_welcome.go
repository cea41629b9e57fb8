package tui

import (
	"fmt"
	"strings"

	"github.com/mcmarket/mcmarket-client/models"
)

// roleWelcomeModel plays the one-time welcome sequence after the first
// sign-in of a buyer or seller account. The lines reveal one per tick; the
// flow is marked seen once it finishes or is skipped.
type roleWelcomeModel struct {
	role  models.Role
	frame int
}

func newRoleWelcomeModel(role models.Role) roleWelcomeModel {
	return roleWelcomeModel{role: role}
}

func welcomeFrames(role models.Role) []string {
	if role == models.RoleSeller {
		return []string{
			"Welcome to the marketplace.",
			"List your operating authority and reach vetted buyers.",
			"Every transfer closes through escrow.",
			"Let's get your first listing up.",
		}
	}
	return []string{
		"Welcome to the marketplace.",
		"Browse active authority listings from verified sellers.",
		"Make offers with confidence, funds sit in escrow until closing.",
		"Let's find your authority.",
	}
}

func (m roleWelcomeModel) frames() []string {
	return welcomeFrames(m.role)
}

func (m roleWelcomeModel) done() bool {
	return m.frame >= len(m.frames())
}

func (m roleWelcomeModel) View() string {
	frames := m.frames()

	var b strings.Builder
	for i := 0; i < m.frame && i < len(frames); i++ {
		b.WriteString(bannerStyle.Render(frames[i]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(counterStyle.Render(fmt.Sprintf("%d/%d", min(m.frame, len(frames)), len(frames))))

	return renderPage("WELCOME", b.String(), "s: skip")
}
