package tui

import (
	"strings"

	"github.com/mcmarket/mcmarket-client/internal/guard"
)

// verifyPromptModel is the view substituted for verification-gated content
// while the identity is not yet verified. returnTo is the path the user
// asked for; a successful flow resumes that navigation.
type verifyPromptModel struct {
	prompt   guard.VerifyPromptKind
	returnTo string
	url      string
	starting bool
	status   string
	errMsg   string
}

func (m verifyPromptModel) View() string {
	var b strings.Builder

	switch m.prompt {
	case guard.PromptWait:
		b.WriteString("Your documents are being reviewed by our verification\n")
		b.WriteString("partner. This usually takes a few minutes.\n")
	case guard.PromptRetry:
		b.WriteString("The verification could not be completed and needs more\n")
		b.WriteString("input from you.\n")
	default:
		b.WriteString("This action requires a verified identity. Verification is\n")
		b.WriteString("done once, in your browser, through our verification\n")
		b.WriteString("partner.\n")
	}

	if m.starting {
		b.WriteString("\nOpening a verification session...\n")
	}
	if m.url != "" {
		b.WriteString("\nVerification link:\n")
		b.WriteString(m.url)
		b.WriteString("\n")
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

	return renderPage("VERIFY YOUR IDENTITY", strings.TrimRight(b.String(), "\n"), m.hotKeys())
}

func (m verifyPromptModel) hotKeys() string {
	parts := make([]string, 0, 4)
	switch m.prompt {
	case guard.PromptWait:
		parts = append(parts, "r: refresh status")
	case guard.PromptRetry:
		parts = append(parts, "enter: try again", "r: refresh status")
	default:
		parts = append(parts, "enter: start verification")
	}
	if m.url != "" {
		parts = append(parts, "c: copy link", "r: refresh status")
	}
	parts = append(parts, "esc: back")
	return strings.Join(parts, " │ ")
}
