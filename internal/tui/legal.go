package tui

import "strings"

const legalText = `These terms govern your use of the MC Authority Marketplace.

1. Listings describe federal motor carrier operating authorities offered
   for transfer. The marketplace brokers the transfer, it does not own
   the authorities listed.
2. Offers are binding once accepted by the seller. Funds are held in
   escrow until the transfer is recorded with the regulator.
3. You are responsible for the accuracy of the information in your
   profile and listings. Misrepresentation leads to account removal.
4. Identity verification through our verification partner is required
   before listing an authority or making an offer.`

// legalModel renders the marketplace terms. In the onboarding flow
// (required) the user must tick the acceptance box before continuing; as a
// public page it is read only.
type legalModel struct {
	required bool
	accepted bool
	errMsg   string
}

func (m legalModel) View() string {
	var b strings.Builder
	b.WriteString(legalText)
	b.WriteString("\n")

	hotKeys := "esc: back"
	if m.required {
		box := "[ ]"
		if m.accepted {
			box = "[x]"
		}
		b.WriteString("\n")
		b.WriteString(box)
		b.WriteString(" I have read and accept the terms\n")
		hotKeys = "space: toggle │ enter: continue"
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("TERMS OF SERVICE", strings.TrimRight(b.String(), "\n"), hotKeys)
}
