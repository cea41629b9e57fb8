package tui

import (
	"fmt"
	"strings"
)

// Views behind the verification gate plus the shared deal room screen. They
// only ever render after the route guard has allowed the navigation, so they
// can assume an identity is present.

func (m appModel) viewDeals() string {
	snapshot := m.services.Session.Snapshot()
	if snapshot.Identity == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Deal rooms hold the conversation, documents, and escrow\n")
	b.WriteString("status of an authority transfer in progress.\n\n")
	b.WriteString(fmt.Sprintf("Deals you have closed so far: %d\n", snapshot.Identity.CompletedDeals))
	b.WriteString("\nNo active deal rooms right now.\n")

	return renderPage("DEAL ROOMS", strings.TrimRight(b.String(), "\n"), "esc: back")
}

func (m appModel) viewCreateListing() string {
	snapshot := m.services.Session.Snapshot()
	if snapshot.Identity == nil {
		return ""
	}
	identity := *snapshot.Identity

	var b strings.Builder
	b.WriteString("List your motor carrier operating authority for transfer.\n")
	b.WriteString("Publishing a listing consumes one listing credit.\n\n")
	b.WriteString(fmt.Sprintf("Listing credits left: %d of %d\n",
		identity.CreditsTotal-identity.CreditsUsed, identity.CreditsTotal))
	if identity.CreditsTotal-identity.CreditsUsed <= 0 {
		b.WriteString("\n" + errorStyle.Render("You are out of listing credits.") + "\n")
	}

	return renderPage("CREATE LISTING", strings.TrimRight(b.String(), "\n"), "esc: back")
}

func (m appModel) viewMakeOffer() string {
	snapshot := m.services.Session.Snapshot()
	if snapshot.Identity == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Offers are binding once the seller accepts: the amount is\n")
	b.WriteString("moved to escrow and a deal room opens for the transfer.\n\n")
	b.WriteString(fmt.Sprintf("Your trust score: %.1f\n", snapshot.Identity.TrustScore))

	return renderPage("MAKE AN OFFER", strings.TrimRight(b.String(), "\n"), "esc: back")
}
