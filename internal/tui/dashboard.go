package tui

import (
	"fmt"
	"strings"

	"github.com/mcmarket/mcmarket-client/models"
)

// dashboardModel holds the transient status line of the dashboard screens;
// the account data itself always renders from the live session snapshot.
type dashboardModel struct {
	status string
}

func identityLines(identity models.Identity, completion int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Name            %s\n", valueOrDash(identity.Name)))
	b.WriteString(fmt.Sprintf("Email           %s\n", valueOrDash(identity.Email)))
	b.WriteString(fmt.Sprintf("Verification    %s\n", verificationLabel(identity.VerificationStatus)))
	b.WriteString(fmt.Sprintf("Trust score     %.1f\n", identity.TrustScore))
	b.WriteString(fmt.Sprintf("Member since    %s\n", identity.MemberSince.Format("Jan 2, 2006")))
	b.WriteString(fmt.Sprintf("Closed deals    %d\n", identity.CompletedDeals))
	b.WriteString(fmt.Sprintf("Profile         %s\n", progressBar(completion)))
	return b.String()
}

func verificationLabel(status models.VerificationStatus) string {
	switch status {
	case models.VerificationVerified:
		return statusStyle.Render("verified")
	case models.VerificationProcessing:
		return "in review"
	case models.VerificationRequiresInput:
		return errorStyle.Render("needs your input")
	default:
		return "not verified"
	}
}

func (m appModel) viewBuyerDashboard() string {
	snapshot := m.services.Session.Snapshot()
	if snapshot.Identity == nil {
		return ""
	}

	data := identityLines(*snapshot.Identity, snapshot.ProfileCompletionPercent)
	if m.dashboard.status != "" {
		data += "\n" + statusStyle.Render(m.dashboard.status) + "\n"
	}

	return renderPage("BUYER DASHBOARD", strings.TrimRight(data, "\n"),
		"o: make an offer │ d: deal rooms │ p: re-check profile │ ctrl+s: support │ ctrl+l: log out")
}

func (m appModel) viewSellerDashboard() string {
	snapshot := m.services.Session.Snapshot()
	if snapshot.Identity == nil {
		return ""
	}
	identity := *snapshot.Identity

	data := identityLines(identity, snapshot.ProfileCompletionPercent)
	data += fmt.Sprintf("Listing credits %d of %d left\n",
		identity.CreditsTotal-identity.CreditsUsed, identity.CreditsTotal)
	if m.dashboard.status != "" {
		data += "\n" + statusStyle.Render(m.dashboard.status) + "\n"
	}

	return renderPage("SELLER DASHBOARD", strings.TrimRight(data, "\n"),
		"n: create listing │ d: deal rooms │ p: re-check profile │ ctrl+s: support │ ctrl+l: log out")
}

func (m appModel) viewAdminDashboard() string {
	snapshot := m.services.Session.Snapshot()
	if snapshot.Identity == nil {
		return ""
	}
	identity := *snapshot.Identity

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Name            %s\n", valueOrDash(identity.Name)))
	b.WriteString(fmt.Sprintf("Email           %s\n", valueOrDash(identity.Email)))
	b.WriteString(fmt.Sprintf("Member since    %s\n", identity.MemberSince.Format("Jan 2, 2006")))
	b.WriteString("\nYou are operating with marketplace admin access.\n")
	if m.dashboard.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.dashboard.status) + "\n")
	}

	return renderPage("ADMIN DASHBOARD", strings.TrimRight(b.String(), "\n"),
		"d: deal rooms │ ctrl+s: support │ ctrl+l: log out")
}
