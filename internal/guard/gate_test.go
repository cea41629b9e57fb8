package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcmarket/mcmarket-client/models"
)

func buyer(status models.VerificationStatus) models.SessionSnapshot {
	return models.SessionSnapshot{
		Identity:                 &models.Identity{ID: "id-b", Role: models.RoleBuyer, VerificationStatus: status},
		ProfileCompletionPercent: 100,
	}
}

func seller(status models.VerificationStatus) models.SessionSnapshot {
	return models.SessionSnapshot{
		Identity:                 &models.Identity{ID: "id-s", Role: models.RoleSeller, VerificationStatus: status},
		ProfileCompletionPercent: 100,
	}
}

func admin(status models.VerificationStatus) models.SessionSnapshot {
	return models.SessionSnapshot{
		Identity:                 &models.Identity{ID: "id-a", Role: models.RoleAdmin, VerificationStatus: status},
		ProfileCompletionPercent: 100,
	}
}

func anonymous() models.SessionSnapshot {
	return models.SessionSnapshot{}
}

func loadingSession() models.SessionSnapshot {
	return models.SessionSnapshot{Loading: true}
}

// ── Role gate ────────────────────────────────────────────────────────────────

// While the bootstrap is unresolved nothing may render except the loading
// placeholder, neither the guarded content nor a redirect.
func TestDecide_LoadingBlocksEverything(t *testing.T) {
	requirements := map[string]RouteRequirement{
		"authenticated": Authenticated(),
		"role-bound":    Roles(models.RoleSeller),
		"verified":      Verified(models.RoleSeller),
	}

	for name, req := range requirements {
		t.Run(name, func(t *testing.T) {
			decision := Decide(loadingSession(), req, PathSellerDashboard)

			assert.Equal(t, DecisionLoading, decision.Kind)
			assert.Empty(t, decision.RedirectTo)
		})
	}
}

func TestDecide_PublicPathIgnoresSessionState(t *testing.T) {
	sessions := map[string]models.SessionSnapshot{
		"anonymous": anonymous(),
		"loading":   loadingSession(),
		"buyer":     buyer(models.VerificationVerified),
	}

	for name, session := range sessions {
		t.Run(name, func(t *testing.T) {
			decision := Decide(session, Public(), PathLegal)
			assert.Equal(t, DecisionAllow, decision.Kind)
		})
	}
}

// A role outside the permitted set lands on its own canonical dashboard,
// never on the requested path and never on a not-found view.
func TestDecide_WrongRoleRedirectsHome(t *testing.T) {
	tests := []struct {
		name     string
		session  models.SessionSnapshot
		path     string
		req      RouteRequirement
		wantHome string
	}{
		{
			name:     "buyer visiting seller dashboard",
			session:  buyer(models.VerificationVerified),
			path:     PathSellerDashboard,
			req:      Roles(models.RoleSeller),
			wantHome: PathBuyerDashboard,
		},
		{
			name:     "seller visiting admin dashboard",
			session:  seller(models.VerificationVerified),
			path:     PathAdminDashboard,
			req:      Roles(models.RoleAdmin),
			wantHome: PathSellerDashboard,
		},
		{
			name:     "admin visiting buyer dashboard",
			session:  admin(models.VerificationVerified),
			path:     PathBuyerDashboard,
			req:      Roles(models.RoleBuyer),
			wantHome: PathAdminDashboard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.session, tt.req, tt.path)

			require.Equal(t, DecisionRedirect, decision.Kind)
			assert.Equal(t, tt.wantHome, decision.RedirectTo)
		})
	}
}

func TestDecide_MatchingRoleAllowed(t *testing.T) {
	decision := Decide(seller(models.VerificationVerified), Roles(models.RoleSeller), PathSellerDashboard)
	assert.Equal(t, DecisionAllow, decision.Kind)
}

// An empty permitted set admits any authenticated identity.
func TestDecide_EmptyRoleSetAdmitsAnyAuthenticated(t *testing.T) {
	for name, session := range map[string]models.SessionSnapshot{
		"buyer":  buyer(models.VerificationUnverified),
		"seller": seller(models.VerificationUnverified),
		"admin":  admin(models.VerificationUnverified),
	} {
		t.Run(name, func(t *testing.T) {
			decision := Decide(session, Authenticated(), PathDeals)
			assert.Equal(t, DecisionAllow, decision.Kind)
		})
	}
}

func TestDecide_UnauthenticatedRedirectsToLoginWithReturnAddress(t *testing.T) {
	decision := Decide(anonymous(), Authenticated(), PathDeals)

	require.Equal(t, DecisionRedirect, decision.Kind)
	assert.Equal(t, "/login?redirect=%2Fdeals", decision.RedirectTo)

	target, ok := RedirectTarget(decision.RedirectTo)
	require.True(t, ok)
	assert.Equal(t, PathDeals, target)
}

// ── Verification gate ────────────────────────────────────────────────────────

// An unverified admin bypasses the gate; a non-admin with the same status
// gets the prompt instead.
func TestDecide_AdminBypassesVerification(t *testing.T) {
	adminDecision := Decide(admin(models.VerificationUnverified), Verified(), PathCreateListing)
	assert.Equal(t, DecisionAllow, adminDecision.Kind)

	sellerDecision := Decide(seller(models.VerificationUnverified), Verified(), PathCreateListing)
	assert.Equal(t, DecisionVerifyPrompt, sellerDecision.Kind)
}

func TestDecide_VerifiedIdentityAllowed(t *testing.T) {
	decision := Decide(seller(models.VerificationVerified), Verified(models.RoleSeller), PathCreateListing)
	assert.Equal(t, DecisionAllow, decision.Kind)
}

func TestDecide_VerifyPromptVariants(t *testing.T) {
	tests := []struct {
		status models.VerificationStatus
		want   VerifyPromptKind
	}{
		{status: models.VerificationUnverified, want: PromptStart},
		{status: models.VerificationProcessing, want: PromptWait},
		{status: models.VerificationRequiresInput, want: PromptRetry},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			decision := Decide(buyer(tt.status), Verified(models.RoleBuyer), PathMakeOffer)

			require.Equal(t, DecisionVerifyPrompt, decision.Kind)
			assert.Equal(t, tt.want, decision.Prompt)
		})
	}
}

func TestDecide_UnauthenticatedOnVerifiedPathGetsAuthRequiredView(t *testing.T) {
	// the table's own requirements, not hand-built ones: the role gate must
	// not shadow this branch with its login redirect
	for _, path := range []string{PathCreateListing, PathMakeOffer} {
		t.Run(path, func(t *testing.T) {
			route := Resolve(path)
			decision := Decide(anonymous(), route.Requirement, path)

			require.Equal(t, DecisionAuthRequired, decision.Kind)
			assert.Equal(t, path, decision.ReturnTo)
			assert.Empty(t, decision.RedirectTo, "auth-required is a substituted view, not a redirect")
		})
	}
}

func TestDecide_WrongRoleOutranksVerification(t *testing.T) {
	// the role gate runs first, so a buyer on a seller-verified path is
	// sent home rather than shown the verification prompt
	decision := Decide(buyer(models.VerificationUnverified), Verified(models.RoleSeller), PathCreateListing)

	require.Equal(t, DecisionRedirect, decision.Kind)
	assert.Equal(t, PathBuyerDashboard, decision.RedirectTo)
}

// ── Login redirect round-trip ────────────────────────────────────────────────

func TestLoginRedirect_RoundTrip(t *testing.T) {
	paths := []string{PathDeals, PathSellerDashboard, "/deals?id=42", PathCreateListing}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			target, ok := RedirectTarget(LoginRedirect(path))

			require.True(t, ok)
			assert.Equal(t, path, target)
		})
	}
}

func TestRedirectTarget_RejectsNonRootRelative(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "absolute url", path: "/login?redirect=" + "https%3A%2F%2Fevil.example%2F"},
		{name: "protocol relative", path: "/login?redirect=%2F%2Fevil.example"},
		{name: "no redirect param", path: "/login"},
		{name: "relative path", path: "/login?redirect=deals"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := RedirectTarget(tt.path)
			assert.False(t, ok)
		})
	}
}
