package models

import "time"

// OnboardingState records which one-time onboarding flows an identity has
// already been through. One row is kept per identity id with explicit
// fields, so flags cannot drift apart through ad hoc key naming.
type OnboardingState struct {
	// IdentityID is the account the flags belong to.
	IdentityID string `json:"identity_id"`

	// SeenBuyerWelcome and SeenSellerWelcome record whether the role
	// welcome animation has been shown.
	SeenBuyerWelcome  bool `json:"seen_buyer_welcome"`
	SeenSellerWelcome bool `json:"seen_seller_welcome"`

	// AcceptedTermsAt is when the account accepted the marketplace terms,
	// or nil if they have not yet.
	AcceptedTermsAt *time.Time `json:"accepted_terms_at,omitempty"`
}

// SeenWelcomeFor reports whether the welcome animation for the given role
// has already been shown. Admins have no welcome flow.
func (o OnboardingState) SeenWelcomeFor(role Role) bool {
	switch role {
	case RoleBuyer:
		return o.SeenBuyerWelcome
	case RoleSeller:
		return o.SeenSellerWelcome
	}
	return true
}

// MarkWelcomeSeen sets the welcome flag for the given role.
func (o *OnboardingState) MarkWelcomeSeen(role Role) {
	switch role {
	case RoleBuyer:
		o.SeenBuyerWelcome = true
	case RoleSeller:
		o.SeenSellerWelcome = true
	}
}

// TableName returns the name of the database table
// associated with the OnboardingState model.
func (o OnboardingState) TableName() string {
	return "onboarding"
}
