package models

import "time"

// Role determines the default landing view and feature access of an
// authenticated identity. The set is closed: the remote API never returns
// anything outside of buyer, seller, and admin, and the role is immutable
// after registration from the client's perspective.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known marketplace roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// VerificationStatus is the server-reported progress of the third-party
// identity-proofing flow. It is monotonic except for the requires_input
// retry path.
type VerificationStatus string

const (
	VerificationUnverified    VerificationStatus = "unverified"
	VerificationProcessing    VerificationStatus = "processing"
	VerificationRequiresInput VerificationStatus = "requires_input"
	VerificationVerified      VerificationStatus = "verified"
)

// Identity is the authenticated user record held client-side. It is created
// from login/register/whoami responses of the remote API, lives in the
// session store for the lifetime of the application run, and is destroyed on
// logout or token invalidation.
type Identity struct {
	// ID is the marketplace-wide unique identifier of the account.
	ID string `json:"id"`

	// Email is the login email of the account.
	Email string `json:"email"`

	// Name is the display name shown on dashboards and in support chat.
	Name string `json:"name"`

	// Role is the account role: buyer, seller, or admin.
	Role Role `json:"role"`

	// VerificationStatus reports how far the identity-proofing flow has
	// progressed for this account.
	VerificationStatus VerificationStatus `json:"verification_status"`

	// TrustScore is the marketplace reputation score of the account.
	TrustScore float64 `json:"trust_score"`

	// MemberSince is the account registration timestamp.
	MemberSince time.Time `json:"member_since"`

	// CompletedDeals is the number of closed authority transfers.
	CompletedDeals int `json:"completed_deals"`

	// CreditsTotal and CreditsUsed are the listing-credit balances.
	CreditsTotal int `json:"credits_total"`
	CreditsUsed  int `json:"credits_used"`
}

// IsAdmin reports whether the identity holds the admin role. Admins bypass
// the buyer/seller identity-proofing requirement because they operate on
// other users' data.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IsVerified reports whether the identity-proofing flow has completed.
func (i Identity) IsVerified() bool {
	return i.VerificationStatus == VerificationVerified
}
