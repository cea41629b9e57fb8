package models

import "time"

// Session is the credential bundle persisted between application runs. The
// access token is the opaque credential used to re-derive the identity on
// startup; the identity copy is a local cache that lets screens render
// immediately while the live record is re-fetched.
type Session struct {
	// AccessToken is the bearer token attached to authenticated requests.
	AccessToken string `json:"access_token"`

	// RefreshToken is exchanged periodically for a fresh token pair.
	RefreshToken string `json:"refresh_token"`

	// Identity is the last-known identity record, or nil when the session
	// row carries tokens only.
	Identity *Identity `json:"identity,omitempty"`

	// SavedAt is when the session row was last written.
	SavedAt time.Time `json:"saved_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// SessionSnapshot is the read-only view of the session store consumed by
// route guards and screens. Guards must treat Loading as a blocking state:
// while it is set, neither the guarded content nor a redirect decision may
// be produced.
type SessionSnapshot struct {
	// Loading is set only while the startup bootstrap is resolving.
	Loading bool

	// Identity is the authenticated identity, or nil when logged out.
	Identity *Identity

	// ProfileCompletionPercent is the derived completeness of the profile
	// field set, 0-100.
	ProfileCompletionPercent int
}

// Authenticated reports whether a live identity is present.
func (s SessionSnapshot) Authenticated() bool {
	return s.Identity != nil
}
