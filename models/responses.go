package models

import "time"

// AuthResponse is the body returned by the login, register, and refresh
// endpoints of the remote API.
type AuthResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         Identity `json:"user"`
}

// VerificationSession is returned by the create-verification-session
// endpoint. URL points at the external identity-proofing flow; the client
// hands the whole page over to it rather than navigating in-app.
type VerificationSession struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
