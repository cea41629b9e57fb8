// Package service implements the client-side business logic of the
// marketplace terminal client: the session store and bootstrapper, identity
// verification, support chat, and the background token refresh job.
package service

import (
	"context"
	"time"

	"github.com/mcmarket/mcmarket-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SessionService is the single owner of the client's session state: exactly
// one identity-or-absence value plus the derived flags. All mutations go
// through the operations below; screens and route guards read the state via
// Snapshot and treat it as read-only.
type SessionService interface {
	// Bootstrap runs once at application start. With no persisted token it
	// settles into the unauthenticated state without any network call.
	// With a token it re-derives the identity from the remote API: success
	// materialises the identity and refreshes profile completeness for
	// non-admins, a rejected token clears the token and cache. This is the
	// only operation that can leave the state in the transient loading
	// condition; failures are absorbed, never returned.
	Bootstrap(ctx context.Context)

	// Login authenticates with the remote API and, on success, stores the
	// identity, persists the session, and refreshes profile completeness
	// for non-admins. On failure the returned error carries a
	// user-displayable message and the existing state is left untouched.
	// The identity is returned so the caller can navigate by role.
	Login(ctx context.Context, creds models.Credentials) (models.Identity, error)

	// Register creates a new account. A fresh registration is known to
	// have only 1-2 of the 5 profile fields filled (name always, phone if
	// supplied), so completeness is set synchronously to 20 or 40 without
	// a network round-trip.
	Register(ctx context.Context, req models.RegisterRequest) (models.Identity, error)

	// Logout performs a best-effort remote logout (errors are swallowed),
	// then unconditionally clears the identity, resets completeness to
	// 100/complete, and deletes the persisted session.
	Logout(ctx context.Context)

	// CheckProfileComplete re-fetches the profile fields and recomputes
	// completeness. Idempotent; safe to call with no identity, in which
	// case it no-ops to 100/complete. The resulting percentage is
	// returned.
	CheckProfileComplete(ctx context.Context) int

	// RefreshIdentity re-fetches the current identity so that
	// server-driven changes, such as a completed verification flow, become
	// visible. A rejected token clears the session.
	RefreshIdentity(ctx context.Context) error

	// VerifyEmail confirms the email address using the token from the
	// verification email.
	VerifyEmail(ctx context.Context, token string) error

	// ResendVerificationEmail requests a new verification email for the
	// current identity.
	ResendVerificationEmail(ctx context.Context) error

	// Snapshot returns the read-only view consumed by route guards.
	Snapshot() models.SessionSnapshot

	IsAuthenticated() bool
	IsLoading() bool
	IsIdentityVerified() bool
	ProfileCompletionPercent() int
	IsProfileComplete() bool
}

// VerificationService drives the external identity-proofing flow.
type VerificationService interface {
	// Start opens a verification session on the remote API, launches the
	// localhost callback listener, and returns the external URL for the
	// user to open in a browser. When the flow redirects back with a
	// success result the identity is re-fetched so the new status becomes
	// visible. Failures carry a user-displayable message; the caller stays
	// on the prompt view and may retry.
	Start(ctx context.Context) (string, error)
}

// SupportService is a thin request/response layer over the support chat
// endpoints.
type SupportService interface {
	// CreateThread opens a new support conversation.
	CreateThread(ctx context.Context, subject string) (models.SupportThread, error)

	// SendMessage posts body into the thread. The message id is generated
	// client-side so retries cannot produce duplicates.
	SendMessage(ctx context.Context, threadID, body string) (models.SupportMessage, error)
}

// SessionRefreshJob is a background worker that periodically exchanges the
// persisted refresh token for a fresh token pair.
type SessionRefreshJob interface {
	// Start launches the background refresh goroutine. It refreshes every
	// interval, defaulting to 10 minutes if interval is zero or negative.
	// Any previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
