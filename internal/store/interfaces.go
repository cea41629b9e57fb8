// Package store implements the client-side persistence layer.
//
// Sessions and onboarding flags are kept in a local SQLite database so that
// an authenticated user stays signed in across application restarts. The
// schema is managed by goose migrations embedded in the migrations package.
package store

import (
	"context"

	"github.com/mcmarket/mcmarket-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SessionRepository persists the single active session of this device.
type SessionRepository interface {
	// SaveSession replaces the stored session with the given one.
	SaveSession(ctx context.Context, session models.Session) error

	// GetSession returns the stored session. Returns [ErrSessionNotFound]
	// when no session has been saved or it was cleared.
	GetSession(ctx context.Context) (models.Session, error)

	// ClearSession removes the stored session. Clearing an already empty
	// store is not an error.
	ClearSession(ctx context.Context) error
}

// OnboardingRepository persists per-identity onboarding flags (welcome
// screens seen, terms accepted).
type OnboardingRepository interface {
	// Get returns the onboarding state for identityID. Returns
	// [ErrOnboardingNotFound] when the identity has no recorded state yet.
	Get(ctx context.Context, identityID string) (models.OnboardingState, error)

	// Put upserts the onboarding state keyed by state.IdentityID.
	Put(ctx context.Context, state models.OnboardingState) error
}
