// Package adapter provides transport-layer abstractions for communicating
// with the remote marketplace API.
//
// The primary abstraction is [MarketAdapter], which decouples the service
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPMarketAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrConflict] for 409).
package adapter

import (
	"context"

	"github.com/mcmarket/mcmarket-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/market_adapter_mock.go -package=mock

// MarketAdapter defines transport-agnostic communication with the remote
// marketplace API. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type MarketAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. An empty string detaches the
	// token. Called after a successful Login, Register, or Refresh, and
	// with "" on Logout.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or
	// an empty string if no token has been set yet.
	Token() string

	// Login authenticates with the remote API. On success it stores the
	// returned access token via SetToken and returns the full auth
	// response (token pair plus identity). Returns [ErrUnauthorized]
	// (wrapped) when the credentials are rejected.
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// Register creates a new marketplace account. On success it stores
	// the returned access token via SetToken and returns the auth
	// response. Returns [ErrConflict] (wrapped) when the email is taken.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Logout invalidates the current session on the server. The stored
	// token is left untouched; callers clear it via SetToken("").
	Logout(ctx context.Context) error

	// CurrentIdentity fetches the identity record backing the stored
	// token. Returns [ErrUnauthorized] (wrapped) when the token is
	// invalid or expired.
	CurrentIdentity(ctx context.Context) (models.Identity, error)

	// Profile fetches the contact-profile field set of the current
	// identity, used to compute profile completeness.
	Profile(ctx context.Context) (models.Profile, error)

	// Refresh exchanges refreshToken for a fresh token pair. On success
	// the new access token is stored via SetToken.
	Refresh(ctx context.Context, refreshToken string) (models.AuthResponse, error)

	// CreateVerificationSession asks the server to open an external
	// identity-proofing session. returnURL is where the external flow
	// sends the user when it finishes.
	CreateVerificationSession(ctx context.Context, returnURL string) (models.VerificationSession, error)

	// VerifyEmail confirms the email address using the token from the
	// verification email.
	VerifyEmail(ctx context.Context, token string) error

	// ResendVerificationEmail requests a new verification email for the
	// current identity.
	ResendVerificationEmail(ctx context.Context) error

	// CreateSupportThread opens a new support conversation.
	CreateSupportThread(ctx context.Context, subject string) (models.SupportThread, error)

	// SendSupportMessage posts msg into its thread and returns the
	// server-acknowledged copy.
	SendSupportMessage(ctx context.Context, msg models.SupportMessage) (models.SupportMessage, error)
}
