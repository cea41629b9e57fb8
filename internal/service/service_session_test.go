package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mcmarket/mcmarket-client/internal/adapter"
	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/internal/mock"
	"github.com/mcmarket/mcmarket-client/internal/store"
	"github.com/mcmarket/mcmarket-client/models"
)

func newTestSessionService(t *testing.T) (SessionService, *mock.MockMarketAdapter, *mock.MockSessionRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockAdapter := mock.NewMockMarketAdapter(ctrl)
	mockSessions := mock.NewMockSessionRepository(ctrl)

	storages := &store.ClientStorages{Sessions: mockSessions}
	svc := NewSessionService(storages, mockAdapter, logger.Nop())

	return svc, mockAdapter, mockSessions
}

func unauthorized() error {
	return fmt.Errorf("%w: token is expired", adapter.ErrUnauthorized)
}

// ── Bootstrap ────────────────────────────────────────────────────────────────

func TestBootstrap_NoPersistedToken_NoNetworkCall(t *testing.T) {
	svc, _, mockSessions := newTestSessionService(t)
	ctx := context.Background()

	// no adapter expectations are registered: any network call fails the test
	mockSessions.EXPECT().GetSession(ctx).Return(models.Session{}, store.ErrSessionNotFound)

	svc.Bootstrap(ctx)

	assert.False(t, svc.IsAuthenticated())
	assert.False(t, svc.IsLoading())
	assert.True(t, svc.IsProfileComplete())
}

func TestBootstrap_ValidToken_MaterialisesIdentity(t *testing.T) {
	svc, mockAdapter, mockSessions := newTestSessionService(t)
	ctx := context.Background()

	identity := models.Identity{ID: "id-1", Role: models.RoleBuyer, VerificationStatus: models.VerificationVerified}

	mockSessions.EXPECT().GetSession(ctx).Return(models.Session{AccessToken: "token", RefreshToken: "refresh"}, nil)
	mockAdapter.EXPECT().SetToken("token")
	mockAdapter.EXPECT().CurrentIdentity(ctx).Return(identity, nil)
	mockAdapter.EXPECT().Profile(ctx).Return(models.Profile{Name: "Alice", Phone: "555", CompanyName: "Haul Co"}, nil)
	mockSessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	svc.Bootstrap(ctx)

	assert.True(t, svc.IsAuthenticated())
	assert.False(t, svc.IsLoading())
	assert.True(t, svc.IsIdentityVerified())
	assert.Equal(t, 60, svc.ProfileCompletionPercent())
	assert.False(t, svc.IsProfileComplete())
}

func TestBootstrap_RejectedToken_ClearsSession(t *testing.T) {
	svc, mockAdapter, mockSessions := newTestSessionService(t)
	ctx := context.Background()

	mockSessions.EXPECT().GetSession(ctx).Return(models.Session{AccessToken: "stale"}, nil)
	mockAdapter.EXPECT().SetToken("stale")
	mockAdapter.EXPECT().CurrentIdentity(ctx).Return(models.Identity{}, unauthorized())
	mockSessions.EXPECT().ClearSession(ctx).Return(nil)

	svc.Bootstrap(ctx)

	assert.False(t, svc.IsAuthenticated())
	assert.False(t, svc.IsLoading())
	assert.True(t, svc.IsProfileComplete())
}

func TestBootstrap_ExpiredToken_ClearsWithoutNetworkCall(t *testing.T) {
	svc, _, mockSessions := newTestSessionService(t)
	ctx := context.Background()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "id-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	expired, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)

	// no adapter expectations: an expired token must not be presented
	mockSessions.EXPECT().GetSession(ctx).Return(models.Session{AccessToken: expired}, nil)
	mockSessions.EXPECT().ClearSession(ctx).Return(nil)

	svc.Bootstrap(ctx)

	assert.False(t, svc.IsAuthenticated())
	assert.False(t, svc.IsLoading())
	assert.True(t, svc.IsProfileComplete())
}

func TestBootstrap_AdminSkipsProfileFetch(t *testing.T) {
	svc, mockAdapter, mockSessions := newTestSessionService(t)
	ctx := context.Background()

	admin := models.Identity{ID: "id-a", Role: models.RoleAdmin}

	mockSessions.EXPECT().GetSession(ctx).Return(models.Session{AccessToken: "token"}, nil)
	mockAdapter.EXPECT().SetToken("token")
	mockAdapter.EXPECT().CurrentIdentity(ctx).Return(admin, nil)
	// no Profile expectation: admins have no contact profile to fetch
	mockSessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	svc.Bootstrap(ctx)

	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, 100, svc.ProfileCompletionPercent())
}

func TestBootstrap_ProfileFetchFailure_DefaultsToComplete(t *testing.T) {
	svc, mockAdapter, mockSessions := newTestSessionService(t)
	ctx := context.Background()

	buyer := models.Identity{ID: "id-1", Role: models.RoleBuyer}

	mockSessions.EXPECT().GetSession(ctx).Return(models.Session{AccessToken: "token"}, nil)
	mockAdapter.EXPECT().SetToken("token")
	mockAdapter.EXPECT().CurrentIdentity(ctx).Return(buyer, nil)
	mockAdapter.EXPECT().Profile(ctx).Return(models.Profile{}, errors.New("gateway timeout"))
	mockSessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	svc.Bootstrap(ctx)

	// a secondary-data failure never blocks the user
	assert.True(t, svc.IsAuthenticated())
	assert.True(t, svc.IsProfileComplete())
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	svc, mockAdapter, mockSessions := newTestSessionService(t)
	ctx := context.Background()

	creds := models.Credentials{Email: "alice@example.com", Password: "secret"}
	auth := models.AuthResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         models.Identity{ID: "id-1", Role: models.RoleBuyer},
	}

	mockAdapter.EXPECT().Login(ctx, creds).Return(auth, nil)
	mockAdapter.EXPECT().Profile(ctx).Return(models.Profile{Name: "Alice"}, nil)
	mockSessions.EXPECT().SaveSession(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, session models.Session) error {
			assert.Equal(t, "access", session.AccessToken)
			assert.Equal(t, "refresh", session.RefreshToken)
			require.NotNil(t, session.Identity)
			assert.Equal(t, "id-1", session.Identity.ID)
			return nil
		})

	identity, err := svc.Login(ctx, creds)

	require.NoError(t, err)
	assert.Equal(t, models.RoleBuyer, identity.Role)
	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, 20, svc.ProfileCompletionPercent())
}

func TestLogin_InvalidCredentials_StateUntouched(t *testing.T) {
	svc, mockAdapter, _ := newTestSessionService(t)
	ctx := context.Background()

	creds := models.Credentials{Email: "alice@example.com", Password: "wrong"}
	mockAdapter.EXPECT().Login(ctx, creds).Return(models.AuthResponse{}, unauthorized())

	_, err := svc.Login(ctx, creds)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, svc.IsAuthenticated())
}

func TestLogin_ServerDown_UserDisplayableError(t *testing.T) {
	svc, mockAdapter, _ := newTestSessionService(t)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).
		Return(models.AuthResponse{}, fmt.Errorf("%w: upstream down", adapter.ErrBadGateway))

	_, err := svc.Login(ctx, models.Credentials{Email: "a@b.c", Password: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServerUnavailable)
}

// stale in-flight login: a logout lands while the login response is still on
// the wire, so the response must be discarded instead of resurrecting the
// session
func TestLogin_SupersededByLogout_Discarded(t *testing.T) {
	svc, mockAdapter, mockSessions := newTestSessionService(t)
	ctx := context.Background()

	creds := models.Credentials{Email: "admin@example.com", Password: "secret"}
	auth := models.AuthResponse{
		AccessToken: "late-token",
		User:        models.Identity{ID: "id-a", Role: models.RoleAdmin},
	}

	mockAdapter.EXPECT().Login(ctx, creds).DoAndReturn(
		func(ctx context.Context, _ models.Credentials) (models.AuthResponse, error) {
			// logout fires while the login call is in flight
			svc.Logout(ctx)
			return auth, nil
		})
	mockAdapter.EXPECT().Logout(ctx).Return(nil)
	mockAdapter.EXPECT().SetToken("").Times(2)
	mockSessions.EXPECT().ClearSession(ctx).Return(nil)

	_, err := svc.Login(ctx, creds)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.False(t, svc.IsAuthenticated(), "stale login response must not resurrect the session")
	assert.True(t, svc.IsProfileComplete())
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestRegister_BuyerWithPhone_FortyPercent(t *testing.T) {
	svc, mockAdapter, mockSessions := newTestSessionService(t)
	ctx := context.Background()

	req := models.RegisterRequest{
		Email:    "bob@example.com",
		Password: "secret",
		Name:     "Bob",
		Role:     models.RoleBuyer,
		Phone:    "555-0101",
	}
	auth := models.AuthResponse{
		AccessToken: "access",
		User:        models.Identity{ID: "id-2", Role: models.RoleBuyer},
	}

	// no Profile expectation: completeness is set synchronously from what
	// the form already knows
	mockAdapter.EXPECT().Register(ctx, req).Return(auth, nil)
	mockSessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	identity, err := svc.Register(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "id-2", identity.ID)
	assert.Equal(t, 40, svc.ProfileCompletionPercent())
	assert.False(t, svc.IsProfileComplete())
}

func TestRegister_NoPhone_TwentyPercent(t *testing.T) {
	svc, mockAdapter, mockSessions := newTestSessionService(t)
	ctx := context.Background()

	req := models.RegisterRequest{
		Email:    "bob@example.com",
		Password: "secret",
		Name:     "Bob",
		Role:     models.RoleSeller,
	}

	mockAdapter.EXPECT().Register(ctx, req).Return(models.AuthResponse{
		AccessToken: "access",
		User:        models.Identity{ID: "id-2", Role: models.RoleSeller},
	}, nil)
	mockSessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	_, err := svc.Register(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, 20, svc.ProfileCompletionPercent())
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, mockAdapter, _ := newTestSessionService(t)
	ctx := context.Background()

	mockAdapter.EXPECT().Register(ctx, gomock.Any()).
		Return(models.AuthResponse{}, fmt.Errorf("%w: email already registered", adapter.ErrConflict))

	_, err := svc.Register(ctx, models.RegisterRequest{Email: "bob@example.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
	assert.False(t, svc.IsAuthenticated())
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestLogout_ResetsState(t *testing.T) {
	svc, mockAdapter, mockSessions := newTestSessionService(t)
	ctx := context.Background()

	// first log in so there is state to reset
	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.AuthResponse{
		AccessToken: "access",
		User:        models.Identity{ID: "id-1", Role: models.RoleBuyer},
	}, nil)
	mockAdapter.EXPECT().Profile(ctx).Return(models.Profile{Name: "Alice"}, nil)
	mockSessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	_, err := svc.Login(ctx, models.Credentials{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)
	require.True(t, svc.IsAuthenticated())
	require.Equal(t, 20, svc.ProfileCompletionPercent())

	mockAdapter.EXPECT().Logout(ctx).Return(nil)
	mockAdapter.EXPECT().SetToken("")
	mockSessions.EXPECT().ClearSession(ctx).Return(nil)

	svc.Logout(ctx)

	assert.False(t, svc.IsAuthenticated())
	assert.True(t, svc.IsProfileComplete())
	assert.Equal(t, 100, svc.ProfileCompletionPercent())
}

func TestLogout_RemoteFailureStillClears(t *testing.T) {
	svc, mockAdapter, mockSessions := newTestSessionService(t)
	ctx := context.Background()

	mockAdapter.EXPECT().Logout(ctx).Return(errors.New("connection refused"))
	mockAdapter.EXPECT().SetToken("")
	mockSessions.EXPECT().ClearSession(ctx).Return(nil)

	svc.Logout(ctx)

	assert.False(t, svc.IsAuthenticated())
	assert.True(t, svc.IsProfileComplete())
}

// ── CheckProfileComplete ─────────────────────────────────────────────────────

func TestCheckProfileComplete_Idempotent(t *testing.T) {
	svc, mockAdapter, mockSessions := newTestSessionService(t)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.AuthResponse{
		AccessToken: "access",
		User:        models.Identity{ID: "id-1", Role: models.RoleBuyer},
	}, nil)
	profile := models.Profile{Name: "Alice", Phone: "555", City: "Austin", State: "TX"}
	mockAdapter.EXPECT().Profile(ctx).Return(profile, nil).Times(3)
	mockSessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	_, err := svc.Login(ctx, models.Credentials{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	first := svc.CheckProfileComplete(ctx)
	second := svc.CheckProfileComplete(ctx)

	assert.Equal(t, 80, first)
	assert.Equal(t, first, second)
}

func TestCheckProfileComplete_NoIdentity_NoOpsToComplete(t *testing.T) {
	svc, _, _ := newTestSessionService(t)

	// no adapter expectations: the call must not touch the network
	got := svc.CheckProfileComplete(context.Background())

	assert.Equal(t, 100, got)
	assert.True(t, svc.IsProfileComplete())
}

// ── RefreshIdentity ──────────────────────────────────────────────────────────

func TestRefreshIdentity_UpdatesVerificationStatus(t *testing.T) {
	svc, mockAdapter, mockSessions := newTestSessionService(t)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.AuthResponse{
		AccessToken: "access",
		User:        models.Identity{ID: "id-1", Role: models.RoleSeller, VerificationStatus: models.VerificationProcessing},
	}, nil)
	mockAdapter.EXPECT().Profile(ctx).Return(models.Profile{Name: "Sal"}, nil)
	mockSessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	_, err := svc.Login(ctx, models.Credentials{Email: "s@b.c", Password: "x"})
	require.NoError(t, err)
	require.False(t, svc.IsIdentityVerified())

	verified := models.Identity{ID: "id-1", Role: models.RoleSeller, VerificationStatus: models.VerificationVerified}
	mockAdapter.EXPECT().CurrentIdentity(ctx).Return(verified, nil)
	mockSessions.EXPECT().GetSession(ctx).Return(models.Session{AccessToken: "access", SavedAt: time.Now()}, nil)
	mockSessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	require.NoError(t, svc.RefreshIdentity(ctx))
	assert.True(t, svc.IsIdentityVerified())
}

func TestRefreshIdentity_NotAuthenticated(t *testing.T) {
	svc, _, _ := newTestSessionService(t)

	err := svc.RefreshIdentity(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

// ── Email verification ───────────────────────────────────────────────────────

func TestVerifyEmail_MapsFailureToUserMessage(t *testing.T) {
	svc, mockAdapter, _ := newTestSessionService(t)
	ctx := context.Background()

	mockAdapter.EXPECT().VerifyEmail(ctx, "code-1").Return(nil)
	require.NoError(t, svc.VerifyEmail(ctx, "code-1"))

	mockAdapter.EXPECT().VerifyEmail(ctx, "code-2").Return(errors.New("boom"))
	assert.ErrorIs(t, svc.VerifyEmail(ctx, "code-2"), ErrServerUnavailable)
}

func TestResendVerificationEmail_MapsFailureToUserMessage(t *testing.T) {
	svc, mockAdapter, _ := newTestSessionService(t)
	ctx := context.Background()

	mockAdapter.EXPECT().ResendVerificationEmail(ctx).Return(nil)
	require.NoError(t, svc.ResendVerificationEmail(ctx))

	mockAdapter.EXPECT().ResendVerificationEmail(ctx).Return(errors.New("boom"))
	assert.ErrorIs(t, svc.ResendVerificationEmail(ctx), ErrServerUnavailable)
}
