package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/internal/mock"
	"github.com/mcmarket/mcmarket-client/internal/store"
	"github.com/mcmarket/mcmarket-client/models"
)

func newTestRefreshJob(t *testing.T) (*sessionRefreshJob, *mock.MockMarketAdapter, *mock.MockSessionRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockAdapter := mock.NewMockMarketAdapter(ctrl)
	mockSessions := mock.NewMockSessionRepository(ctrl)

	job := NewSessionRefreshJob(mockAdapter, mockSessions, logger.Nop())
	return job.(*sessionRefreshJob), mockAdapter, mockSessions
}

func TestRefreshOnce_RotatesTokenPair(t *testing.T) {
	job, mockAdapter, mockSessions := newTestRefreshJob(t)
	ctx := context.Background()

	identity := &models.Identity{ID: "id-1", Role: models.RoleBuyer}
	persisted := models.Session{
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
		Identity:     identity,
		SavedAt:      time.Now().Add(-time.Hour),
	}

	mockSessions.EXPECT().GetSession(ctx).Return(persisted, nil)
	mockAdapter.EXPECT().Refresh(ctx, "old-refresh").Return(models.AuthResponse{
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
	}, nil)
	mockSessions.EXPECT().SaveSession(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, session models.Session) error {
			assert.Equal(t, "new-access", session.AccessToken)
			assert.Equal(t, "new-refresh", session.RefreshToken)
			require.NotNil(t, session.Identity, "identity cache must survive rotation")
			assert.Equal(t, "id-1", session.Identity.ID)
			return nil
		})

	job.refreshOnce(ctx)
}

func TestRefreshOnce_KeepsOldRefreshTokenWhenServerOmitsIt(t *testing.T) {
	job, mockAdapter, mockSessions := newTestRefreshJob(t)
	ctx := context.Background()

	mockSessions.EXPECT().GetSession(ctx).Return(models.Session{AccessToken: "a", RefreshToken: "old-refresh"}, nil)
	mockAdapter.EXPECT().Refresh(ctx, "old-refresh").Return(models.AuthResponse{AccessToken: "new-access"}, nil)
	mockSessions.EXPECT().SaveSession(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, session models.Session) error {
			assert.Equal(t, "old-refresh", session.RefreshToken)
			return nil
		})

	job.refreshOnce(ctx)
}

func TestRefreshOnce_NoPersistedSession_NoNetworkCall(t *testing.T) {
	job, _, mockSessions := newTestRefreshJob(t)
	ctx := context.Background()

	mockSessions.EXPECT().GetSession(ctx).Return(models.Session{}, store.ErrSessionNotFound)

	job.refreshOnce(ctx)
}

func TestRefreshOnce_RejectedRefreshToken_ClearsSession(t *testing.T) {
	job, mockAdapter, mockSessions := newTestRefreshJob(t)
	ctx := context.Background()

	mockSessions.EXPECT().GetSession(ctx).Return(models.Session{AccessToken: "a", RefreshToken: "dead"}, nil)
	mockAdapter.EXPECT().Refresh(ctx, "dead").Return(models.AuthResponse{}, unauthorized())
	mockAdapter.EXPECT().SetToken("")
	mockSessions.EXPECT().ClearSession(ctx).Return(nil)

	job.refreshOnce(ctx)
}

func TestRefreshJob_StartTicksAndStops(t *testing.T) {
	job, mockAdapter, mockSessions := newTestRefreshJob(t)
	ctx := context.Background()

	mockSessions.EXPECT().GetSession(gomock.Any()).
		Return(models.Session{AccessToken: "a", RefreshToken: "r"}, nil).MinTimes(1)
	mockAdapter.EXPECT().Refresh(gomock.Any(), "r").
		Return(models.AuthResponse{AccessToken: "new", RefreshToken: "r2"}, nil).MinTimes(1)
	mockSessions.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil).MinTimes(1)

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()
}

func TestRefreshJob_StopBeforeStart_NoPanic(t *testing.T) {
	job, _, _ := newTestRefreshJob(t)

	assert.NotPanics(t, func() { job.Stop() })
}
