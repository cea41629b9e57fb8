package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/internal/mock"
	"github.com/mcmarket/mcmarket-client/models"
)

func newTestSupportService(t *testing.T) (SupportService, *mock.MockMarketAdapter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockAdapter := mock.NewMockMarketAdapter(ctrl)
	return NewSupportService(mockAdapter, logger.Nop()), mockAdapter
}

func TestCreateThread_Success(t *testing.T) {
	svc, mockAdapter := newTestSupportService(t)
	ctx := context.Background()

	mockAdapter.EXPECT().CreateSupportThread(ctx, "Listing stuck in review").
		Return(models.SupportThread{ID: "thread-1", Subject: "Listing stuck in review"}, nil)

	thread, err := svc.CreateThread(ctx, "Listing stuck in review")

	require.NoError(t, err)
	assert.Equal(t, "thread-1", thread.ID)
}

func TestCreateThread_BlankSubjectGetsDefault(t *testing.T) {
	svc, mockAdapter := newTestSupportService(t)
	ctx := context.Background()

	mockAdapter.EXPECT().CreateSupportThread(ctx, "Support request").
		Return(models.SupportThread{ID: "thread-1"}, nil)

	_, err := svc.CreateThread(ctx, "   ")
	require.NoError(t, err)
}

func TestCreateThread_Failure(t *testing.T) {
	svc, mockAdapter := newTestSupportService(t)
	ctx := context.Background()

	mockAdapter.EXPECT().CreateSupportThread(ctx, gomock.Any()).
		Return(models.SupportThread{}, errors.New("connection refused"))

	_, err := svc.CreateThread(ctx, "help")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSupportUnavailable)
}

func TestSendMessage_GeneratesClientSideID(t *testing.T) {
	svc, mockAdapter := newTestSupportService(t)
	ctx := context.Background()

	mockAdapter.EXPECT().SendSupportMessage(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.SupportMessage) (models.SupportMessage, error) {
			assert.NotEmpty(t, msg.ID, "message id must be generated client-side")
			assert.Equal(t, "thread-1", msg.ThreadID)
			assert.Equal(t, "Any update?", msg.Body)
			assert.False(t, msg.SentAt.IsZero())
			return msg, nil
		})

	sent, err := svc.SendMessage(ctx, "thread-1", "Any update?")

	require.NoError(t, err)
	assert.NotEmpty(t, sent.ID)
}

func TestSendMessage_DistinctIDsPerCall(t *testing.T) {
	svc, mockAdapter := newTestSupportService(t)
	ctx := context.Background()

	mockAdapter.EXPECT().SendSupportMessage(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.SupportMessage) (models.SupportMessage, error) {
			return msg, nil
		}).Times(2)

	first, err := svc.SendMessage(ctx, "thread-1", "one")
	require.NoError(t, err)
	second, err := svc.SendMessage(ctx, "thread-1", "two")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestSendMessage_Failure(t *testing.T) {
	svc, mockAdapter := newTestSupportService(t)
	ctx := context.Background()

	mockAdapter.EXPECT().SendSupportMessage(ctx, gomock.Any()).
		Return(models.SupportMessage{}, errors.New("timeout"))

	_, err := svc.SendMessage(ctx, "thread-1", "hello")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSupportUnavailable)
}
