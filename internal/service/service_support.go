package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcmarket/mcmarket-client/internal/adapter"
	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/models"
)

type supportService struct {
	adapter adapter.MarketAdapter
	logger  *logger.Logger
}

func NewSupportService(market adapter.MarketAdapter, log *logger.Logger) SupportService {
	return &supportService{adapter: market, logger: log}
}

func (s *supportService) CreateThread(ctx context.Context, subject string) (models.SupportThread, error) {
	log := logger.FromContext(ctx)

	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "Support request"
	}

	thread, err := s.adapter.CreateSupportThread(ctx, subject)
	if err != nil {
		log.Err(err).Str("func", "supportService.CreateThread").Msg("failed to create support thread")
		return models.SupportThread{}, ErrSupportUnavailable
	}

	return thread, nil
}

func (s *supportService) SendMessage(ctx context.Context, threadID, body string) (models.SupportMessage, error) {
	log := logger.FromContext(ctx)

	msg := models.SupportMessage{
		ID:       uuid.NewString(),
		ThreadID: threadID,
		Author:   "user",
		Body:     body,
		SentAt:   time.Now(),
	}

	sent, err := s.adapter.SendSupportMessage(ctx, msg)
	if err != nil {
		log.Err(err).
			Str("func", "supportService.SendMessage").
			Str("thread_id", threadID).
			Msg("failed to send support message")
		return models.SupportMessage{}, ErrSupportUnavailable
	}

	return sent, nil
}
