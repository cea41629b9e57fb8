package service

import (
	"github.com/mcmarket/mcmarket-client/internal/adapter"
	"github.com/mcmarket/mcmarket-client/internal/callback"
	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/internal/store"
)

type ClientServices struct {
	Session      SessionService
	Verification VerificationService
	Support      SupportService
	RefreshJob   SessionRefreshJob
}

func NewClientServices(storages *store.ClientStorages, market adapter.MarketAdapter, listener callback.Listener, log *logger.Logger) *ClientServices {
	sessionSvc := NewSessionService(storages, market, log)

	return &ClientServices{
		Session:      sessionSvc,
		Verification: NewVerificationService(market, sessionSvc, listener, log),
		Support:      NewSupportService(market, log),
		RefreshJob:   NewSessionRefreshJob(market, storages.Sessions, log),
	}
}
