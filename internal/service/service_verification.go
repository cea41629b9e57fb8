package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcmarket/mcmarket-client/internal/adapter"
	"github.com/mcmarket/mcmarket-client/internal/callback"
	"github.com/mcmarket/mcmarket-client/internal/logger"
)

// verificationService opens identity-proofing sessions on the remote API and
// waits for the external flow to redirect back to the localhost callback
// listener. On a successful return the identity is re-fetched so the new
// verification status shows up in the session state.
type verificationService struct {
	adapter  adapter.MarketAdapter
	session  SessionService
	listener callback.Listener
	logger   *logger.Logger
}

func NewVerificationService(market adapter.MarketAdapter, session SessionService, listener callback.Listener, log *logger.Logger) VerificationService {
	return &verificationService{
		adapter:  market,
		session:  session,
		listener: listener,
		logger:   log,
	}
}

func (v *verificationService) Start(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)

	state := uuid.NewString()

	returnURL, done, err := v.listener.Listen(ctx, state)
	if err != nil {
		log.Err(err).Str("func", "verificationService.Start").Msg("failed to start callback listener")
		return "", ErrVerificationUnavailable
	}

	session, err := v.adapter.CreateVerificationSession(ctx, returnURL)
	if err != nil {
		log.Err(err).Str("func", "verificationService.Start").Msg("failed to create verification session")
		v.listener.Stop()
		return "", ErrVerificationUnavailable
	}

	go v.awaitReturn(ctx, done)

	return session.URL, nil
}

// awaitReturn blocks until the external flow redirects back or ctx is
// cancelled. The identity re-fetch runs on a fresh context: the redirect may
// arrive long after the screen that initiated the flow is gone.
func (v *verificationService) awaitReturn(ctx context.Context, done <-chan callback.Result) {
	select {
	case <-ctx.Done():
		v.listener.Stop()
	case result := <-done:
		if !result.OK {
			v.logger.Info().Str("reason", result.Reason).Msg("verification flow returned without completing")
			return
		}
		if err := v.session.RefreshIdentity(context.Background()); err != nil {
			v.logger.Err(err).Msg("failed to refresh identity after verification return")
		}
	}
}
