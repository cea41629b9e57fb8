package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mcmarket/mcmarket-client/internal/adapter"
	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/internal/store"
	"github.com/mcmarket/mcmarket-client/models"
)

type sessionRefreshJob struct {
	adapter  adapter.MarketAdapter
	sessions store.SessionRepository
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSessionRefreshJob creates a sessionRefreshJob that rotates the persisted
// token pair on a ticker. The job is idle until Start is called.
func NewSessionRefreshJob(market adapter.MarketAdapter, sessions store.SessionRepository, log *logger.Logger) SessionRefreshJob {
	return &sessionRefreshJob{adapter: market, sessions: sessions, logger: log}
}

// Start implements SessionRefreshJob. It stops any previously running job,
// then launches a background goroutine that refreshes the token pair every
// interval. If interval is zero or negative it defaults to 10 minutes. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *sessionRefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.refreshOnce(jobCtx)
			}
		}
	}()
}

// Stop implements SessionRefreshJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running (no-op in that case).
func (j *sessionRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// refreshOnce exchanges the persisted refresh token for a fresh pair and
// rotates the stored session. A rejected refresh token means the session is
// gone on the server, so the local copy is cleared too.
func (j *sessionRefreshJob) refreshOnce(ctx context.Context) {
	persisted, err := j.sessions.GetSession(ctx)
	if err != nil || persisted.RefreshToken == "" {
		return
	}

	auth, err := j.adapter.Refresh(ctx, persisted.RefreshToken)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			j.logger.Info().Str("func", "sessionRefreshJob.refreshOnce").Msg("refresh token rejected, clearing session")
			j.adapter.SetToken("")
			if clearErr := j.sessions.ClearSession(ctx); clearErr != nil {
				j.logger.Err(clearErr).Str("func", "sessionRefreshJob.refreshOnce").Msg("failed to clear session")
			}
			return
		}
		j.logger.Err(err).Str("func", "sessionRefreshJob.refreshOnce").Msg("token refresh failed")
		return
	}

	refreshToken := auth.RefreshToken
	if refreshToken == "" {
		refreshToken = persisted.RefreshToken
	}

	err = j.sessions.SaveSession(ctx, models.Session{
		AccessToken:  auth.AccessToken,
		RefreshToken: refreshToken,
		Identity:     persisted.Identity,
		SavedAt:      time.Now(),
	})
	if err != nil {
		j.logger.Err(err).Str("func", "sessionRefreshJob.refreshOnce").Msg("failed to persist rotated session")
	}
}
