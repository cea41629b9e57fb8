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

// completionLoggedOut is the completeness value the store settles on when no
// identity is present. 100/complete is a deliberate permissive default so a
// stale completeness value can never block anything on the way out.
const completionLoggedOut = 100

// sessionService is the injected state container behind [SessionService].
// State is guarded by a mutex plus a monotonic generation counter: every
// mutating operation advances the generation before its remote call and
// commits its result only if no newer mutation has advanced it since, so a
// stale in-flight response (a login resolving after a logout) is discarded
// instead of resurrecting dead state.
type sessionService struct {
	adapter  adapter.MarketAdapter
	storages *store.ClientStorages
	logger   *logger.Logger

	mu         sync.RWMutex
	generation uint64
	loading    bool
	identity   *models.Identity
	completion int
}

func NewSessionService(storages *store.ClientStorages, market adapter.MarketAdapter, log *logger.Logger) SessionService {
	return &sessionService{
		adapter:    market,
		storages:   storages,
		logger:     log,
		completion: completionLoggedOut,
	}
}

// begin advances the generation counter and returns the new value. The
// returned generation must be passed to commit when applying the result of
// the remote call that follows.
func (s *sessionService) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// commit applies fn under the lock iff gen is still the newest generation.
// Returns false when the result is stale and was discarded.
func (s *sessionService) commit(gen uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return false
	}
	fn()
	return true
}

func (s *sessionService) Bootstrap(ctx context.Context) {
	log := logger.FromContext(ctx)

	gen := s.begin()

	persisted, err := s.storages.Sessions.GetSession(ctx)
	if err != nil || persisted.AccessToken == "" {
		if err != nil && !errors.Is(err, store.ErrSessionNotFound) {
			log.Err(err).Str("func", "sessionService.Bootstrap").Msg("failed to read persisted session")
		}
		// no credential: expected absence, settle logged out without a
		// network call
		s.commit(gen, func() {
			s.loading = false
			s.identity = nil
			s.completion = completionLoggedOut
		})
		return
	}

	// an expired token buys nothing but a guaranteed 401; clear it without
	// the round-trip. A token whose expiry cannot be read is still presented,
	// judging it is the server's call.
	if expiry, expErr := adapter.TokenExpiresAt(persisted.AccessToken); expErr == nil && time.Now().After(expiry) {
		log.Info().Str("func", "sessionService.Bootstrap").Msg("persisted token expired, clearing session")
		s.clearPersisted(ctx)
		s.commit(gen, func() {
			s.loading = false
			s.identity = nil
			s.completion = completionLoggedOut
		})
		return
	}

	s.commit(gen, func() { s.loading = true })
	s.adapter.SetToken(persisted.AccessToken)

	identity, err := s.adapter.CurrentIdentity(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			log.Info().Str("func", "sessionService.Bootstrap").Msg("persisted token rejected, clearing session")
			s.clearPersisted(ctx)
		} else {
			log.Err(err).Str("func", "sessionService.Bootstrap").Msg("failed to re-derive identity")
		}
		s.commit(gen, func() {
			s.loading = false
			s.identity = nil
			s.completion = completionLoggedOut
		})
		return
	}

	completion := s.fetchCompletion(ctx, identity)
	s.persistSession(ctx, persisted.AccessToken, persisted.RefreshToken, &identity)

	s.commit(gen, func() {
		s.loading = false
		s.identity = &identity
		s.completion = completion
	})
}

func (s *sessionService) Login(ctx context.Context, creds models.Credentials) (models.Identity, error) {
	log := logger.FromContext(ctx)

	gen := s.begin()

	auth, err := s.adapter.Login(ctx, creds)
	if err != nil {
		log.Info().Str("func", "sessionService.Login").Err(err).Msg("login rejected")
		return models.Identity{}, mapLoginError(err)
	}

	identity := auth.User
	completion := s.fetchCompletion(ctx, identity)

	applied := s.commit(gen, func() {
		s.identity = &identity
		s.completion = completion
	})
	if !applied {
		// a newer mutation (e.g. logout) advanced the state while this
		// login was in flight
		s.adapter.SetToken("")
		return models.Identity{}, ErrSuperseded
	}

	s.persistSession(ctx, auth.AccessToken, auth.RefreshToken, &identity)

	return identity, nil
}

func (s *sessionService) Register(ctx context.Context, req models.RegisterRequest) (models.Identity, error) {
	log := logger.FromContext(ctx)

	gen := s.begin()

	auth, err := s.adapter.Register(ctx, req)
	if err != nil {
		log.Info().Str("func", "sessionService.Register").Err(err).Msg("registration rejected")
		return models.Identity{}, mapRegisterError(err)
	}

	// A fresh registration has name (and maybe phone) filled out of the 5
	// profile fields; set completeness synchronously instead of asking the
	// server for what is already known.
	completion := models.Profile{Name: req.Name, Phone: req.Phone}.CompletionPercent()

	identity := auth.User

	applied := s.commit(gen, func() {
		s.identity = &identity
		s.completion = completion
	})
	if !applied {
		s.adapter.SetToken("")
		return models.Identity{}, ErrSuperseded
	}

	s.persistSession(ctx, auth.AccessToken, auth.RefreshToken, &identity)

	return identity, nil
}

func (s *sessionService) Logout(ctx context.Context) {
	log := logger.FromContext(ctx)

	gen := s.begin()

	// best-effort remote logout, errors are swallowed
	if err := s.adapter.Logout(ctx); err != nil {
		log.Info().Str("func", "sessionService.Logout").Err(err).Msg("remote logout failed, clearing locally anyway")
	}

	s.adapter.SetToken("")
	s.clearPersisted(ctx)

	s.commit(gen, func() {
		s.loading = false
		s.identity = nil
		s.completion = completionLoggedOut
	})
}

func (s *sessionService) CheckProfileComplete(ctx context.Context) int {
	s.mu.RLock()
	identity := s.identity
	s.mu.RUnlock()

	if identity == nil {
		// safe no-op, settle on complete
		s.mu.Lock()
		s.completion = completionLoggedOut
		s.mu.Unlock()
		return completionLoggedOut
	}

	gen := s.begin()
	completion := s.fetchCompletion(ctx, *identity)
	s.commit(gen, func() { s.completion = completion })

	return completion
}

func (s *sessionService) RefreshIdentity(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.mu.RLock()
	current := s.identity
	s.mu.RUnlock()
	if current == nil {
		return ErrNotAuthenticated
	}

	gen := s.begin()

	identity, err := s.adapter.CurrentIdentity(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			log.Info().Str("func", "sessionService.RefreshIdentity").Msg("token rejected, clearing session")
			s.adapter.SetToken("")
			s.clearPersisted(ctx)
			s.commit(gen, func() {
				s.identity = nil
				s.completion = completionLoggedOut
			})
		}
		return err
	}

	if applied := s.commit(gen, func() { s.identity = &identity }); !applied {
		return ErrSuperseded
	}

	s.updatePersistedIdentity(ctx, &identity)

	return nil
}

func (s *sessionService) VerifyEmail(ctx context.Context, token string) error {
	if err := s.adapter.VerifyEmail(ctx, token); err != nil {
		return ErrServerUnavailable
	}
	return nil
}

func (s *sessionService) ResendVerificationEmail(ctx context.Context) error {
	if err := s.adapter.ResendVerificationEmail(ctx); err != nil {
		return ErrServerUnavailable
	}
	return nil
}

func (s *sessionService) Snapshot() models.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.SessionSnapshot{
		Loading:                  s.loading,
		Identity:                 s.identity,
		ProfileCompletionPercent: s.completion,
	}
}

func (s *sessionService) IsAuthenticated() bool {
	return s.Snapshot().Authenticated()
}

func (s *sessionService) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *sessionService) IsIdentityVerified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.identity.IsVerified()
}

func (s *sessionService) ProfileCompletionPercent() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completion
}

func (s *sessionService) IsProfileComplete() bool {
	return s.ProfileCompletionPercent() == 100
}

// fetchCompletion computes profile completeness for the identity. Admins
// have no contact profile to fill. A failed fetch is a secondary-data
// failure: logged, defaulted to complete, never blocks navigation.
func (s *sessionService) fetchCompletion(ctx context.Context, identity models.Identity) int {
	if identity.IsAdmin() {
		return completionLoggedOut
	}

	profile, err := s.adapter.Profile(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sessionService.fetchCompletion").
			Msg("profile fetch failed, defaulting to complete")
		return completionLoggedOut
	}

	return profile.CompletionPercent()
}

func (s *sessionService) persistSession(ctx context.Context, accessToken, refreshToken string, identity *models.Identity) {
	err := s.storages.Sessions.SaveSession(ctx, models.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Identity:     identity,
		SavedAt:      time.Now(),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sessionService.persistSession").
			Msg("failed to persist session")
	}
}

// updatePersistedIdentity refreshes the cached identity copy without
// touching the stored token pair.
func (s *sessionService) updatePersistedIdentity(ctx context.Context, identity *models.Identity) {
	persisted, err := s.storages.Sessions.GetSession(ctx)
	if err != nil {
		return
	}
	s.persistSession(ctx, persisted.AccessToken, persisted.RefreshToken, identity)
}

func (s *sessionService) clearPersisted(ctx context.Context) {
	if err := s.storages.Sessions.ClearSession(ctx); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sessionService.clearPersisted").
			Msg("failed to clear persisted session")
	}
}
