package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/models"
)

// onboardingRepository is the SQLite-backed implementation of
// [OnboardingRepository], keyed by identity id so that two accounts used on
// the same device keep separate onboarding flags.
type onboardingRepository struct {
	*DB
	logger *logger.Logger
}

func NewOnboardingRepository(db *DB, logger *logger.Logger) OnboardingRepository {
	logger.Debug().Msg("creating onboarding repository")
	return &onboardingRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *onboardingRepository) Get(ctx context.Context, identityID string) (models.OnboardingState, error) {
	log := logger.FromContext(ctx)

	var state models.OnboardingState

	query, args, err := builder().
		Select("identity_id", "seen_buyer_welcome", "seen_seller_welcome", "accepted_terms_at").
		From(state.TableName()).
		Where(sq.Eq{"identity_id": identityID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "onboardingRepository.Get").Msg("failed to build select query")
		return models.OnboardingState{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.DB.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&state.IdentityID, &state.SeenBuyerWelcome, &state.SeenSellerWelcome, &state.AcceptedTermsAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OnboardingState{}, ErrOnboardingNotFound
		}
		log.Err(err).
			Str("func", "onboardingRepository.Get").
			Str("identity_id", identityID).
			Msg("failed to scan onboarding row")
		return models.OnboardingState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return state, nil
}

func (r *onboardingRepository) Put(ctx context.Context, state models.OnboardingState) error {
	log := logger.FromContext(ctx)

	query, args, err := builder().
		Replace(state.TableName()).
		Columns("identity_id", "seen_buyer_welcome", "seen_seller_welcome", "accepted_terms_at").
		Values(state.IdentityID, state.SeenBuyerWelcome, state.SeenSellerWelcome, state.AcceptedTermsAt).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "onboardingRepository.Put").Msg("failed to build upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "onboardingRepository.Put").
			Str("identity_id", state.IdentityID).
			Msg("failed to save onboarding state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
