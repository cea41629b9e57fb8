package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/models"
)

// sessionRepository is the SQLite-backed implementation of
// [SessionRepository]. The sessions table holds at most one row: the device
// has a single active session, so every save replaces the previous one.
type sessionRepository struct {
	*DB
	logger *logger.Logger
}

// sessionRowID is the fixed primary key of the single session row.
const sessionRowID = 1

func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *sessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	identityJSON, err := json.Marshal(session.Identity)
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.SaveSession").Msg("failed to encode identity")
		return fmt.Errorf("encode session identity: %w", err)
	}

	query, args, err := builder().
		Replace(session.TableName()).
		Columns("id", "access_token", "refresh_token", "identity", "saved_at").
		Values(sessionRowID, session.AccessToken, session.RefreshToken, identityJSON, session.SavedAt).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.SaveSession").Msg("failed to build upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "sessionRepository.SaveSession").Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session

	query, args, err := builder().
		Select("access_token", "refresh_token", "identity", "saved_at").
		From(session.TableName()).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.GetSession").Msg("failed to build select query")
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var identityJSON []byte
	row := r.DB.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&session.AccessToken, &session.RefreshToken, &identityJSON, &session.SavedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "sessionRepository.GetSession").Msg("failed to scan session row")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if len(identityJSON) > 0 {
		if err = json.Unmarshal(identityJSON, &session.Identity); err != nil {
			log.Err(err).Str("func", "sessionRepository.GetSession").Msg("failed to decode identity")
			return models.Session{}, fmt.Errorf("decode session identity: %w", err)
		}
	}

	return session, nil
}

func (r *sessionRepository) ClearSession(ctx context.Context) error {
	log := logger.FromContext(ctx)

	query, args, err := builder().
		Delete(models.Session{}.TableName()).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.ClearSession").Msg("failed to build delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "sessionRepository.ClearSession").Msg("failed to clear session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
