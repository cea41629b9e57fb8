package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/models"
)

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &sessionRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestSaveSession_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	session := models.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Identity:     &models.Identity{ID: "id-1", Role: models.RoleBuyer},
		SavedAt:      time.Now(),
	}

	identityJSON, err := json.Marshal(session.Identity)
	if err != nil {
		t.Fatalf("failed to marshal identity: %v", err)
	}

	mock.ExpectExec("REPLACE INTO sessions").
		WithArgs(sessionRowID, session.AccessToken, session.RefreshToken, identityJSON, session.SavedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.SaveSession(context.Background(), session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestSaveSession_ExecError(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("REPLACE INTO sessions").
		WillReturnError(errors.New("disk I/O error"))

	err := repo.SaveSession(context.Background(), models.Session{AccessToken: "access"})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestGetSession_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	identity := &models.Identity{ID: "id-1", Email: "alice@example.com", Role: models.RoleSeller}
	identityJSON, err := json.Marshal(identity)
	if err != nil {
		t.Fatalf("failed to marshal identity: %v", err)
	}

	savedAt := time.Now()
	rows := sqlmock.
		NewRows([]string{"access_token", "refresh_token", "identity", "saved_at"}).
		AddRow("access", "refresh", identityJSON, savedAt)

	mock.ExpectQuery("SELECT access_token, refresh_token, identity, saved_at FROM sessions").
		WithArgs(sessionRowID).
		WillReturnRows(rows)

	session, err := repo.GetSession(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.AccessToken != "access" {
		t.Errorf("expected access token %q, got %q", "access", session.AccessToken)
	}
	if session.Identity == nil || session.Identity.ID != "id-1" {
		t.Errorf("expected identity id-1, got %+v", session.Identity)
	}
	if session.Identity.Role != models.RoleSeller {
		t.Errorf("expected seller role, got %q", session.Identity.Role)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT access_token, refresh_token, identity, saved_at FROM sessions").
		WithArgs(sessionRowID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSession(context.Background())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestGetSession_TokensOnlyRow(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"access_token", "refresh_token", "identity", "saved_at"}).
		AddRow("access", "refresh", []byte(nil), time.Now())

	mock.ExpectQuery("SELECT access_token, refresh_token, identity, saved_at FROM sessions").
		WithArgs(sessionRowID).
		WillReturnRows(rows)

	session, err := repo.GetSession(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Identity != nil {
		t.Errorf("expected nil identity for tokens-only row, got %+v", session.Identity)
	}
}

func TestClearSession_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(sessionRowID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ClearSession(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClearSession_EmptyStoreIsNotAnError(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(sessionRowID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.ClearSession(context.Background()); err != nil {
		t.Fatalf("unexpected error clearing empty store: %v", err)
	}
}
