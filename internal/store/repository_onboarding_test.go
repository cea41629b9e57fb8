package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/models"
)

func newTestOnboardingRepo(t *testing.T) (*onboardingRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &onboardingRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestOnboardingGet_Success(t *testing.T) {
	repo, mock, db := newTestOnboardingRepo(t)
	defer db.Close()

	accepted := time.Now()
	rows := sqlmock.
		NewRows([]string{"identity_id", "seen_buyer_welcome", "seen_seller_welcome", "accepted_terms_at"}).
		AddRow("id-1", true, false, accepted)

	mock.ExpectQuery("SELECT identity_id, seen_buyer_welcome, seen_seller_welcome, accepted_terms_at FROM onboarding").
		WithArgs("id-1").
		WillReturnRows(rows)

	state, err := repo.Get(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.SeenBuyerWelcome {
		t.Error("expected buyer welcome flag to be set")
	}
	if state.SeenSellerWelcome {
		t.Error("expected seller welcome flag to be unset")
	}
	if state.AcceptedTermsAt == nil {
		t.Error("expected accepted terms timestamp")
	}
}

func TestOnboardingGet_NotFound(t *testing.T) {
	repo, mock, db := newTestOnboardingRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT identity_id, seen_buyer_welcome, seen_seller_welcome, accepted_terms_at FROM onboarding").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrOnboardingNotFound) {
		t.Fatalf("expected ErrOnboardingNotFound, got %v", err)
	}
}

func TestOnboardingPut_Success(t *testing.T) {
	repo, mock, db := newTestOnboardingRepo(t)
	defer db.Close()

	state := models.OnboardingState{
		IdentityID:       "id-1",
		SeenBuyerWelcome: true,
	}

	mock.ExpectExec("REPLACE INTO onboarding").
		WithArgs(state.IdentityID, state.SeenBuyerWelcome, state.SeenSellerWelcome, state.AcceptedTermsAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Put(context.Background(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOnboardingPut_ExecError(t *testing.T) {
	repo, mock, db := newTestOnboardingRepo(t)
	defer db.Close()

	mock.ExpectExec("REPLACE INTO onboarding").
		WillReturnError(errors.New("database is locked"))

	err := repo.Put(context.Background(), models.OnboardingState{IdentityID: "id-1"})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}
